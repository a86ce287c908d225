package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(SQLite、Redis缓存装饰器)
// 2. 便于测试时替换为内存实现
// 3. 所有写操作在返回前已提交
type Repository interface {
	// List 查询全部图书(按ID升序)
	List(ctx context.Context) ([]*Book, error)

	// FindByID 根据ID查找图书,不存在时返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Create 创建图书,成功后回填ID和时间戳
	Create(ctx context.Context, book *Book) error

	// Update 把changes中出现的字段合并到已有记录,返回更新后的图书
	// 不存在时返回ErrBookNotFound且不写库
	Update(ctx context.Context, id uint, changes Fields) (*Book, error)

	// Delete 删除图书(物理删除),不存在时返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error
}
