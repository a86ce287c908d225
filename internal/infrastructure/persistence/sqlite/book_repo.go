package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/libros/internal/domain/book"
	apperrors "github.com/xiebiao/libros/pkg/errors"
)

// bookRepository 图书仓储实现(SQLite)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 把gorm.ErrRecordNotFound转换为book.ErrBookNotFound,其他错误包装为数据库错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// List 查询全部图书
func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, dbError(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, mapNotFound(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := &BookModel{
		Autor:     b.Autor,
		ISBN:      b.ISBN,
		Editorial: b.Editorial,
		Paginas:   b.Paginas,
	}

	// 2. 插入数据库
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return dbError(err, "创建图书失败")
	}

	// 3. 回填自增ID和时间戳
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Update 部分更新图书
// 要点:
// 1. 查询和更新在同一事务中,记录不存在时不会执行UPDATE
// 2. 使用map更新,只写入请求中出现的列(struct更新会忽略零值,map不会)
// 3. 更新后重新读取,返回与数据库一致的记录
func (r *bookRepository) Update(ctx context.Context, id uint, changes book.Fields) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, id).Error; err != nil {
			return err
		}

		if changes.IsEmpty() {
			return nil
		}

		if err := tx.Model(&model).Updates(toColumnMap(changes)).Error; err != nil {
			return err
		}
		model = BookModel{}
		return tx.First(&model, id).Error
	})
	if err != nil {
		return nil, mapNotFound(err, "更新图书失败")
	}

	return toBookEntity(&model), nil
}

// Delete 删除图书(物理删除)
// 先查出记录,再删除查出的同一条记录;不存在时直接返回ErrBookNotFound
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model BookModel
		if err := tx.First(&model, id).Error; err != nil {
			return err
		}
		return tx.Delete(&model).Error
	})
	if err != nil {
		return mapNotFound(err, "删除图书失败")
	}
	return nil
}

// =========================================
// 辅助函数
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:        model.ID,
		Autor:     model.Autor,
		ISBN:      model.ISBN,
		Editorial: model.Editorial,
		Paginas:   model.Paginas,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// toColumnMap 请求字段 → 待更新的列
func toColumnMap(changes book.Fields) map[string]interface{} {
	updates := make(map[string]interface{}, 4)
	if changes.Autor != nil {
		updates["autor"] = *changes.Autor
	}
	if changes.ISBN != nil {
		updates["isbn"] = *changes.ISBN
	}
	if changes.Editorial != nil {
		updates["editorial"] = *changes.Editorial
	}
	if changes.Paginas != nil {
		updates["paginas"] = *changes.Paginas
	}
	return updates
}

func mapNotFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return book.ErrBookNotFound
	}
	return dbError(err, message)
}

func dbError(err error, message string) error {
	return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, message)
}
