package book

import (
	"time"
)

// Book 图书实体
// 设计说明:
// 1. 除ID外所有字段都是可选的文本,nil表示"未填写"(序列化为null)
// 2. Paginas按文本保存页数,不做数字转换
// 3. ISBN不要求唯一
type Book struct {
	ID        uint
	Autor     *string // 作者
	ISBN      *string // ISBN号
	Editorial *string // 出版社
	Paginas   *string // 页数(文本)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fields 可写字段集合
// nil表示请求中没有该字段:创建时按null保存,更新时保持原值
type Fields struct {
	Autor     *string
	ISBN      *string
	Editorial *string
	Paginas   *string
}

// NewBook 创建新图书(工厂方法)
// ID和时间戳由存储层在插入时回填
func NewBook(f Fields) *Book {
	return &Book{
		Autor:     f.Autor,
		ISBN:      f.ISBN,
		Editorial: f.Editorial,
		Paginas:   f.Paginas,
	}
}

// IsEmpty 是否没有任何字段
func (f Fields) IsEmpty() bool {
	return f.Autor == nil && f.ISBN == nil && f.Editorial == nil && f.Paginas == nil
}
