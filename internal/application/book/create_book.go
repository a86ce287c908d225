package book

import (
	"context"

	"github.com/xiebiao/libros/internal/domain/book"
)

// CreateBookUseCase 创建图书用例
// 设计说明:
// 1. 所有字段都是可选的,未出现的字段保存为null
// 2. 同样内容的请求重复提交会创建多条记录,不做去重
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建图书用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
	}
}

// Execute 执行创建用例,返回带ID和时间戳的完整记录
func (uc *CreateBookUseCase) Execute(ctx context.Context, in BookInput) (*BookDTO, error) {
	ctx, op := startOperation(ctx, "create")

	b, err := uc.bookService.Create(ctx, in.toFields())
	if err == nil {
		op.span.SetAttributes(idAttr(b.ID))
	}
	op.finish(true, err)
	if err != nil {
		return nil, err
	}
	return toDTO(b), nil
}
