package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/libros/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 返回全部图书,按ID升序,没有分页
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// Execute 执行列表查询用例
// 没有图书时返回空切片(序列化为[]),不返回nil
func (uc *ListBooksUseCase) Execute(ctx context.Context) ([]*BookDTO, error) {
	ctx, op := startOperation(ctx, "list")

	books, err := uc.bookService.ListAll(ctx)
	op.span.SetAttributes(attribute.Int("book.count", len(books)))
	op.finish(true, err)
	if err != nil {
		return nil, err
	}

	list := make([]*BookDTO, len(books))
	for i, b := range books {
		list[i] = toDTO(b)
	}
	return list, nil
}
