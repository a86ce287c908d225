package book

import (
	"context"

	"github.com/xiebiao/libros/internal/domain/book"
)

// DeleteBookUseCase 删除图书用例
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
	}
}

// DeleteBookRequest 删除请求
type DeleteBookRequest struct {
	ID    uint
	Valid bool
}

// DeleteBookResponse 删除响应,Deleted=false表示记录不存在
type DeleteBookResponse struct {
	Deleted bool
}

// Execute 执行删除用例(物理删除)
func (uc *DeleteBookUseCase) Execute(ctx context.Context, req DeleteBookRequest) (*DeleteBookResponse, error) {
	ctx, op := startOperation(ctx, "delete", idAttr(req.ID))
	if !req.Valid {
		op.finish(false, nil)
		return &DeleteBookResponse{}, nil
	}

	deleted, err := uc.bookService.Delete(ctx, req.ID)
	op.finish(deleted, err)
	if err != nil {
		return nil, err
	}
	return &DeleteBookResponse{Deleted: deleted}, nil
}
