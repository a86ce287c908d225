package book

import (
	"context"

	"github.com/xiebiao/libros/internal/domain/book"
)

// GetBookUseCase 图书详情查询用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
	}
}

// GetBookRequest 详情查询请求
// Valid=false表示路径中的ID无法解析,按不存在处理
type GetBookRequest struct {
	ID    uint
	Valid bool
}

// GetBookResponse 详情查询响应
// Found=false时Book为nil
type GetBookResponse struct {
	Book  *BookDTO
	Found bool
}

// Execute 执行详情查询用例
func (uc *GetBookUseCase) Execute(ctx context.Context, req GetBookRequest) (*GetBookResponse, error) {
	ctx, op := startOperation(ctx, "get", idAttr(req.ID))
	if !req.Valid {
		op.finish(false, nil)
		return &GetBookResponse{}, nil
	}

	b, found, err := uc.bookService.FindByID(ctx, req.ID)
	op.finish(found, err)
	if err != nil {
		return nil, err
	}
	if !found {
		return &GetBookResponse{}, nil
	}
	return &GetBookResponse{Book: toDTO(b), Found: true}, nil
}
