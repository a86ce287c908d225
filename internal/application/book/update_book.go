package book

import (
	"context"

	"github.com/xiebiao/libros/internal/domain/book"
)

// UpdateBookUseCase 部分更新图书用例
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
	}
}

// UpdateBookRequest 更新请求
type UpdateBookRequest struct {
	ID    uint
	Valid bool // 路径ID是否可解析
	Input BookInput
}

// UpdateBookResponse 更新响应
type UpdateBookResponse struct {
	Book  *BookDTO
	Found bool
}

// Execute 执行更新用例
// 学习要点:
// 1. 只更新请求中出现的字段,其余字段保持原值
// 2. 记录不存在时不写库,返回Found=false
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*UpdateBookResponse, error) {
	ctx, op := startOperation(ctx, "update", idAttr(req.ID))
	if !req.Valid {
		op.finish(false, nil)
		return &UpdateBookResponse{}, nil
	}

	b, found, err := uc.bookService.Update(ctx, req.ID, req.Input.toFields())
	op.finish(found, err)
	if err != nil {
		return nil, err
	}
	if !found {
		return &UpdateBookResponse{}, nil
	}
	return &UpdateBookResponse{Book: toDTO(b), Found: true}, nil
}
