package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/xiebiao/libros/internal/domain/book"
	"github.com/xiebiao/libros/pkg/metrics"
	"github.com/xiebiao/libros/pkg/tracing"
)

const tracerName = "libros/application/book"

// BookDTO 图书输出DTO
// 未填写的字段输出为null,时间戳使用RFC3339格式
type BookDTO struct {
	ID        uint      `json:"id"`
	Autor     *string   `json:"autor"`
	ISBN      *string   `json:"isbn"`
	Editorial *string   `json:"editorial"`
	Paginas   *string   `json:"paginas"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookInput 图书输入(创建/更新共用)
// nil表示请求中没有该字段
type BookInput struct {
	Autor     *string
	ISBN      *string
	Editorial *string
	Paginas   *string
}

func (in BookInput) toFields() book.Fields {
	return book.Fields{
		Autor:     in.Autor,
		ISBN:      in.ISBN,
		Editorial: in.Editorial,
		Paginas:   in.Paginas,
	}
}

func toDTO(b *book.Book) *BookDTO {
	return &BookDTO{
		ID:        b.ID,
		Autor:     b.Autor,
		ISBN:      b.ISBN,
		Editorial: b.Editorial,
		Paginas:   b.Paginas,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// operation 用例执行过程中的Span和指标
type operation struct {
	name string
	span trace.Span
}

// startOperation 开始一次图书操作:创建Span,结束时记录结果指标
func startOperation(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *operation) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "book."+name)
	span.SetAttributes(attrs...)
	return ctx, &operation{name: name, span: span}
}

// finish 结束操作。err优先于found
func (op *operation) finish(found bool, err error) {
	defer op.span.End()

	switch {
	case err != nil:
		tracing.RecordError(op.span, err)
		metrics.RecordBookOperation(op.name, metrics.ResultError)
	case !found:
		op.span.SetAttributes(attribute.Bool("book.found", false))
		metrics.RecordBookOperation(op.name, metrics.ResultNotFound)
	default:
		metrics.RecordBookOperation(op.name, metrics.ResultOK)
	}
}

func idAttr(id uint) attribute.KeyValue {
	return attribute.Int64("book.id", int64(id))
}
