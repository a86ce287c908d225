// Package messaging 把图书变更作为事件发布到消息队列
package messaging

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/libros/internal/domain/book"
)

// 事件路由键
const (
	EventBookCreated = "book.created"
	EventBookUpdated = "book.updated"
	EventBookDeleted = "book.deleted"
)

// Publisher 消息发布接口,生产实现是mq.Publisher
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// BookEvent 图书变更事件
// 删除事件只带ID,Book为nil
type BookEvent struct {
	Event      string        `json:"event"`
	BookID     uint          `json:"id"`
	Book       *BookSnapshot `json:"book,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// BookSnapshot 事件中的图书内容
type BookSnapshot struct {
	Autor     *string   `json:"autor"`
	ISBN      *string   `json:"isbn"`
	Editorial *string   `json:"editorial"`
	Paginas   *string   `json:"paginas"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func snapshot(b *book.Book) *BookSnapshot {
	return &BookSnapshot{
		Autor:     b.Autor,
		ISBN:      b.ISBN,
		Editorial: b.Editorial,
		Paginas:   b.Paginas,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// eventService 在写操作成功后发布事件的领域服务装饰器
//
// 事件在数据库写入提交之后发布,发布失败只记录日志:
// 数据已经落库,请求照常返回成功
type eventService struct {
	book.Service
	publisher Publisher
	log       *slog.Logger
	now       func() time.Time
}

// NewEventService 包装领域服务,Create/Update/Delete成功后发布事件
// 查询操作直接委托给next
func NewEventService(next book.Service, publisher Publisher, log *slog.Logger) book.Service {
	return &eventService{
		Service:   next,
		publisher: publisher,
		log:       log.With(slog.String("component", "book_events")),
		now:       time.Now,
	}
}

func (s *eventService) Create(ctx context.Context, fields book.Fields) (*book.Book, error) {
	b, err := s.Service.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, EventBookCreated, b.ID, snapshot(b))
	return b, nil
}

func (s *eventService) Update(ctx context.Context, id uint, fields book.Fields) (*book.Book, bool, error) {
	b, found, err := s.Service.Update(ctx, id, fields)
	if err != nil || !found {
		return b, found, err
	}
	s.publish(ctx, EventBookUpdated, b.ID, snapshot(b))
	return b, true, nil
}

func (s *eventService) Delete(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.Service.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	s.publish(ctx, EventBookDeleted, id, nil)
	return true, nil
}

func (s *eventService) publish(ctx context.Context, event string, id uint, b *BookSnapshot) {
	msg := BookEvent{
		Event:      event,
		BookID:     id,
		Book:       b,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event, msg); err != nil {
		s.log.Warn("发布图书事件失败",
			slog.String("event", event),
			slog.Uint64("book_id", uint64(id)),
			slog.Any("error", err),
		)
	}
}
