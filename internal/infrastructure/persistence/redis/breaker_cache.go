package redis

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/xiebiao/libros/pkg/circuitbreaker"
)

// breakerCache 带熔断的Cache
// Redis连续失败后熔断,期间Get/Set直接返回circuitbreaker.ErrOpen,
// 请求立即回退到数据库,不再逐个等待连接超时
//
// Del不经过熔断器:写操作后的失效必须尽量送达Redis。
// 删除失败的key记入pending,下一次Get/Set先补删,补删成功前不读缓存,
// 保证Redis恢复后不会读到写之前的旧数据
type breakerCache struct {
	next    Cache
	breaker *circuitbreaker.Breaker

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewBreakerCache 用熔断器包装Cache,未命中不计为失败
func NewBreakerCache(next Cache, maxFailures uint32, timeout time.Duration, log *slog.Logger) Cache {
	return &breakerCache{
		next:    next,
		pending: make(map[string]struct{}),
		breaker: circuitbreaker.New(circuitbreaker.Settings{
			Name:        "book_cache",
			MaxFailures: maxFailures,
			Timeout:     timeout,
			IsFailure: func(err error) bool {
				return err != nil && !errors.Is(err, ErrCacheMiss)
			},
			OnStateChange: func(name string, from, to circuitbreaker.State) {
				log.Warn("缓存熔断器状态变化",
					slog.String("breaker", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()),
				)
			},
		}),
	}
}

func (c *breakerCache) Get(ctx context.Context, key string) ([]byte, error) {
	var val []byte
	err := c.breaker.Execute(func() error {
		if err := c.flushPending(ctx); err != nil {
			return err
		}
		var err error
		val, err = c.next.Get(ctx, key)
		return err
	})
	return val, err
}

func (c *breakerCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.breaker.Execute(func() error {
		if err := c.flushPending(ctx); err != nil {
			return err
		}
		return c.next.Set(ctx, key, value, ttl)
	})
}

func (c *breakerCache) Del(ctx context.Context, keys ...string) error {
	if err := c.next.Del(ctx, keys...); err != nil {
		c.mu.Lock()
		for _, k := range keys {
			c.pending[k] = struct{}{}
		}
		c.mu.Unlock()
		return err
	}
	return nil
}

// flushPending 补删之前失败的key
func (c *breakerCache) flushPending(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) == 0 {
		return nil
	}

	keys := make([]string, 0, len(c.pending))
	for k := range c.pending {
		keys = append(keys, k)
	}
	if err := c.next.Del(ctx, keys...); err != nil {
		return err
	}
	c.pending = make(map[string]struct{})
	return nil
}
