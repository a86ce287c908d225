package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/libros/internal/domain/book"
	apperrors "github.com/xiebiao/libros/pkg/errors"
	"github.com/xiebiao/libros/pkg/metrics"
)

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("cache miss")

// Cache 键值缓存接口
// Redis是生产实现，测试中可以替换为内存实现
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// redisCache 基于Redis的Cache实现
// key不存在返回ErrCacheMiss,其他错误包装为ErrCodeCacheError
type redisCache struct {
	client *redis.Client
}

// NewRedisCache 创建Redis缓存
func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, cacheError(err, "读取缓存失败")
	}
	return val, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return cacheError(err, "写入缓存失败")
	}
	return nil
}

func (c *redisCache) Del(ctx context.Context, keys ...string) error {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return cacheError(err, "删除缓存失败")
	}
	return nil
}

func cacheError(err error, message string) error {
	return apperrors.WrapCode(err, apperrors.ErrCodeCacheError, message)
}

// CachedBookRepository 带读缓存的图书仓储(装饰器)
//
// 缓存策略:Cache-Aside(旁路缓存)
//   - 读:先查缓存,未命中再查数据库并回填
//   - 写:先写数据库,成功后删除相关缓存(列表key + 单条key)
//
// 缓存故障只记录日志并回退到数据库,不会让请求失败
type CachedBookRepository struct {
	next   book.Repository
	cache  Cache
	ttl    time.Duration
	prefix string
	log    *slog.Logger
}

// NewCachedBookRepository 创建带缓存的图书仓储
func NewCachedBookRepository(next book.Repository, cache Cache, ttl time.Duration, prefix string, log *slog.Logger) *CachedBookRepository {
	return &CachedBookRepository{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		prefix: prefix,
		log:    log.With(slog.String("component", "book_cache")),
	}
}

// bookEntry 缓存中的图书结构
type bookEntry struct {
	ID        uint      `json:"id"`
	Autor     *string   `json:"autor"`
	ISBN      *string   `json:"isbn"`
	Editorial *string   `json:"editorial"`
	Paginas   *string   `json:"paginas"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toEntry(b *book.Book) bookEntry {
	return bookEntry{
		ID:        b.ID,
		Autor:     b.Autor,
		ISBN:      b.ISBN,
		Editorial: b.Editorial,
		Paginas:   b.Paginas,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (e bookEntry) toBook() *book.Book {
	return &book.Book{
		ID:        e.ID,
		Autor:     e.Autor,
		ISBN:      e.ISBN,
		Editorial: e.Editorial,
		Paginas:   e.Paginas,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// BookKey 单条图书缓存key,如libros:book:42
func (r *CachedBookRepository) BookKey(id uint) string {
	return fmt.Sprintf("%s:book:%d", r.prefix, id)
}

// ListKey 图书列表缓存key
func (r *CachedBookRepository) ListKey() string {
	return r.prefix + ":book:list"
}

// List 查询全部图书
func (r *CachedBookRepository) List(ctx context.Context) ([]*book.Book, error) {
	var entries []bookEntry
	if r.load(ctx, r.ListKey(), &entries) {
		books := make([]*book.Book, len(entries))
		for i, e := range entries {
			books[i] = e.toBook()
		}
		return books, nil
	}

	books, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	entries = make([]bookEntry, len(books))
	for i, b := range books {
		entries[i] = toEntry(b)
	}
	r.store(ctx, r.ListKey(), entries)
	return books, nil
}

// FindByID 根据ID查找图书(不存在的结果不缓存)
func (r *CachedBookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var entry bookEntry
	if r.load(ctx, r.BookKey(id), &entry) {
		return entry.toBook(), nil
	}

	b, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, r.BookKey(id), toEntry(b))
	return b, nil
}

// Create 创建图书,成功后使列表缓存失效
func (r *CachedBookRepository) Create(ctx context.Context, b *book.Book) error {
	if err := r.next.Create(ctx, b); err != nil {
		return err
	}
	r.invalidate(ctx, r.ListKey())
	return nil
}

// Update 更新图书,成功后使列表和单条缓存失效
func (r *CachedBookRepository) Update(ctx context.Context, id uint, changes book.Fields) (*book.Book, error) {
	b, err := r.next.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, r.ListKey(), r.BookKey(id))
	return b, nil
}

// Delete 删除图书,成功后使列表和单条缓存失效
func (r *CachedBookRepository) Delete(ctx context.Context, id uint) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, r.ListKey(), r.BookKey(id))
	return nil
}

// load 读缓存并反序列化,返回是否命中
func (r *CachedBookRepository) load(ctx context.Context, key string, dest interface{}) bool {
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			metrics.RecordCacheResult("miss")
		} else {
			metrics.RecordCacheResult("error")
			r.log.Warn("读取缓存失败", slog.String("key", key), slog.Any("error", err))
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		metrics.RecordCacheResult("error")
		r.log.Warn("缓存数据损坏", slog.String("key", key), slog.Any("error", err))
		r.invalidate(ctx, key)
		return false
	}

	metrics.RecordCacheResult("hit")
	return true
}

// store 序列化并写缓存,失败只记录日志
func (r *CachedBookRepository) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		r.log.Warn("序列化缓存失败", slog.String("key", key), slog.Any("error", err))
		return
	}
	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		r.log.Warn("写入缓存失败", slog.String("key", key), slog.Any("error", err))
	}
}

// invalidate 删除缓存key,失败只记录日志(最坏情况是读到TTL内的旧数据)
func (r *CachedBookRepository) invalidate(ctx context.Context, keys ...string) {
	if err := r.cache.Del(ctx, keys...); err != nil {
		r.log.Warn("删除缓存失败", slog.Any("keys", keys), slog.Any("error", err))
	}
}
