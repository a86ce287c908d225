package main

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/xiebiao/libros/internal/domain/book"
	"github.com/xiebiao/libros/internal/infrastructure/config"
	"github.com/xiebiao/libros/internal/infrastructure/messaging"
	"github.com/xiebiao/libros/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/libros/internal/infrastructure/persistence/sqlite"
	"github.com/xiebiao/libros/pkg/mq"
)

// provideBookRepository 创建图书仓储
// cache.enabled=true时在SQLite仓储外包一层Redis读缓存(带熔断),cleanup负责关闭Redis连接
func provideBookRepository(cfg *config.Config, db *gorm.DB, log *slog.Logger) (book.Repository, func(), error) {
	repo := sqlite.NewBookRepository(db)
	if !cfg.Cache.Enabled {
		return repo, func() {}, nil
	}

	client, cleanup, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	log.Info("图书读缓存已启用", slog.Duration("ttl", cfg.Cache.TTL), slog.String("prefix", cfg.Cache.Prefix))
	cache := redis.NewBreakerCache(redis.NewRedisCache(client), cfg.Cache.BreakerFailures, cfg.Cache.BreakerTimeout, log)
	cached := redis.NewCachedBookRepository(repo, cache, cfg.Cache.TTL, cfg.Cache.Prefix, log)
	return cached, cleanup, nil
}

// provideBookService 创建图书领域服务
// events.enabled=true时写操作成功后向RabbitMQ发布变更事件,cleanup负责关闭连接
func provideBookService(cfg *config.Config, repo book.Repository, log *slog.Logger) (book.Service, func(), error) {
	svc := book.NewService(repo)
	if !cfg.Events.Enabled {
		return svc, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Error("关闭RabbitMQ失败", slog.Any("error", err))
		}
	}

	log.Info("图书事件发布已启用", slog.String("exchange", cfg.Events.Exchange))
	return messaging.NewEventService(svc, publisher, log), cleanup, nil
}

// provideServer 创建HTTP服务器
func provideServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
