package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/xiebiao/libros/internal/infrastructure/config"
	"github.com/xiebiao/libros/pkg/logger"
	"github.com/xiebiao/libros/pkg/metrics"
	"github.com/xiebiao/libros/pkg/tracing"
)

// @title        Libros API
// @version      1.0
// @description  图书CRUD服务(SQLite存储)
// @host         localhost:3000
// @BasePath     /

// main 主程序入口
//
// 启动流程:配置 → 日志 → 追踪/指标 → 依赖注入(wire_gen.go) → HTTP服务
// 收到SIGINT/SIGTERM后优雅关闭:停止接收新请求,等待处理中的请求完成,再释放数据库和Redis连接
func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// 1. 加载配置(日志器还不存在,失败时输出到stderr)
	cfg, err := config.Load()
	if err != nil {
		slog.Error("加载配置失败", slog.Any("error", err))
		return err
	}

	// 2. 初始化日志
	log, closeLog, err := logger.New(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.Tracing.ServiceName,
	})
	if err != nil {
		slog.Error("初始化日志失败", slog.Any("error", err))
		return err
	}
	defer closeLog()

	log.Info("配置加载成功",
		slog.Int("port", cfg.Server.Port),
		slog.String("mode", cfg.Server.Mode),
		slog.String("database", cfg.Database.Filename),
		slog.Bool("cache", cfg.Cache.Enabled),
	)

	// 3. 追踪和指标
	shutdownTracer, err := tracing.InitTracer(tracing.Options{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Error("初始化追踪失败", slog.Any("error", err))
		return err
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Warn("关闭追踪失败", slog.Any("error", err))
		}
	}()

	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	// 4. 依赖注入
	srv, cleanup, err := InitializeApp(cfg, log)
	if err != nil {
		log.Error("初始化应用失败", slog.Any("error", err))
		return err
	}
	defer cleanup()

	// 5. 启动HTTP服务
	serveErr := make(chan error, 1)
	go func() {
		log.Info("服务启动成功", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 6. 等待退出信号或启动失败
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-serveErr:
		if ok {
			log.Error("HTTP服务异常退出", slog.Any("error", err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	// 7. 优雅关闭
	log.Info("正在关闭服务...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("服务器强制关闭", slog.Any("error", err))
		return err
	}

	log.Info("服务已关闭")
	return nil
}
