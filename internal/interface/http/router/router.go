// Package router 组装Gin引擎:全局中间件、图书路由和辅助路由
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/libros/docs" // 注册swagger文档
	"github.com/xiebiao/libros/internal/infrastructure/config"
	"github.com/xiebiao/libros/internal/interface/http/handler"
	"github.com/xiebiao/libros/internal/interface/http/middleware"
)

// New 创建Gin引擎并注册路由
//
// 中间件执行顺序:Logger → Tracing → Recovery → Metrics → Handler
// Logger在最外层,panic恢复后的500也会被记录;Tracing在Logger内层,日志能拿到trace_id
func New(cfg *config.Config, log *slog.Logger, bookHandler *handler.BookHandler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.Logger(log))
	r.Use(middleware.Tracing())
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Metrics())

	// 图书路由
	books := r.Group("/book")
	{
		books.GET("", bookHandler.ListBooks)
		books.POST("", bookHandler.CreateBook)
		books.GET("/:id", bookHandler.GetBook)
		books.PUT("/:id", bookHandler.UpdateBook)
		books.DELETE("/:id", bookHandler.DeleteBook)
	}

	// Prometheus指标
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// Swagger文档(生产环境不暴露)
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
