//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
//
// 依赖链:
// *gorm.DB → book.Repository(可选Redis缓存) → book.Service(可选事件发布) → UseCase → Handler → *gin.Engine → *http.Server

package main

import (
	"log/slog"
	"net/http"

	"github.com/google/wire"

	appbook "github.com/xiebiao/libros/internal/application/book"
	"github.com/xiebiao/libros/internal/infrastructure/config"
	"github.com/xiebiao/libros/internal/infrastructure/persistence/sqlite"
	"github.com/xiebiao/libros/internal/interface/http/handler"
	"github.com/xiebiao/libros/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖:数据库连接、图书仓储
var infrastructureSet = wire.NewSet(
	sqlite.NewDB,
	provideBookRepository,
)

// domainSet 领域层依赖(可选事件发布)
var domainSet = wire.NewSet(
	provideBookService,
)

// applicationSet 应用层依赖:图书CRUD用例
var applicationSet = wire.NewSet(
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
)

// interfaceSet 接口层依赖:处理器、路由、HTTP服务器
var interfaceSet = wire.NewSet(
	handler.NewBookHandler,
	router.New,
	provideServer,
)

// InitializeApp 初始化整个应用
// 配置和日志器在main中创建(日志器先于其他依赖可用,启动失败也能记录)
// 返回的cleanup按创建的逆序释放RabbitMQ、Redis和数据库连接
func InitializeApp(cfg *config.Config, log *slog.Logger) (*http.Server, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
