package sqlite

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/libros/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2 + SQLite（单文件嵌入式数据库）
// 2. SQLite同一时刻只允许一个写者，连接池默认只开1个连接，
//    并发写请求在database/sql连接池里排队，而不是在应用层加锁
// 3. 开发环境SQL日志输出到slog，生产环境只输出慢查询和错误
// 4. 启动时同步表结构（只建缺失的表/列，不删除也不修改已有列）
//
// 返回的cleanup负责关闭连接（进程退出前调用）
func NewDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, func(), error) {
	// 1. 配置GORM日志
	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 2. 打开数据库文件（文件不存在时自动创建）
	db, err := gorm.Open(sqlite.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: newGormLogger(log, logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	// 3. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			log.Error("关闭数据库失败", slog.Any("error", err))
		}
	}

	// 4. 测试连接（路径不可写、文件损坏时在这里失败）
	if err := sqlDB.Ping(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	// 5. 同步表结构
	if err := Synchronize(db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	log.Info("数据库连接成功", slog.String("filename", cfg.Database.Filename))
	return db, cleanup, nil
}

// Synchronize 同步表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 修改已有列的定义不在处理范围内
func Synchronize(db *gorm.DB) error {
	return db.AutoMigrate(&BookModel{})
}

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/book/entity.go是领域实体，不依赖GORM
// 3. 所有业务字段都是可空文本，paginas也按文本保存
// 4. 没有DeletedAt字段，删除为物理删除
type BookModel struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"`
	Autor     *string `gorm:"column:autor;type:text"`
	ISBN      *string `gorm:"column:isbn;type:text"`
	Editorial *string `gorm:"column:editorial;type:text"`
	Paginas   *string `gorm:"column:paginas;type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "book"
}
