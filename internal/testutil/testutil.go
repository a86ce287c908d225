// Package testutil 测试辅助工具（只在_test.go中使用）
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/libros/internal/infrastructure/config"
	"github.com/xiebiao/libros/internal/infrastructure/persistence/sqlite"
	"github.com/xiebiao/libros/pkg/logger"
)

// NewTestConfig 返回测试用配置：临时目录下的数据库文件，关闭指标和追踪
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Port:            3000,
			Mode:            "test",
			ShutdownTimeout: time.Second,
		},
		Database: config.DatabaseConfig{
			Filename:        filepath.Join(t.TempDir(), "libros_test.sqlite"),
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: time.Hour,
			BusyTimeout:     time.Second,
		},
		Log: config.LogConfig{Level: "error", Format: "text", Output: "stderr"},
	}
}

// NewTestDB 打开临时SQLite数据库并同步表结构，测试结束时自动关闭
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, cleanup, err := sqlite.NewDB(NewTestConfig(t), logger.Discard())
	require.NoError(t, err, "打开测试数据库失败")
	t.Cleanup(cleanup)
	return db
}

// StrPtr 返回字符串指针
func StrPtr(s string) *string {
	return &s
}
