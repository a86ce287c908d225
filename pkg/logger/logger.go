// Package logger 基于log/slog构建应用日志器
//
// 日志格式：
//   - json: 生产环境，便于ELK/Loki检索
//   - text: 开发环境，便于终端阅读
//
// 输出位置：stdout、stderr或文件路径（追加写入）
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options 日志配置
type Options struct {
	Level   string // debug | info | warn | error
	Format  string // json | text
	Output  string // stdout | stderr | /path/to/file
	Service string // 附加到每条日志的服务名
}

// New 创建日志器
// 返回的cleanup负责关闭日志文件（输出到stdout/stderr时为空操作）
func New(opts Options) (*slog.Logger, func(), error) {
	output, cleanup, err := openOutput(opts.Output)
	if err != nil {
		return nil, nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "text":
		handler = slog.NewTextHandler(output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(output, handlerOpts)
	}

	log := slog.New(handler)
	if opts.Service != "" {
		log = log.With(slog.String("service", opts.Service))
	}
	return log, cleanup, nil
}

// ParseLevel 解析日志级别，无法识别时默认info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard 丢弃所有输出的日志器（测试用）
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openOutput(output string) (io.Writer, func(), error) {
	switch strings.ToLower(output) {
	case "", "stdout":
		return os.Stdout, func() {}, nil
	case "stderr":
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("打开日志文件失败: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
