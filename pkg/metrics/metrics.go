// Package metrics 提供基于Prometheus的指标收集
//
// 指标分两类：
//   - HTTP指标：由中间件记录（请求数、耗时、处理中的请求数）
//   - 业务指标：由图书用例记录每次操作的结果（ok/not_found/error）
//
// 命名规范：
//   - Counter以`_total`结尾
//   - Histogram以单位结尾（`_seconds`）
//
// 使用示例：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	metrics.RecordBookOperation("create", metrics.ResultOK)
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 业务操作结果标签
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

var (
	// initOnce 防止重复注册（promauto重复注册会panic）
	initOnce sync.Once

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/book/:id）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// BookOperationsTotal 图书操作总数（Counter）
	// 标签：operation（list/get/create/update/delete）、result（ok/not_found/error）
	BookOperationsTotal *prometheus.CounterVec

	// BookCacheRequestsTotal 图书缓存访问总数（Counter）
	// 标签：result（hit/miss/error）
	BookCacheRequestsTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 使用promauto注册到默认Registry，可重复调用
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		BookOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_operations_total",
				Help: "图书操作总数",
			},
			[]string{"operation", "result"},
		)

		BookCacheRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_cache_requests_total",
				Help: "图书缓存访问总数",
			},
			[]string{"result"},
		)
	})
}

// Enabled 指标是否已初始化
// 未初始化时所有Record*函数都是空操作，便于在测试或关闭指标时直接调用
func Enabled() bool {
	return BookOperationsTotal != nil
}

// RecordBookOperation 记录一次图书操作的结果
func RecordBookOperation(operation, result string) {
	if !Enabled() {
		return
	}
	BookOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordCacheResult 记录一次缓存访问的结果
func RecordCacheResult(result string) {
	if BookCacheRequestsTotal == nil {
		return
	}
	BookCacheRequestsTotal.WithLabelValues(result).Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
