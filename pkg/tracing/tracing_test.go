package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// useInMemoryProvider 安装内存导出器，测试结束后恢复原Provider
func useInMemoryProvider(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := NewTracerProvider(sdktrace.WithSyncer(exporter))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(previous)
	})
	return exporter
}

func TestInitTracer(t *testing.T) {
	t.Run("未启用时返回空操作shutdown", func(t *testing.T) {
		shutdown, err := InitTracer(Options{Enabled: false})
		require.NoError(t, err)
		assert.NoError(t, shutdown(context.Background()))
	})

	t.Run("启用时创建Provider", func(t *testing.T) {
		previous := otel.GetTracerProvider()
		defer otel.SetTracerProvider(previous)

		// OTLP exporter惰性连接，端点不可用也能初始化成功
		shutdown, err := InitTracer(Options{Enabled: true, ServiceName: "libros-test", Endpoint: "localhost:4317", SampleRatio: 0.5})
		require.NoError(t, err)
		_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
		assert.True(t, ok)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_ = shutdown(ctx)
	})
}

func TestStartSpan(t *testing.T) {
	exporter := useInMemoryProvider(t)

	ctx, parent := StartSpan(context.Background(), "libros", "book.Update")
	traceID := ExtractTraceID(ctx)
	_, child := StartSpan(ctx, "libros", "book.FindByID")
	child.End()
	parent.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "book.FindByID", spans[0].Name)
	assert.Equal(t, "book.Update", spans[1].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID(), "子Span应挂在父Span下")
	assert.Equal(t, traceID, spans[0].SpanContext.TraceID().String())
}

func TestRecordError(t *testing.T) {
	exporter := useInMemoryProvider(t)

	_, span := StartSpan(context.Background(), "libros", "book.Delete")
	RecordError(span, nil)
	RecordError(span, errors.New("database is locked"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "database is locked", spans[0].Status.Description)
	assert.Len(t, spans[0].Events, 1)
}

func TestExtractTraceIDWithoutSpan(t *testing.T) {
	assert.Empty(t, ExtractTraceID(context.Background()))
}
