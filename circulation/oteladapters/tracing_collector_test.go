package oteladapters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/library-circulation-go/circulation/oteladapters"
	"github.com/AntonStoeckl/library-circulation-go/testutil/observability/testdoubles"
)

func newTracingCollector() (*oteladapters.TracingCollector, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	return oteladapters.NewTracingCollector(provider.Tracer("test")), recorder
}

func hasAttribute(span sdktrace.ReadOnlySpan, key, value string) bool {
	for _, attr := range span.Attributes() {
		if attr.Key == attribute.Key(key) && attr.Value.AsString() == value {
			return true
		}
	}

	return false
}

func Test_TracingCollector_StartSpan_And_FinishSpan(t *testing.T) {
	// arrange
	collector, recorder := newTracingCollector()

	// act
	ctx, span := collector.StartSpan(t.Context(), "circulation.store.tx", map[string]string{"operation": "write_tx"})
	span.AddAttribute("consistency", "strong")
	collector.FinishSpan(span, "success", map[string]string{"duration_ms": "1.20"})

	// assert
	assert.True(t, trace.SpanFromContext(ctx).SpanContext().IsValid(), "context must carry the span")

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "circulation.store.tx", ended[0].Name())
	assert.Equal(t, codes.Ok, ended[0].Status().Code)
	assert.True(t, hasAttribute(ended[0], "operation", "write_tx"))
	assert.True(t, hasAttribute(ended[0], "consistency", "strong"))
	assert.True(t, hasAttribute(ended[0], "duration_ms", "1.20"))
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	tests := []struct {
		status       string
		expectedCode codes.Code
	}{
		{status: "error", expectedCode: codes.Error},
		{status: "conflict", expectedCode: codes.Error},
		{status: "rejected", expectedCode: codes.Error},
		{status: "idempotent", expectedCode: codes.Ok},
		{status: "something_else", expectedCode: codes.Unset},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			// arrange
			collector, recorder := newTracingCollector()
			_, span := collector.StartSpan(t.Context(), "circulation.command", nil)

			// act
			collector.FinishSpan(span, tt.status, nil)

			// assert
			require.Len(t, recorder.Ended(), 1)
			assert.Equal(t, tt.expectedCode, recorder.Ended()[0].Status().Code)
		})
	}
}

func Test_TracingCollector_FinishSpan_With_Foreign_SpanContext(t *testing.T) {
	// arrange
	collector, recorder := newTracingCollector()

	// act
	collector.FinishSpan(&testdoubles.SpySpanContext{}, "success", nil)

	// assert
	assert.Empty(t, recorder.Ended())
}
