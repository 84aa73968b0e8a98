package oteladapters_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"
	"go.opentelemetry.io/otel/log/noop"

	"github.com/AntonStoeckl/library-circulation-go/circulation/oteladapters"
)

// recordingLogger keeps every emitted record.
type recordingLogger struct {
	embedded.Logger
	records []log.Record
}

func (l *recordingLogger) Emit(_ context.Context, record log.Record) {
	l.records = append(l.records, record.Clone())
}

func (l *recordingLogger) Enabled(context.Context, log.EnabledParameters) bool {
	return true
}

func attributesOf(record log.Record) map[string]log.Value {
	attrs := make(map[string]log.Value)
	record.WalkAttributes(func(kv log.KeyValue) bool {
		attrs[kv.Key] = kv.Value
		return true
	})

	return attrs
}

func Test_SlogBridgeLogger_AllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := oteladapters.NewSlogBridgeLoggerWithHandler("circulation", handler)
	ctx := t.Context()

	// act
	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "info message", "book_id", "b-1")
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "inventory invariant violated", "copies_available", 2)

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG","msg":"debug message"`)
	assert.Contains(t, output, `"msg":"info message","logger":"circulation","book_id":"b-1"`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"copies_available":2`)
}

func Test_NewSlogBridgeLogger_Uses_Global_Provider(t *testing.T) {
	// act
	logger := oteladapters.NewSlogBridgeLogger("circulation")

	// assert
	assert.NotPanics(t, func() { logger.InfoContext(t.Context(), "no provider configured") })
}

func Test_OTelLogger_Emits_Typed_Attributes(t *testing.T) {
	// arrange
	recorder := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(recorder)

	// act
	logger.ErrorContext(t.Context(), "return failed",
		"loan_id", "l-1",
		"copies", 3,
		"duration_ms", 1.5,
		"retried", true,
		"error", errors.New("boom"),
		"dangling",
	)

	// assert
	require.Len(t, recorder.records, 1)
	record := recorder.records[0]
	assert.Equal(t, log.SeverityError, record.Severity())
	assert.Equal(t, "return failed", record.Body().AsString())

	attrs := attributesOf(record)
	assert.Len(t, attrs, 5, "the dangling key must be dropped")
	assert.Equal(t, "l-1", attrs["loan_id"].AsString())
	assert.Equal(t, int64(3), attrs["copies"].AsInt64())
	assert.InDelta(t, 1.5, attrs["duration_ms"].AsFloat64(), 0.0001)
	assert.True(t, attrs["retried"].AsBool())
	assert.Equal(t, "boom", attrs["error"].AsString())
}

func Test_OTelLogger_Severities(t *testing.T) {
	// arrange
	recorder := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(recorder)
	ctx := t.Context()

	// act
	logger.DebugContext(ctx, "d")
	logger.InfoContext(ctx, "i")
	logger.WarnContext(ctx, "w")

	// assert
	require.Len(t, recorder.records, 3)
	assert.Equal(t, log.SeverityDebug, recorder.records[0].Severity())
	assert.Equal(t, log.SeverityInfo, recorder.records[1].Severity())
	assert.Equal(t, log.SeverityWarn, recorder.records[2].Severity())
}

func Test_OTelLogger_With_Noop_Provider(t *testing.T) {
	// arrange
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("test"))

	// act & assert
	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "ignored", 42, "non-string key")
	})
}
