package observable_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/shell/observable"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/observability/testdoubles" //nolint:revive
)

type mockCommand struct{}

func (mockCommand) CommandType() string { return "TestCommand" }

type mockHandler struct {
	output string
	result shell.HandlerResult
	err    error
	calls  []mockCommand
	mu     sync.Mutex
}

func newMockHandler(result shell.HandlerResult, err error) *mockHandler {
	return &mockHandler{output: "done", result: result, err: err}
}

func (h *mockHandler) Handle(_ context.Context, command mockCommand) (string, shell.HandlerResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.calls = append(h.calls, command)

	return h.output, h.result, h.err
}

func (h *mockHandler) GetCalls() []mockCommand {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.calls
}

func Test_CommandWrapper_Handle_Success_NonIdempotent(t *testing.T) {
	// arrange
	expectedResult := shell.HandlerResult{RetryAttempts: 1, LastErrorType: "none"}

	handler := newMockHandler(expectedResult, nil)
	metricsCollector := NewMetricsCollectorSpy(true)
	tracingCollector := NewTracingCollectorSpy(true)
	contextualLogger := NewContextualLoggerSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand, string](
		handler,
		observable.WithCommandMetrics[mockCommand, string](metricsCollector),
		observable.WithCommandTracing[mockCommand, string](tracingCollector),
		observable.WithCommandContextualLogging[mockCommand, string](contextualLogger),
	)
	assert.NoError(t, err, "Should create wrapper")

	// act
	output, result, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.NoError(t, err, "Should handle command successfully")
	assert.Equal(t, "done", output, "Should return handler output")
	assert.Equal(t, expectedResult, result, "Should return handler result")
	assert.Len(t, handler.GetCalls(), 1, "Should call handler once")

	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithLabel("command_type", "TestCommand").
		WithStatus("success").
		Assert(), "Should record success metric")
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).
		WithLabel("command_type", "TestCommand").
		Assert(), "Should record duration metric")
	assert.True(t, tracingCollector.HasSpanRecordForName(shell.SpanNameCommandHandle).
		WithStartAttribute(shell.LogAttrCommandType, "TestCommand").
		WithStatus(shell.StatusSuccess).
		Assert(), "Should finish the span with success")
	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgCommandStarted), "Should log command start")
	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgCommandCompleted), "Should log command completion")
}

func Test_CommandWrapper_Handle_Success_Idempotent(t *testing.T) {
	// arrange
	handler := newMockHandler(shell.HandlerResult{Idempotent: true, RetryAttempts: 1}, nil)
	metricsCollector := NewMetricsCollectorSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand, string](
		handler,
		observable.WithCommandMetrics[mockCommand, string](metricsCollector),
	)
	assert.NoError(t, err, "Should create wrapper")

	// act
	_, result, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerIdempotentMetric).
		WithLabel("command_type", "TestCommand").
		Assert(), "Should record idempotent metric")
}

func Test_CommandWrapper_Handle_WithRetries_RecordsMetrics(t *testing.T) {
	// arrange
	resultWithRetries := shell.HandlerResult{
		RetryAttempts:    3,
		TotalRetryDelay:  15 * time.Millisecond,
		LastErrorType:    "none",
		RetriesExhausted: false,
	}

	handler := newMockHandler(resultWithRetries, nil)
	metricsCollector := NewMetricsCollectorSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand, string](
		handler,
		observable.WithCommandMetrics[mockCommand, string](metricsCollector),
	)
	assert.NoError(t, err, "Should create wrapper")

	// act
	_, _, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.NoError(t, err)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).
		WithLabel("command_type", "TestCommand").
		WithLabel("attempt_number", "2").
		Assert(), "Should record retry attempts metric")
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.CommandHandlerRetryDelayMetric).
		WithLabel("command_type", "TestCommand").
		Assert(), "Should record retry delay metric")
	assert.False(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerMaxRetriesReachedMetric).
		Assert(), "Should not record retry exhaustion")
}

func Test_CommandWrapper_Handle_ConcurrencyConflictAfterRetries(t *testing.T) {
	// arrange
	exhausted := shell.HandlerResult{RetryAttempts: 6, LastErrorType: "concurrency_conflict", RetriesExhausted: true}
	handler := newMockHandler(exhausted, circulation.ErrConcurrencyConflict)
	metricsCollector := NewMetricsCollectorSpy(true)
	contextualLogger := NewContextualLoggerSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand, string](
		handler,
		observable.WithCommandMetrics[mockCommand, string](metricsCollector),
		observable.WithCommandContextualLogging[mockCommand, string](contextualLogger),
	)
	assert.NoError(t, err, "Should create wrapper")

	// act
	_, _, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, circulation.ErrConcurrencyConflict)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerConcurrencyConflictMetric).Assert())
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerMaxRetriesReachedMetric).Assert())
	assert.True(t, contextualLogger.HasErrorLog(shell.LogMsgCommandFailed))
}

func Test_CommandWrapper_Handle_BusinessRejection_IsNotLoggedAsFailure(t *testing.T) {
	// arrange
	handler := newMockHandler(shell.HandlerResult{RetryAttempts: 1}, errors.Join(core.ErrUserInactive))
	metricsCollector := NewMetricsCollectorSpy(true)
	tracingCollector := NewTracingCollectorSpy(true)
	contextualLogger := NewContextualLoggerSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand, string](
		handler,
		observable.WithCommandMetrics[mockCommand, string](metricsCollector),
		observable.WithCommandTracing[mockCommand, string](tracingCollector),
		observable.WithCommandContextualLogging[mockCommand, string](contextualLogger),
	)
	assert.NoError(t, err, "Should create wrapper")

	// act
	_, _, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, core.ErrUserInactive)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerRejectedMetric).
		WithLabel("command_type", "TestCommand").
		Assert(), "Should record rejected metric")
	assert.True(t, tracingCollector.HasSpanRecordForName(shell.SpanNameCommandHandle).
		WithStatus(shell.StatusRejected).
		WithEndAttribute(shell.LogAttrError, core.ErrUserInactive.Error()).
		Assert(), "Should finish the span as rejected")
	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgCommandRejected), "Should log the rejection at info level")
	assert.False(t, contextualLogger.HasErrorLog(shell.LogMsgCommandFailed), "Should not log a failure")
}

func Test_CommandWrapper_Handle_Error_RecordsFailureMetrics(t *testing.T) {
	// arrange
	expectedError := errors.Join(circulation.ErrInventoryInvariantViolated, errors.New("book 42"))

	handler := newMockHandler(shell.HandlerResult{RetryAttempts: 1}, expectedError)
	metricsCollector := NewMetricsCollectorSpy(true)
	contextualLogger := NewContextualLoggerSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand, string](
		handler,
		observable.WithCommandMetrics[mockCommand, string](metricsCollector),
		observable.WithCommandContextualLogging[mockCommand, string](contextualLogger),
	)
	assert.NoError(t, err, "Should create wrapper")

	// act
	_, _, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.Equal(t, expectedError, err, "Should return exact error")
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithLabel("command_type", "TestCommand").
		WithStatus("error").
		Assert(), "Should record error metric")
	assert.True(t, contextualLogger.HasErrorLog(shell.LogMsgCommandFailed), "Should log command failure")
}

func Test_CommandWrapper_Handle_CancellationAndTimeout(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		metric string
	}{
		{name: "canceled", err: context.Canceled, metric: shell.CommandHandlerCanceledMetric},
		{name: "timeout", err: context.DeadlineExceeded, metric: shell.CommandHandlerTimeoutMetric},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			handler := newMockHandler(shell.HandlerResult{}, tc.err)
			metricsCollector := NewMetricsCollectorSpy(true)

			wrapper, err := observable.NewCommandWrapper[mockCommand, string](
				handler,
				observable.WithCommandMetrics[mockCommand, string](metricsCollector),
			)
			assert.NoError(t, err, "Should create wrapper")

			// act
			_, _, err = wrapper.Handle(context.Background(), mockCommand{})

			// assert
			assert.ErrorIs(t, err, tc.err)
			assert.True(t, metricsCollector.HasCounterRecordForMetric(tc.metric).
				WithLabel("command_type", "TestCommand").
				Assert())
		})
	}
}

func Test_CommandWrapper_Handle_WithoutObservability_WorksCorrectly(t *testing.T) {
	// arrange
	handler := newMockHandler(shell.HandlerResult{}, nil)

	wrapper, err := observable.NewCommandWrapper[mockCommand, string](handler)
	assert.NoError(t, err, "Should create wrapper without observability")

	// act
	output, _, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, "done", output)
	assert.Len(t, handler.GetCalls(), 1, "Should call handler once")
}
