package postgresengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	metricTxDuration                   = "circulation_store_tx_duration_seconds"
	metricDatabaseErrors               = "circulation_store_database_errors_total"
	metricConcurrencyConflicts         = "circulation_store_concurrency_conflicts_total"
	metricInventoryInvariantViolations = "circulation_store_inventory_invariant_violations_total"
	metricCopiesAvailable              = "circulation_store_copies_available"
	spanNameTx                         = "circulation.store.tx"
	spanAttrOperation                  = "operation"
	spanAttrConsistency                = "consistency"
	spanAttrErrorType                  = "error_type"
	spanAttrDurationMS                 = "duration_ms"
	labelStatus                        = "status"
	statusSuccess                      = "success"
	statusError                        = "error"
)

// logQueryWithDuration logs SQL statements with execution time at debug level if a logger is configured.
func (s Store) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
		return
	}

	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperationWithContext logs operational information at info level if a logger is configured.
func (s Store) logOperationWithContext(ctx context.Context, action string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarnWithContext logs non-critical issues at warn level if a logger is configured.
func (s Store) logWarnWithContext(ctx context.Context, message string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, message, args...)
		return
	}

	if s.logger != nil {
		s.logger.Warn(message, args...)
	}
}

// logErrorWithContext logs error information at the error level if a logger is configured.
func (s Store) logErrorWithContext(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// recordTxDuration records the transaction duration if a metrics collector is configured.
func (s Store) recordTxDuration(ctx context.Context, operation, status string, duration time.Duration) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       status,
	}

	if contextualCollector, ok := s.metricsCollector.(circulation.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricTxDuration, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metricTxDuration, duration, labels)
}

// recordErrorMetrics records database error metrics if a metrics collector is configured.
func (s Store) recordErrorMetrics(ctx context.Context, operation, errorType string) {
	if s.metricsCollector == nil {
		return
	}

	metricName := metricDatabaseErrors
	if errorType == errorTypeInvariantViolated {
		metricName = metricInventoryInvariantViolations
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	}

	if contextualCollector, ok := s.metricsCollector.(circulation.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricName, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metricName, labels)
}

// recordConcurrencyConflictMetrics records concurrency conflicts if a metrics collector is configured.
func (s Store) recordConcurrencyConflictMetrics(ctx context.Context, operation string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"conflict_type":   "concurrency",
	}

	if contextualCollector, ok := s.metricsCollector.(circulation.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricConcurrencyConflicts, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metricConcurrencyConflicts, labels)
}

// recordCopiesAvailable records the availability of a book after a ledger movement.
func (s Store) recordCopiesAvailable(ctx context.Context, operation string, copiesAvailable int) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation}

	if contextualCollector, ok := s.metricsCollector.(circulation.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metricCopiesAvailable, float64(copiesAvailable), labels)
		return
	}

	s.metricsCollector.RecordValue(metricCopiesAvailable, float64(copiesAvailable), labels)
}

// txTracingObserver encapsulates the tracing span lifecycle of one transaction.
type txTracingObserver struct {
	s    Store
	span circulation.SpanContext
}

// startTxTracing starts a span for the transaction if a tracing collector is configured.
func (s Store) startTxTracing(
	ctx context.Context,
	operation string,
	consistency circulation.ConsistencyLevel,
) (*txTracingObserver, context.Context) {

	observer := &txTracingObserver{s: s}

	if s.tracingCollector == nil {
		return observer, ctx
	}

	newCtx, span := s.tracingCollector.StartSpan(ctx, spanNameTx, map[string]string{
		spanAttrOperation:   operation,
		spanAttrConsistency: consistency.String(),
	})
	observer.span = span

	return observer, newCtx
}

func (o *txTracingObserver) finishSuccess(duration time.Duration) {
	if o.s.tracingCollector == nil || o.span == nil {
		return
	}

	o.span.SetStatus(statusSuccess)
	o.s.tracingCollector.FinishSpan(o.span, statusSuccess, map[string]string{
		spanAttrDurationMS: fmt.Sprintf("%.2f", toMilliseconds(duration)),
	})
}

func (o *txTracingObserver) finishError(errorType string, duration time.Duration) {
	if o.s.tracingCollector == nil || o.span == nil {
		return
	}

	o.span.SetStatus(statusError)
	o.s.tracingCollector.FinishSpan(o.span, statusError, map[string]string{
		spanAttrErrorType:  errorType,
		spanAttrDurationMS: fmt.Sprintf("%.2f", toMilliseconds(duration)),
	})
}
