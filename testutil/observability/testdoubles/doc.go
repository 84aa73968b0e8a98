// Package testdoubles provides test doubles (spies) for the observability interfaces of the circulation store.
//
// This package contains spy implementations for:
//   - MetricsCollectorSpy: captures metrics recording calls for verification
//   - TracingCollectorSpy: captures tracing spans
//   - ContextualLoggerSpy: captures structured logging with context
//   - LogHandlerSpy: captures slog handler calls and attributes
//
// They make it possible to test the instrumentation of the store and the command handlers
// without a telemetry backend.
package testdoubles
