// Package oteladapters implements the circulation observability interfaces on top of OpenTelemetry.
//
//   - SlogBridgeLogger and OTelLogger implement circulation.ContextualLogger
//   - MetricsCollector implements circulation.ContextualMetricsCollector with histograms, counters and gauges
//   - TracingCollector implements circulation.TracingCollector with one span per call
//
// The providers are configured by the process (see app/shared/shell/config), the adapters only
// take a meter, a tracer or a logger.
package oteladapters
