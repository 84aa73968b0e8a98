package main

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-circulation-go/app/httpapi"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/circulation/oteladapters"
)

const instrumentationName = "libraryd"

// processObservability is everything the process logs, measures and traces with.
type processObservability struct {
	logger   *slog.Logger
	handlers httpapi.Observability
	store    storeObservability
	shutdown func(ctx context.Context) error
}

// setupObservability installs the JSON process logger as slog default. With OTEL_ENABLED it also starts the
// OTLP providers and routes the contextual logs, metrics and traces through them.
func setupObservability(ctx context.Context, cfg config.ObservabilityConfig) (processObservability, error) {
	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	logger := slog.New(jsonHandler)
	slog.SetDefault(logger)

	if !cfg.OTelEnabled {
		contextualLogger := oteladapters.NewSlogBridgeLoggerWithHandler(instrumentationName, jsonHandler)

		return processObservability{
			logger: logger,
			handlers: httpapi.Observability{
				ContextualLogger: contextualLogger,
			},
			store: storeObservability{
				logger:           logger,
				contextualLogger: contextualLogger,
			},
			shutdown: func(context.Context) error { return nil },
		}, nil
	}

	providers, err := config.NewObservabilityProviders(ctx, cfg, version)
	if err != nil {
		return processObservability{}, err
	}

	contextualLogger := oteladapters.NewSlogBridgeLogger(instrumentationName)
	metrics := oteladapters.NewMetricsCollector(otel.Meter(instrumentationName))
	tracing := oteladapters.NewTracingCollector(otel.Tracer(instrumentationName))

	logger.InfoContext(ctx, "opentelemetry enabled", "endpoint", cfg.OTLPEndpoint)

	return processObservability{
		logger: logger,
		handlers: httpapi.Observability{
			ContextualLogger: contextualLogger,
			Metrics:          metrics,
			Tracing:          tracing,
		},
		store: storeObservability{
			logger:           logger,
			contextualLogger: contextualLogger,
			metrics:          metrics,
			tracing:          tracing,
		},
		shutdown: providers.Shutdown,
	}, nil
}
