package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/library-circulation-go/app/httpapi"
	"github.com/AntonStoeckl/library-circulation-go/app/paymentprovider"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/shell/config"
)

func newServeCommand() *cobra.Command {
	var flags flagOverrides

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	addDBAdapterFlag(cmd, &flags.dbAdapter)

	return cmd
}

func serve(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := setupObservability(ctx, cfg.Observability)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := obs.shutdown(shutdownCtx); err != nil {
			obs.logger.ErrorContext(shutdownCtx, "observability shutdown failed", "error", err)
		}
	}()

	store, closeStore, err := openStore(ctx, cfg.Database, obs.store)
	if err != nil {
		return err
	}
	defer closeStore()

	provider, err := paymentprovider.NewClient(paymentprovider.Config{
		BaseURL:       cfg.PaymentProvider.BaseURL,
		SecretKey:     cfg.PaymentProvider.SecretKey,
		WebhookSecret: cfg.PaymentProvider.WebhookSecret,
		Currency:      cfg.PaymentProvider.Currency,
		Timeout:       cfg.PaymentProvider.Timeout,
	})
	if err != nil {
		return err
	}

	handlers, err := httpapi.BuildHandlers(httpapi.Dependencies{
		Store:           store,
		PaymentProvider: provider,
		FeePerDay:       cfg.Circulation.FeePerDay,
		PublicBaseURL:   cfg.PaymentProvider.PublicBaseURL,
		Observability:   obs.handlers,
	})
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(handlers, httpapi.RouterConfig{
		Logger:         obs.logger,
		AllowedOrigin:  cfg.PaymentProvider.PublicBaseURL,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		obs.logger.InfoContext(groupCtx, "http server listening",
			"addr", cfg.Server.Addr,
			"adapter", cfg.Database.Adapter,
			"version", version)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		obs.logger.InfoContext(groupCtx, "shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(groupCtx), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
