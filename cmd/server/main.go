package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pipewatch/pipewatch/internal/buildconfig"
	"github.com/pipewatch/pipewatch/internal/env"
	"github.com/pipewatch/pipewatch/internal/handlers"
	"github.com/pipewatch/pipewatch/internal/svc"
	"go.uber.org/zap"
)

func main() {
	env.Initialize()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if dsn := env.SentryDSN(); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         dsn,
			Debug:       env.SentryDebug(),
			Environment: env.SentryEnvironment(),
			Release:     buildconfig.Version(),
		}); err != nil {
			logger.Fatal("sentry initialization failed", zap.Error(err))
		}
		defer sentry.Flush(5 * time.Second)
	}

	registry, err := svc.NewDefault(logger)
	if err != nil {
		logger.Fatal("service initialization failed", zap.Error(err))
	}
	defer func() {
		if err := registry.Shutdown(); err != nil {
			logger.Warn("shutdown incomplete", zap.Error(err))
		}
	}()

	registry.GetJobsScheduler().Start()

	server := &http.Server{
		Addr: env.ServerAddr(),
		Handler: handlers.NewRouter(handlers.RouterConfig{
			Logger:                      logger,
			EventStore:                  registry.GetEventStore(),
			SettingsStore:               registry.GetSettingsStore(),
			Inboxes:                     registry.GetInboxManager(),
			Processor:                   registry.GetProcessor(),
			IngestionRateLimitPerMinute: env.IngestionRateLimitPerMinute(),
		}),
	}

	go func() {
		logger.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("version", buildconfig.Version()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if delay := env.ServerShutdownDelayDuration(); delay != nil {
		logger.Info("delaying shutdown", zap.Duration("delay", *delay))
		time.Sleep(*delay)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
