package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"poscore/internal/application/bypass"
	"poscore/internal/application/fetch"
	"poscore/internal/application/freshness"
	"poscore/internal/application/tabs"
	"poscore/internal/infrastructure/cache"
	"poscore/internal/infrastructure/config"
	"poscore/internal/infrastructure/http/handlers"
	httpserver "poscore/internal/infrastructure/http/server"
	"poscore/internal/infrastructure/messaging/kafka"
	"poscore/internal/infrastructure/persistence/redisstore"
	"poscore/internal/infrastructure/transport"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", err)
		}
	}()

	cfg, err := config.LoadAppConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	store := redisstore.NewTabStore(cfg.Redis.Addr, logger)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close tab store", zap.Error(err))
		}
	}()

	registry := tabs.NewRegistry(store, logger)
	contextCache := cache.NewContextCache(logger)
	coordinator := bypass.NewCoordinator(logger)
	workspace := freshness.NewWorkspace(registry, contextCache, coordinator, logger)

	httpClient := &http.Client{Timeout: cfg.Backend.RequestTimeout}
	trans := transport.NewHTTPTransport(cfg.Backend.URL, httpClient, logger)

	fetchCfg := fetch.Config{PageLength: cfg.Panels.PageLength, Debounce: cfg.Panels.Debounce}
	for _, spec := range freshness.DefaultSpecs(cfg.Panels.PrintFormat) {
		workspace.Add(freshness.NewPanel(spec, fetchCfg, contextCache, coordinator, trans, registry, logger))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := registry.Restore(ctx); err != nil {
		logger.Error("Failed to restore tab registry", zap.Error(err))
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go kafka.ConsumeInvalidations(ctx, &wg, cfg.Kafka.Broker, cfg.Kafka.Topic, cfg.Kafka.GroupID,
		contextCache, coordinator, logger)

	tabHandler := handlers.NewTabHandler(registry, workspace, logger)
	srv := httpserver.NewServer(tabHandler, logger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start(":" + cfg.HTTP.Port)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			logger.Error("HTTP server failed", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	if err := registry.Snapshot(shutdownCtx); err != nil {
		logger.Error("Failed to persist tab registry on shutdown", zap.Error(err))
	}

	cancel()
	wg.Wait()
	logger.Info("Shutdown complete")
}
