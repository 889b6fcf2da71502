package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/obinss/CoCreate-MVP/internal/bootstrap"
	"github.com/obinss/CoCreate-MVP/internal/config"
	logpkg "github.com/obinss/CoCreate-MVP/internal/logger"
	"github.com/obinss/CoCreate-MVP/internal/metrics"
	alertrepo "github.com/obinss/CoCreate-MVP/internal/repository/alert"
	recentrepo "github.com/obinss/CoCreate-MVP/internal/repository/recent"
	chiTransport "github.com/obinss/CoCreate-MVP/internal/transport/chi"
	"github.com/obinss/CoCreate-MVP/internal/version"
	alertuc "github.com/obinss/CoCreate-MVP/internal/usecase/alert"
	healthuc "github.com/obinss/CoCreate-MVP/internal/usecase/health"
	recentuc "github.com/obinss/CoCreate-MVP/internal/usecase/recent"
	searchuc "github.com/obinss/CoCreate-MVP/internal/usecase/search"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting CoCreate search server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("catalog_source", cfg.Catalog.Source),
	)

	store, err := bootstrap.OpenStore(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	cat, err := bootstrap.OpenCatalog(cfg.Catalog, logger,
		bootstrap.WithSnapshotStore(store, cfg.Storage.KeyPrefix))
	if err != nil {
		logger.Fatal("Failed to open catalog", zap.Error(err))
	}
	defer func() {
		if err := cat.Close(); err != nil {
			logger.Warn("Error closing catalog", zap.Error(err))
		}
	}()
	if cat.Watch != nil {
		go func() {
			if err := cat.Watch(ctx); err != nil {
				logger.Error("Catalog watch stopped", zap.Error(err))
			}
		}()
	}
	logger.Info("Catalog ready", zap.String("source", cat.Source.Name()))

	metrics.RegisterSearchMetrics()

	historyStore := recentrepo.New(store, cfg.Storage.KeyPrefix, cfg.Search.HistoryScope)
	searchSvc := searchuc.New(cat.Source, recentuc.New(historyStore))

	alertSvc, err := alertuc.New(alertrepo.New(store, cfg.Storage.KeyPrefix), cat.Source, cfg.Alerts.PoolSize)
	if err != nil {
		logger.Fatal("Failed to create alert service", zap.Error(err))
	}
	defer alertSvc.Release()

	healthSvc := healthuc.New(store, cat.Source)

	server := chiTransport.NewServer(searchSvc, alertSvc, healthSvc, logger,
		chiTransport.WithAPIKeys(cfg.Auth.APIKeys),
		chiTransport.WithMaxBodyBytes(int64(cfg.HTTP.MaxBodyBytes)),
	)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Handler(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
