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

	"github.com/kailas-cloud/lookup/internal/config"
	"github.com/kailas-cloud/lookup/internal/db"
	dbRedis "github.com/kailas-cloud/lookup/internal/db/redis"
	domrec "github.com/kailas-cloud/lookup/internal/domain/record"
	logpkg "github.com/kailas-cloud/lookup/internal/logger"
	"github.com/kailas-cloud/lookup/internal/metrics"
	recordrepo "github.com/kailas-cloud/lookup/internal/repository/record"
	chiTransport "github.com/kailas-cloud/lookup/internal/transport/chi"
	healthuc "github.com/kailas-cloud/lookup/internal/usecase/health"
	searchuc "github.com/kailas-cloud/lookup/internal/usecase/search"
	"github.com/kailas-cloud/lookup/internal/version"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic("failed to load .env: " + err.Error())
	}

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

	logger.Info("Starting lookup API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Duration("search_delay", cfg.Search.Delay()),
		zap.String("records_source", cfg.Records.Source),
	)

	ctx := context.Background()
	table, store, err := loadRecords(ctx, cfg.Records)
	if err != nil {
		logger.Fatal("Failed to load records", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}
	logger.Info("Records loaded", zap.Int("count", table.Len()))

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	searchSvc := searchuc.New(table, cfg.Search.Delay()).WithObserver(metrics.SearchObserver{})

	// Pass nil interface (not typed nil pointer!) when no store is open.
	var pinger healthuc.StorePinger
	if store != nil {
		pinger = store
	}
	healthSvc := healthuc.New(table, pinger)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// loadRecords builds the record table from the configured source. The returned
// store is non-nil only for valkey/redis and stays open for health checks.
func loadRecords(ctx context.Context, cfg config.RecordsConfig) (*domrec.Table, db.Store, error) {
	switch cfg.Source {
	case config.SourceStatic:
		return recordrepo.Sample(), nil, nil
	case config.SourceFile:
		table, err := recordrepo.LoadFile(cfg.File)
		return table, nil, err //nolint:wrapcheck // already wrapped with ErrRecordSource
	case config.SourceValkey, config.SourceRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create %s store: %w", cfg.Source, err)
		}
		if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("%s not ready: %w", cfg.Source, err)
		}
		table, err := recordrepo.LoadStore(ctx, store, cfg.Key)
		if err != nil {
			store.Close()
			return nil, nil, err //nolint:wrapcheck // already wrapped with ErrRecordSource
		}
		return table, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown records source %q", cfg.Source)
	}
}
