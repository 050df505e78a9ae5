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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tokenScope/internal/config"
	"tokenScope/internal/indexer"
	"tokenScope/internal/metrics"
	"tokenScope/internal/storage"
	"tokenScope/internal/storage/postgres"
)

func runNormalize(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadNormalize(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}
	if cfg.PGDSN == "" && cfg.Out == "" {
		return fmt.Errorf("output path or pg dsn is required")
	}

	versionRange, err := indexer.NewVersionRange(cfg.FromVersion, cfg.ToVersion)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		sink       storage.Storage
		checkpoint indexer.CheckpointStore
	)
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		sink = store
		if cfg.CheckpointEnabled {
			checkpoint = &indexer.DBCheckpointStore{Store: store, Name: cfg.CheckpointName}
		}
	} else {
		sink = storage.NewJsonlStorage(cfg.Out)
		checkpoint = indexer.NewFileCheckpointStore(cfg.Checkpoint, cfg.CheckpointEnabled)
	}

	var errLog storage.ErrorLog
	if cfg.Errors != "" {
		errLog = storage.NewJsonlStorage(cfg.Errors)
	}

	var m *metrics.Metrics
	if cfg.MetricsAddr != "" {
		m = metrics.Init()
		server := serveMetrics(cfg.MetricsAddr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	runner := indexer.NewRunner(indexer.RunConfig{
		Input:        cfg.In,
		Range:        versionRange,
		BatchSize:    cfg.BatchSize,
		Workers:      cfg.Workers,
		FailFast:     cfg.FailFast,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, sink, errLog, checkpoint, m, logger)

	logger.Info("normalize start",
		zap.String("in", cfg.In),
		zap.String("out", cfg.Out),
		zap.String("errors", cfg.Errors),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.Uint64("from_version", cfg.FromVersion),
		zap.Uint64("to_version", cfg.ToVersion),
		zap.Int("batch_size", cfg.BatchSize),
		zap.Int("workers", cfg.Workers),
		zap.Bool("fail_fast", cfg.FailFast),
		zap.Bool("checkpoint_enabled", cfg.CheckpointEnabled),
	)

	_, err = runner.Run(ctx)
	return err
}

func serveMetrics(addr string, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", zap.Error(err))
		}
	}()
	logger.Info("metrics listening", zap.String("addr", addr))
	return server
}
