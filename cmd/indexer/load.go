package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tokenScope/internal/config"
	"tokenScope/internal/model"
	"tokenScope/internal/storage/postgres"
)

func runLoad(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadLoad(cfgFile, cmd.Flags())
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
	if cfg.PGDSN == "" {
		return fmt.Errorf("pg dsn is required")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1000
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	inputFile, err := os.Open(cfg.In)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer inputFile.Close()

	logger.Info("load start",
		zap.String("in", cfg.In),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.Int("batch_size", cfg.BatchSize),
	)

	scanner := bufio.NewScanner(inputFile)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	batch := make([]model.TokenActivity, 0, cfg.BatchSize)
	var total, loaded int
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		total++

		var activity model.TokenActivity
		if err := json.Unmarshal(line, &activity); err != nil {
			return fmt.Errorf("line %d: decode activity: %w", total, err)
		}
		batch = append(batch, activity)

		if len(batch) >= cfg.BatchSize {
			if err := store.PutActivityBatch(ctx, batch); err != nil {
				return fmt.Errorf("store activities: %w", err)
			}
			loaded += len(batch)
			batch = batch[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}

	if err := store.PutActivityBatch(ctx, batch); err != nil {
		return fmt.Errorf("store activities: %w", err)
	}
	loaded += len(batch)

	logger.Info("load complete", zap.Int("total", total), zap.Int("loaded", loaded))
	return nil
}
