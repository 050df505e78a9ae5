package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "indexer",
		Short:        "Token activity indexer",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	normalizeCmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize transactions into token activities",
		RunE:  runNormalize,
	}

	normalizeCmd.Flags().String("in", "", "input transactions JSONL")
	normalizeCmd.Flags().String("out", "./data/token_activities.jsonl", "output token activities JSONL (ignored when --pg-dsn is set)")
	normalizeCmd.Flags().String("errors", "./data/normalize_errors.jsonl", "failed transactions JSONL")
	normalizeCmd.Flags().String("pg-dsn", "", "Postgres DSN; when set activities and checkpoint are stored in Postgres")
	normalizeCmd.Flags().String("checkpoint", "./data/checkpoint.json", "checkpoint file path")
	normalizeCmd.Flags().Bool("checkpoint-enabled", true, "enable checkpointing")
	normalizeCmd.Flags().String("checkpoint-name", "token_activities", "checkpoint name in indexer_state")
	normalizeCmd.Flags().Uint64("from-version", 0, "first transaction version (inclusive)")
	normalizeCmd.Flags().Uint64("to-version", 0, "last transaction version (inclusive), 0 means no limit")
	normalizeCmd.Flags().Int("batch-size", 500, "transactions per batch")
	normalizeCmd.Flags().Int("workers", 4, "parallel normalization workers")
	normalizeCmd.Flags().Bool("fail-fast", false, "abort on the first malformed transaction")
	normalizeCmd.Flags().Int("max-retries", 5, "maximum storage retry attempts")
	normalizeCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	normalizeCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	normalizeCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(normalizeCmd)

	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Load a token activities JSONL into Postgres",
		RunE:  runLoad,
	}

	loadCmd.Flags().String("in", "", "input token activities JSONL")
	loadCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	loadCmd.Flags().Int("batch-size", 1000, "batch size for DB writes")
	loadCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(loadCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
