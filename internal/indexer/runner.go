package indexer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tokenScope/internal/activity"
	"tokenScope/internal/metrics"
	"tokenScope/internal/model"
	"tokenScope/internal/storage"
)

// RunConfig holds runtime settings for the normalizer.
type RunConfig struct {
	Input        string
	Range        VersionRange
	BatchSize    int
	Workers      int
	FailFast     bool
	MaxRetries   int
	RetryBackoff time.Duration
}

// Stats summarizes one run.
type Stats struct {
	Lines        int
	Transactions int
	Activities   int
	Skipped      int
	Failed       int
}

// Runner reads transactions, normalizes them into token activities and
// writes the activities to storage.
type Runner struct {
	cfg        RunConfig
	storage    storage.Storage
	errLog     storage.ErrorLog
	checkpoint CheckpointStore
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

type pendingTxn struct {
	line int
	txn  model.Transaction
}

type txnResult struct {
	activities []model.TokenActivity
	err        error
}

// NewRunner builds a Runner with its dependencies. errLog, checkpoint and m may be nil.
func NewRunner(
	cfg RunConfig,
	storageSink storage.Storage,
	errLog storage.ErrorLog,
	checkpoint CheckpointStore,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Runner{
		cfg:        cfg,
		storage:    storageSink,
		errLog:     errLog,
		checkpoint: checkpoint,
		metrics:    m,
		logger:     logger,
	}
}

// Run normalizes the transactions JSONL file named in the config.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	if r.cfg.Input == "" {
		return Stats{}, fmt.Errorf("input path is required")
	}
	file, err := os.Open(r.cfg.Input)
	if err != nil {
		return Stats{}, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	return r.Process(ctx, file)
}

// Process normalizes transactions read as JSON lines from input.
func (r *Runner) Process(ctx context.Context, input io.Reader) (Stats, error) {
	var stats Stats
	if r.storage == nil {
		return stats, fmt.Errorf("storage is nil")
	}

	var (
		resumeAfter   uint64
		hasCheckpoint bool
	)
	if r.checkpoint != nil {
		version, ok, err := r.checkpoint.Load(ctx)
		if err != nil {
			return stats, fmt.Errorf("load checkpoint: %w", err)
		}
		if ok {
			resumeAfter, hasCheckpoint = version, true
			r.logger.Info("resume from checkpoint", zap.Uint64("last_processed", version))
		}
	}

	scanner := bufio.NewScanner(input)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 32*1024*1024)

	batch := make([]pendingTxn, 0, r.cfg.BatchSize)
	var parseErrors []model.NormalizeError

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		stats.Lines++
		if len(line) == 0 {
			continue
		}

		var txn model.Transaction
		if err := json.Unmarshal(line, &txn); err != nil {
			if r.cfg.FailFast {
				return stats, fmt.Errorf("line %d: parse transaction: %w", stats.Lines, err)
			}
			stats.Failed++
			r.metrics.TransactionFailed()
			r.logger.Warn("parse transaction", zap.Int("line", stats.Lines), zap.Error(err))
			parseErrors = append(parseErrors, model.NormalizeError{Line: stats.Lines, Error: err.Error()})
			continue
		}

		if r.cfg.Range.Past(txn.Version) {
			r.logger.Info("reached end of version range", zap.Uint64("to", r.cfg.Range.To))
			break
		}
		if !r.cfg.Range.Contains(txn.Version) || (hasCheckpoint && txn.Version <= resumeAfter) {
			stats.Skipped++
			continue
		}

		batch = append(batch, pendingTxn{line: stats.Lines, txn: txn})
		if len(batch) >= r.cfg.BatchSize {
			if err := r.flush(ctx, batch, parseErrors, &stats); err != nil {
				return stats, err
			}
			batch = batch[:0]
			parseErrors = nil
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scan input: %w", err)
	}

	if err := r.flush(ctx, batch, parseErrors, &stats); err != nil {
		return stats, err
	}

	r.logger.Info("normalize complete",
		zap.Int("lines", stats.Lines),
		zap.Int("transactions", stats.Transactions),
		zap.Int("activities", stats.Activities),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}

func (r *Runner) flush(ctx context.Context, batch []pendingTxn, errs []model.NormalizeError, stats *Stats) error {
	if len(batch) == 0 && len(errs) == 0 {
		return nil
	}

	results, err := r.normalizeBatch(ctx, batch)
	if err != nil {
		return err
	}

	activities := make([]model.TokenActivity, 0, len(batch))
	for i, res := range results {
		pending := batch[i]
		if res.err != nil {
			if r.cfg.FailFast {
				return fmt.Errorf("line %d: %w", pending.line, res.err)
			}
			stats.Failed++
			r.metrics.TransactionFailed()
			r.logger.Warn("normalize transaction",
				zap.Uint64("version", pending.txn.Version),
				zap.Int("line", pending.line),
				zap.Error(res.err),
			)
			errs = append(errs, model.NormalizeError{
				TransactionVersion: pending.txn.Version,
				TransactionType:    pending.txn.Type,
				Line:               pending.line,
				Error:              res.err.Error(),
			})
			continue
		}

		stats.Transactions++
		r.metrics.TransactionProcessed()
		r.metrics.EventsSkipped(len(pending.txn.UserTransaction.Events) - len(res.activities))
		for _, a := range res.activities {
			r.metrics.ActivityEmitted(a.TransferType)
		}
		activities = append(activities, res.activities...)
	}

	policy := retryPolicy{MaxRetries: r.cfg.MaxRetries, Backoff: r.cfg.RetryBackoff}
	if err := withRetry(ctx, policy, r.logger, "store activities", func(ctx context.Context) error {
		return r.storage.PutActivityBatch(ctx, activities)
	}); err != nil {
		return fmt.Errorf("store activities: %w", err)
	}
	stats.Activities += len(activities)

	if r.errLog != nil && len(errs) > 0 {
		if err := r.errLog.PutErrorBatch(ctx, errs); err != nil {
			return fmt.Errorf("store errors: %w", err)
		}
	}

	if len(batch) == 0 {
		return nil
	}
	last := batch[len(batch)-1].txn.Version
	if r.checkpoint != nil {
		if err := r.checkpoint.Save(ctx, last); err != nil {
			return fmt.Errorf("save checkpoint: %w", err)
		}
	}

	r.logger.Info("batch complete",
		zap.Int("transactions", len(batch)),
		zap.Int("activities", len(activities)),
		zap.Uint64("first_version", batch[0].txn.Version),
		zap.Uint64("last_version", last),
	)
	return nil
}

// normalizeBatch runs FromTransaction over the batch on up to cfg.Workers
// goroutines. Results keep the batch order.
func (r *Runner) normalizeBatch(ctx context.Context, batch []pendingTxn) ([]txnResult, error) {
	results := make([]txnResult, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i := range batch {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			activities, err := activity.FromTransaction(batch[i].txn)
			results[i] = txnResult{activities: activities, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
