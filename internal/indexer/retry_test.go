package indexer

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWithRetryEventuallySucceeds(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), retryPolicy{MaxRetries: 3, Backoff: time.Millisecond}, zap.NewNop(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestWithRetryGivesUp(t *testing.T) {
	calls := 0
	want := errors.New("down")
	err := withRetry(context.Background(), retryPolicy{MaxRetries: 2, Backoff: time.Millisecond}, zap.NewNop(), "op", func(context.Context) error {
		calls++
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := withRetry(ctx, retryPolicy{MaxRetries: 5, Backoff: time.Second}, zap.NewNop(), "op", func(context.Context) error {
		calls++
		return errors.New("fail")
	})
	if err == nil || calls != 1 {
		t.Fatalf("expected a single failed call, got calls=%d err=%v", calls, err)
	}
}
