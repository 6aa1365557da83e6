package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestSchedulerRunsJob(t *testing.T) {
	var runs atomic.Int32
	// cron clamps @every intervals below one second up to a full second,
	// so 1s is the shortest spec that actually fires repeatedly
	s := New("@every 1s", func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := runs.Load(); got < 2 {
		t.Errorf("Expected at least 2 scheduled runs, got %d", got)
	}
}

func TestSchedulerInvalidSpec(t *testing.T) {
	s := New("not a cron spec", func(ctx context.Context) error { return nil }, zap.NewNop())
	if err := s.Run(context.Background()); err == nil {
		t.Error("Expected error for invalid cron expression")
	}
}

func TestSchedulerKeepsRunningAfterJobFailure(t *testing.T) {
	var runs atomic.Int32
	s := New("@every 1s", func(ctx context.Context) error {
		runs.Add(1)
		return context.DeadlineExceeded // any error
	}, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := runs.Load(); got < 2 {
		t.Errorf("Scheduler should keep running after failures, got %d runs", got)
	}
}

func TestSchedulerDefaultSpec(t *testing.T) {
	s := New("", func(ctx context.Context) error { return nil }, zap.NewNop())
	if s.spec != DefaultSpec {
		t.Errorf("Expected default spec %q, got %q", DefaultSpec, s.spec)
	}
}
