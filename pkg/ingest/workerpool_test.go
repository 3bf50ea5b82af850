package ingest

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(3, 10)
	pool.Start(context.Background())

	var done int32
	for i := 0; i < 20; i++ {
		err := pool.Submit(func(ctx context.Context) error {
			atomic.AddInt32(&done, 1)
			return nil
		})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	pool.Close()

	if n := atomic.LoadInt32(&done); n != 20 {
		t.Fatalf("ran %d jobs, want 20", n)
	}
}

func TestWorkerPoolSubmitAfterClose(t *testing.T) {
	pool := NewWorkerPool(1, 1)
	pool.Start(context.Background())
	pool.Close()

	err := pool.Submit(func(ctx context.Context) error { return nil })
	if !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("err = %v, want ErrPoolClosed", err)
	}
}

func TestWorkerPoolSubmitCtxCanceled(t *testing.T) {
	pool := NewWorkerPool(1, 1)
	// Not started, so the queue fills and SubmitCtx must block.
	if err := pool.Submit(func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("fill queue: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := pool.SubmitCtx(ctx, func(ctx context.Context) error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestWorkerPoolCloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2, 2)
	pool.Start(context.Background())
	pool.Close()
	pool.Close() // must not panic
}
