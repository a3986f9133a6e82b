package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker_RunsSubmittedTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := New(4)
	w.Start(ctx)

	var ran atomic.Int32
	for i := 0; i < 3; i++ {
		w.Submit(Task{Name: "count", Run: func(ctx context.Context) error {
			ran.Add(1)
			return nil
		}})
	}

	require.Eventually(t, func() bool {
		return ran.Load() == 3
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWorker_KeepsDrainingAfterTaskFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := New(4)
	w.Start(ctx)

	var ran atomic.Bool
	w.Submit(Task{Name: "boom", Run: func(ctx context.Context) error {
		return errors.New("boom")
	}})
	w.Submit(Task{Name: "after", Run: func(ctx context.Context) error {
		ran.Store(true)
		return nil
	}})

	require.Eventually(t, ran.Load, 2*time.Second, 10*time.Millisecond)
}

func TestWorker_SubmitNeverBlocksWhenFull(t *testing.T) {
	// Not started: nothing drains the queue.
	w := New(1)

	w.Submit(Task{Name: "first", Run: func(ctx context.Context) error { return nil }})

	done := make(chan struct{})
	go func() {
		w.Submit(Task{Name: "dropped", Run: func(ctx context.Context) error { return nil }})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a full queue")
	}

	assert.Len(t, w.tasks, 1)
}

func TestWorker_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	w := New(4)
	w.Start(ctx)
	cancel()

	// Give the loop a moment to exit, then verify tasks queue up unprocessed.
	time.Sleep(50 * time.Millisecond)
	var ran atomic.Bool
	w.Submit(Task{Name: "late", Run: func(ctx context.Context) error {
		ran.Store(true)
		return nil
	}})

	time.Sleep(100 * time.Millisecond)
	assert.False(t, ran.Load())
}
