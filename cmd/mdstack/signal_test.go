package main

// Notes:
// - Signal delivery itself is not exercised: it is OS-specific and racy.
//   The tests cover the context contract the CLI relies on.

import (
	"context"
	"testing"
)

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	isDone := func(ctx context.Context) bool {
		select {
		case <-ctx.Done():
			return true
		default:
			return false
		}
	}

	t.Run("live until stopped", func(t *testing.T) {
		t.Parallel()
		ctx, stop := notifyContext(context.Background())
		if isDone(ctx) {
			t.Fatal("fresh context is already done")
		}
		stop()
		if !isDone(ctx) {
			t.Error("stop() did not cancel the context")
		}
	})

	t.Run("follows parent", func(t *testing.T) {
		t.Parallel()
		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()
		if !isDone(ctx) {
			t.Error("parent cancellation did not propagate")
		}
	})
}
