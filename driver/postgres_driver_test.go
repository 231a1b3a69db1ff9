package driver

import (
	"context"
	"testing"
	"time"
)

func TestWithTimeout(t *testing.T) {
	t.Run("configured timeout bounds the context", func(t *testing.T) {
		d := &DatabaseDriver{timeout: 10 * time.Second}

		ctx, cancel := d.withTimeout(context.Background())
		defer cancel()

		deadline, ok := ctx.Deadline()
		if !ok {
			t.Fatal("context has no deadline, want one")
		}
		if remaining := time.Until(deadline); remaining > 10*time.Second {
			t.Errorf("deadline %v away, want at most 10s", remaining)
		}
	})

	t.Run("zero timeout leaves the context unbounded", func(t *testing.T) {
		d := &DatabaseDriver{}

		ctx, cancel := d.withTimeout(context.Background())
		defer cancel()

		if _, ok := ctx.Deadline(); ok {
			t.Error("context has a deadline, want none")
		}
	})
}
