package internal

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxDelivers(t *testing.T) {
	o := NewOutbox(10, 2, nil)
	o.Start()

	var ran atomic.Int32
	for range 5 {
		require.NoError(t, o.Submit(t.Context(), func(context.Context) error {
			ran.Add(1)
			return nil
		}))
	}
	require.NoError(t, o.Submit(t.Context(), func(context.Context) error {
		return errors.New("chat not found")
	}))

	o.Shutdown(t.Context())

	assert.Equal(t, int32(5), ran.Load())
	assert.Equal(t, 5.0, o.metrics.get("sent"))
	assert.Equal(t, 1.0, o.metrics.get("failed"))
}

func TestOutboxDropsWhenFull(t *testing.T) {
	o := NewOutbox(2, 1, nil)

	noop := func(context.Context) error { return nil }
	assert.NoError(t, o.Submit(t.Context(), noop))
	assert.NoError(t, o.Submit(t.Context(), noop))
	assert.ErrorIs(t, o.Submit(t.Context(), noop), errQueueFull)
	assert.Equal(t, 1.0, o.metrics.get("dropped"))

	// Queued jobs still run once workers start.
	o.Start()
	o.Shutdown(t.Context())
	assert.Equal(t, 2.0, o.metrics.get("sent"))
}

func TestOutboxCall(t *testing.T) {
	o := NewOutbox(1, 1, nil)
	o.Start()
	t.Cleanup(func() { o.Shutdown(context.Background()) })

	boom := errors.New("forbidden")
	err := o.Call(t.Context(), time.Second, func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)

	err = o.Call(t.Context(), 10*time.Millisecond, func(context.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOutboxRecoversPanics(t *testing.T) {
	o := NewOutbox(1, 1, nil)
	o.Start()
	t.Cleanup(func() { o.Shutdown(context.Background()) })

	err := o.Call(t.Context(), time.Second, func(context.Context) error { panic("boom") })
	assert.Error(t, err)

	// The worker survives.
	assert.NoError(t, o.Call(t.Context(), time.Second, func(context.Context) error { return nil }))
}

func TestOutboxKeepsRequestID(t *testing.T) {
	o := NewOutbox(1, 1, nil)
	o.Start()
	t.Cleanup(func() { o.Shutdown(context.Background()) })

	ctx, cancel := context.WithCancel(context.WithValue(t.Context(), middleware.RequestIDKey, "req-1"))
	cancel()

	got := make(chan string, 1)
	require.NoError(t, o.Submit(ctx, func(ctx context.Context) error {
		// Deliveries outlive the request that queued them.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		got <- middleware.GetReqID(ctx)
		return nil
	}))

	select {
	case id := <-got:
		assert.Equal(t, "req-1", id)
	case <-time.After(5 * time.Second):
		t.Fatal("job didn't run")
	}
}
