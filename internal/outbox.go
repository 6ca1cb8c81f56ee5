package internal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// job is a unit of outbound delivery.
type job func(ctx context.Context) error

type outboxItem struct {
	ctx    context.Context
	fn     job
	result chan error // Nil for fire-and-forget jobs.
}

// Outbox runs outbound deliveries on dedicated workers so synchronous callers
// (the poller, handlers) never block on the messaging channel. Jobs are
// delivered at most once.
type Outbox struct {
	queue   chan outboxItem
	workers int
	wg      sync.WaitGroup
	once    sync.Once
	metrics *outboxMetrics
}

// NewOutbox creates an outbox holding at most size pending jobs.
func NewOutbox(size, workers int, reg *prometheus.Registry) *Outbox {
	return &Outbox{
		queue:   make(chan outboxItem, max(size, 1)),
		workers: max(workers, 1),
		metrics: newOutboxMetrics(reg),
	}
}

// Start launches the workers and returns once they are all running.
func (o *Outbox) Start() {
	o.once.Do(func() {
		ready := sync.WaitGroup{}
		ready.Add(o.workers)
		for i := range o.workers {
			o.wg.Add(1)
			go func() {
				defer o.wg.Done()
				ready.Done()
				o.work(i)
			}()
		}
		ready.Wait()
	})
}

func (o *Outbox) work(worker int) {
	for item := range o.queue {
		o.metrics.queued.Dec()
		err := o.run(item)
		if item.result != nil {
			item.result <- err
		}
		if err != nil {
			o.metrics.failedInc()
			Log(item.ctx).Warn("delivery failed", "worker", worker, "err", err)
			continue
		}
		o.metrics.sentInc()
	}
}

// run invokes the job, converting panics into errors.
func (o *Outbox) run(item outboxItem) (err error) {
	defer func() {
		if r := recover(); r != nil {
			Log(item.ctx).Error("panic", "details", r)
			err = errors.New("delivery panicked")
		}
	}()
	return item.fn(item.ctx)
}

// Submit queues a job without waiting for it. If the queue is full the job
// is dropped and errQueueFull is returned.
//
// The job runs with a detached context carrying the caller's request ID.
func (o *Outbox) Submit(ctx context.Context, fn job) error {
	item := outboxItem{ctx: detach(ctx), fn: fn}
	select {
	case o.queue <- item:
		o.metrics.queued.Inc()
		return nil
	default:
		o.metrics.droppedInc()
		Log(ctx).Warn("outbox is full, dropping delivery")
		return errQueueFull
	}
}

// Call queues a job and waits up to timeout for its result. The job keeps
// running if we stop waiting for it.
func (o *Outbox) Call(ctx context.Context, timeout time.Duration, fn job) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	item := outboxItem{ctx: detach(ctx), fn: fn, result: make(chan error, 1)}
	select {
	case o.queue <- item:
		o.metrics.queued.Inc()
	case <-ctx.Done():
		o.metrics.droppedInc()
		return errors.Join(errQueueFull, ctx.Err())
	}

	select {
	case err := <-item.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting jobs and waits for queued ones to drain, or for
// ctx to expire.
func (o *Outbox) Shutdown(ctx context.Context) {
	close(o.queue)
	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		Log(ctx).Warn("outbox shut down with deliveries pending", "pending", len(o.queue))
	}
}

// detach returns a background context which keeps the request ID of ctx.
func detach(ctx context.Context) context.Context {
	reqID := middleware.GetReqID(ctx)
	return context.WithValue(context.Background(), middleware.RequestIDKey, reqID)
}
