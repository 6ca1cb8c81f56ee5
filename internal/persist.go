package internal

import (
	"context"
	"strings"
	"time"
)

// persister records in-flight backfills so we can resume them on reboot.
type persister interface {
	Persist(ctx context.Context, slug string) error
	Persisted(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, slug string) error
}

// Persister tracks backfill state across reboots using the cache table.
type Persister struct {
	entries interface {
		PutEntry(ctx context.Context, key string, value []byte, at time.Time) error
		DeleteEntry(ctx context.Context, key string) error
		EntryKeys(ctx context.Context, prefix string) ([]string, error)
	}
}

// nopersist no-ops persistence for tests.
type nopersist struct{}

var (
	_ persister = (*Persister)(nil)
	_ persister = (*nopersist)(nil)
)

func (*nopersist) Persist(ctx context.Context, slug string) error {
	return nil
}

func (*nopersist) Persisted(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (*nopersist) Delete(ctx context.Context, slug string) error {
	return nil
}

// NewPersister creates a new Persister backed by the mirror's cache table.
func NewPersister(store mirror) *Persister {
	return &Persister{entries: store}
}

// Persist records a backfill as in-flight.
func (p *Persister) Persist(ctx context.Context, slug string) error {
	return p.entries.PutEntry(ctx, backfillKey(slug), []byte(slug), time.Now())
}

// Delete records an in-flight backfill as completed.
func (p *Persister) Delete(ctx context.Context, slug string) error {
	return p.entries.DeleteEntry(ctx, backfillKey(slug))
}

// Persisted returns all in-flight backfills so they can be resumed. Slugs are
// returned in FIFO order.
func (p *Persister) Persisted(ctx context.Context) ([]string, error) {
	start := time.Now()

	keys, err := p.entries.EntryKeys(ctx, _backfillPrefix)
	if err != nil {
		Log(ctx).Error("unable to recover in-flight backfills", "err", err)
		return nil, err
	}

	slugs := make([]string, 0, len(keys))
	for _, k := range keys {
		slugs = append(slugs, strings.TrimPrefix(k, _backfillPrefix))
	}

	if len(slugs) > 0 {
		Log(ctx).Debug("recovered in-flight backfills", "count", len(slugs), "duration", time.Since(start).String())
	}

	return slugs, nil
}

const _backfillPrefix = "backfill:"

func backfillKey(slug string) string {
	return _backfillPrefix + slug
}
