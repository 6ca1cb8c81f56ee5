package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// notifier is told about new releases.
type notifier interface {
	Notify(ctx context.Context, ev ReleaseEvent) (int, error)
}

// Poller watches the upstream feed for new chapters. Each tick mirrors the
// feed, saves and announces releases, then runs the premium sweep.
type Poller struct {
	mirror   mirror
	getter   getter
	notifier notifier
	detector *changeDetector
	sweeper  *premiumSweeper
	interval time.Duration
	metrics  *pollerMetrics

	done chan struct{} // Closed once Run returns.
}

// NewPoller creates a new Poller which ticks every interval.
func NewPoller(store mirror, getter getter, notifier notifier, interval time.Duration, reg *prometheus.Registry) *Poller {
	return &Poller{
		mirror:   store,
		getter:   getter,
		notifier: notifier,
		detector: newChangeDetector(),
		sweeper:  newPremiumSweeper(store),
		interval: interval,
		metrics:  newPollerMetrics(reg),
		done:     make(chan struct{}),
	}
}

// Run polls immediately and then every interval until ctx is cancelled.
// Ticks never overlap; a slow tick delays the next one.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for n := 1; ; n++ {
		p.tick(context.WithValue(ctx, middleware.RequestIDKey, fmt.Sprintf("poll-%d", n)))

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Wait blocks until Run has returned, including any tick in progress, or
// until ctx expires. Run must have been started.
func (p *Poller) Wait(ctx context.Context) {
	select {
	case <-p.done:
	case <-ctx.Done():
		Log(ctx).Warn("poller is still running")
	}
}

func (p *Poller) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			p.metrics.failuresInc()
			Log(ctx).Error("panic", "details", r)
		}
	}()

	p.metrics.ticksInc()

	if err := p.poll(ctx); err != nil {
		p.metrics.failuresInc()
		Log(ctx).Warn("poll failed", "err", err)
	}

	n, err := p.sweeper.sweep(ctx)
	if err != nil {
		Log(ctx).Warn("premium sweep failed", "err", err)
	}
	p.metrics.expiredAdd(n)
}

// poll mirrors the feed and handles releases.
func (p *Poller) poll(ctx context.Context) error {
	items, err := p.getter.MainFeed(ctx)
	if err != nil {
		return fmt.Errorf("getting feed: %w", err)
	}

	releases := 0
	for _, item := range items {
		if item.Manga.ID == "" || item.Chapter.ID == "" {
			continue
		}
		if err := p.mirror.UpsertFeedItem(ctx, item); err != nil {
			Log(ctx).Warn("problem saving feed item", "slug", item.Manga.Slug, "err", err)
			continue
		}
		if !p.detector.observe(item.Manga.ID, item.Chapter.ID) {
			continue
		}
		if p.release(ctx, item) {
			releases++
		}
	}

	Log(ctx).Debug("polled feed", "items", len(items), "releases", releases, "tracked", p.detector.len())
	return nil
}

// release saves a new chapter's pages and notifies subscribers. Chapters
// without pages yet are skipped.
func (p *Poller) release(ctx context.Context, item FeedItem) bool {
	Log(ctx).Info("new chapter", "slug", item.Manga.Slug, "chapter", item.Chapter.Number)

	pages, err := p.getter.GetChapterImages(ctx, item.Chapter.Slug)
	if err != nil {
		Log(ctx).Warn("problem getting chapter pages", "slug", item.Chapter.Slug, "err", err)
		return false
	}
	if len(pages) == 0 {
		Log(ctx).Info("chapter has no pages yet, skipping", "slug", item.Chapter.Slug)
		return false
	}

	c := item.Chapter
	c.MangaID = item.Manga.ID
	c.URL = ChapterURL(item.Manga.Slug, c.Slug)
	c.Pages = pages
	c.PagesCount = len(pages)
	if err := p.mirror.SaveChapter(ctx, c); err != nil {
		Log(ctx).Warn("problem saving chapter", "slug", c.Slug, "err", err)
		return false
	}
	p.metrics.releasesInc()

	if p.notifier == nil {
		return true
	}
	if _, err := p.notifier.Notify(ctx, ReleaseEvent{Manga: item.Manga, Chapter: c}); err != nil {
		Log(ctx).Warn("problem notifying subscribers", "slug", item.Manga.Slug, "err", err)
	}
	return true
}
