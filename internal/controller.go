package internal

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/option"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var (
	// _detailTTL is how long a manga's details are trusted by the detail view.
	_detailTTL = time.Hour

	// _bulkTTL is how long details are trusted by bulk refreshes.
	_bulkTTL = 24 * time.Hour

	// _recentTTL, _popularTTL and _spotlightsTTL are the default freshness
	// windows for the home page aggregates.
	_recentTTL     = 5 * time.Minute
	_popularTTL    = 10 * time.Minute
	_spotlightsTTL = time.Hour

	// _backfillLimit bounds how many chapters a triggered backfill saves.
	_backfillLimit = 10000
)

const (
	_viewChapters  = 50
	_maxListLimit  = 5000
	_maxBulkSlugs  = 20
	_maxSearch     = 50
	_feedItems     = 21
	_recentMirror  = 20
	_popularLength = 12
)

// Controller coordinates reads against the mirror with upstream refreshes.
//
// Detail lookups for the same slug are coalesced with a singleflight group.
// Chapter backfills are expensive and run in the background, bounded by the
// refresh pool, with at most one backfill per slug in flight at a time.
type Controller struct {
	mirror    mirror
	getter    getter             // Upstream catalog.
	cache     *aggregateCache    // Home page aggregates.
	persister persister          // persister tracks in-flight backfills across reboots.
	group     singleflight.Group // Coalesce lookups for the same key.

	// refreshG limits how many backfills and refreshes run in the background.
	refreshG errgroup.Group
	pending  sync.WaitGroup

	// loading holds slugs with a backfill in flight.
	loading syncset[string]

	// refreshC feeds bulk refresh requests through a deduping buffer.
	refreshC chan string
	refreshQ <-chan string

	pageDelay time.Duration
	metrics   *controllerMetrics
}

// getter allows alternative implementations of the upstream to be injected.
// Implementations shouldn't write to the mirror.
type getter interface {
	// MainFeed returns the upstream's latest chapters, one per manga.
	MainFeed(ctx context.Context) ([]FeedItem, error)

	// GetManga returns a manga's details with BranchID already selected.
	// errNotFound is returned for unknown slugs.
	GetManga(ctx context.Context, slug string) (Manga, error)

	// GetChapterPage returns one page of a branch's chapters. An empty
	// cursor starts from the beginning.
	GetChapterPage(ctx context.Context, branchID string, after string) (page[Chapter], error)

	// GetChapterImages returns a chapter's page images.
	GetChapterImages(ctx context.Context, chapterSlug string) ([]string, error)

	// GetSpotlightPage returns one page of curated home page blocks.
	GetSpotlightPage(ctx context.Context, after string) (page[Spotlight], error)

	// Popular returns the most popular manga for DAY, WEEK or MONTH.
	Popular(ctx context.Context, period string) ([]Manga, error)

	// Search performs a query against the upstream.
	Search(ctx context.Context, query string, after string) (page[Manga], error)
}

// NewController creates a new controller. Background backfills and refreshes
// are bounded to at most 15 concurrent tasks.
func NewController(store mirror, getter getter, mem *cache.Cache[[]byte], persister persister, pageDelay time.Duration, reg *prometheus.Registry) (*Controller, error) {
	if mem == nil {
		var err error
		mem, err = NewMemoryCache()
		if err != nil {
			return nil, err
		}
	}

	c := &Controller{
		mirror:    store,
		getter:    getter,
		cache:     newAggregateCache(mem, store, newCacheMetrics(reg)),
		persister: &nopersist{},
		refreshC:  make(chan string),
		pageDelay: pageDelay,
		metrics:   newControllerMetrics(reg),
	}
	if persister != nil {
		c.persister = persister
	}
	c.refreshQ = accumulate(c.refreshC, &slugbuf{})

	c.refreshG.SetLimit(15)

	// Log controller stats every minute.
	go func() {
		ctx := context.Background()
		for {
			time.Sleep(1 * time.Minute)
			Log(ctx).Debug("controller stats",
				"backfillsWaiting", c.metrics.backfillWaitingGet(),
				"refreshWaiting", c.metrics.refreshWaitingGet(),
				"cacheHitRatio", c.cache.metrics.cacheHitRatioGet(),
			)
		}
	}()

	// Retry any backfills that were in-flight when we last shut down.
	go func() {
		ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "recovery")
		slugs, err := c.persister.Persisted(ctx)
		if err != nil {
			Log(ctx).Error("problem retrying in-flight backfills", "err", err)
		}
		for _, slug := range slugs {
			Log(ctx).Debug("resuming backfill", "slug", slug)
			c.trigger(ctx, slug)
		}
	}()

	return c, nil
}

// GetManga returns the detail view for a manga. Details are refreshed from
// upstream when forced, missing, incomplete or older than an hour; if that
// fails we serve whatever we have mirrored.
//
// If we know the manga has more chapters than we've mirrored, a backfill is
// kicked off in the background.
func (c *Controller) GetManga(ctx context.Context, slug string, force bool) (MangaView, error) {
	m, err := c.mirror.MangaBySlug(ctx, slug)
	missing := errors.Is(err, errNotFound)
	if err != nil && !missing {
		return MangaView{}, fmt.Errorf("loading %q: %w", slug, err)
	}

	if force || missing || strings.TrimSpace(m.Description) == "" || time.Since(m.LastUpdated) > _detailTTL {
		fresh, err := c.refreshDetails(ctx, slug)
		switch {
		case err == nil:
			m = fresh
		case missing:
			Log(ctx).Warn("problem getting manga", "slug", slug, "err", err)
			return MangaView{}, errors.Join(errNotFound, err)
		default:
			Log(ctx).Warn("upstream unavailable, serving mirrored manga", "slug", slug, "err", err)
		}
	}

	total, err := c.mirror.CountChapters(ctx, m.ID)
	if err != nil {
		return MangaView{}, fmt.Errorf("counting chapters: %w", err)
	}
	chapters, err := c.mirror.ListChapters(ctx, m.ID, 0, _viewChapters, true)
	if err != nil {
		return MangaView{}, err
	}

	if m.ID != "" && !c.loading.has(slug) && m.ChaptersCount > 0 && total < m.ChaptersCount {
		Log(ctx).Info("mirror is missing chapters", "slug", slug, "expected", m.ChaptersCount, "have", total)
		c.trigger(ctx, slug)
	}

	return MangaView{
		Manga:     m,
		Chapters:  chapters,
		TotalInDB: total,
		IsLoading: c.loading.has(slug),
	}, nil
}

// refreshDetails fetches and mirrors a manga's details. Concurrent refreshes
// for the same slug share one upstream call.
func (c *Controller) refreshDetails(ctx context.Context, slug string) (Manga, error) {
	out, err, _ := c.group.Do("manga:"+slug, func() (any, error) {
		m, err := c.getter.GetManga(ctx, slug)
		if err != nil {
			return Manga{}, err
		}
		if err := c.mirror.UpsertMangaDetails(ctx, m); err != nil {
			return Manga{}, fmt.Errorf("saving details: %w", err)
		}
		c.metrics.refreshesInc()
		return c.mirror.MangaBySlug(ctx, m.Slug)
	})
	return out.(Manga), err
}

// trigger schedules a backfill for the slug unless one is already in flight.
// It never blocks on the refresh pool. False is returned if a backfill was
// already running.
func (c *Controller) trigger(ctx context.Context, slug string) bool {
	if !c.loading.add(slug) {
		return false
	}
	c.pending.Add(1)
	c.metrics.backfillWaitingAdd(1)

	if err := c.persister.Persist(ctx, slug); err != nil {
		Log(ctx).Warn("problem persisting backfill", "slug", slug, "err", err)
	}

	go c.refreshG.Go(func() error {
		ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "backfill-"+slug)

		defer func() {
			if r := recover(); r != nil {
				Log(ctx).Error("panic", "details", r)
			}
			if err := c.persister.Delete(ctx, slug); err != nil {
				Log(ctx).Warn("problem un-persisting backfill", "err", err)
			}
			c.loading.remove(slug)
			c.metrics.backfillWaitingAdd(-1)
			c.pending.Done()
		}()

		start := time.Now()
		chapters, err := c.Backfill(ctx, slug, _backfillLimit)
		if err != nil {
			Log(ctx).Warn("backfill failed", "slug", slug, "err", err)
			return nil
		}
		Log(ctx).Info("backfill finished", "slug", slug, "chapters", len(chapters), "duration", time.Since(start).String())
		return nil
	})

	return true
}

// ListChapters returns a page of a manga's mirrored chapters. An unknown
// manga yields an empty list.
func (c *Controller) ListChapters(ctx context.Context, slug string, offset, limit int, desc bool) (ChapterList, error) {
	if limit <= 0 {
		limit = _viewChapters
	}
	limit = min(limit, _maxListLimit)
	offset = max(offset, 0)

	result := ChapterList{Chapters: []Chapter{}, IsLoading: c.loading.has(slug)}

	m, err := c.mirror.MangaBySlug(ctx, slug)
	if errors.Is(err, errNotFound) {
		return result, nil
	}
	if err != nil {
		return result, err
	}

	result.TotalInDB, err = c.mirror.CountChapters(ctx, m.ID)
	if err != nil {
		return result, err
	}
	result.Chapters, err = c.mirror.ListChapters(ctx, m.ID, offset, limit, desc)
	if err != nil {
		return result, err
	}
	result.HasMore = offset+len(result.Chapters) < result.TotalInDB

	return result, nil
}

// BulkRefresh queues up to 20 slugs for a background metadata refresh and
// returns how many were accepted.
func (c *Controller) BulkRefresh(ctx context.Context, slugs []string) int {
	accepted := []string{}
	for _, s := range slugs {
		if len(accepted) == _maxBulkSlugs {
			break
		}
		if s = strings.TrimSpace(s); s != "" {
			accepted = append(accepted, s)
		}
	}

	go func() {
		for _, s := range accepted {
			c.refreshC <- s
		}
	}()

	return len(accepted)
}

// Run consumes bulk refresh requests until ctx is cancelled. Each refresh
// is scheduled on the refresh pool.
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case slug, ok := <-c.refreshQ:
			if !ok {
				return
			}
			c.pending.Add(1)
			c.metrics.refreshWaitingAdd(1)
			c.refreshG.Go(func() error {
				ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "refresh-"+slug)
				defer func() {
					if r := recover(); r != nil {
						Log(ctx).Error("panic", "details", r)
					}
					c.metrics.refreshWaitingAdd(-1)
					c.pending.Done()
				}()
				c.refreshIfStale(ctx, slug)
				return nil
			})
		}
	}
}

// refreshIfStale refreshes a manga's details if they're missing, incomplete
// or older than a day.
func (c *Controller) refreshIfStale(ctx context.Context, slug string) {
	m, err := c.mirror.MangaBySlug(ctx, slug)
	if err == nil && strings.TrimSpace(m.Description) != "" && time.Since(m.LastUpdated) < _bulkTTL {
		return
	}
	if _, err := c.refreshDetails(ctx, slug); err != nil {
		Log(ctx).Warn("problem refreshing manga", "slug", slug, "err", err)
		return
	}
	Log(ctx).Info("refreshed manga", "slug", slug)
}

// Search queries the upstream, paging until 50 results. Every result is
// mirrored as a sighting.
func (c *Controller) Search(ctx context.Context, query string) ([]Manga, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errBadRequest
	}

	results := []Manga{}
	after := ""
	for len(results) < _maxSearch {
		p, err := c.getter.Search(ctx, query, after)
		if err != nil {
			if len(results) > 0 {
				Log(ctx).Warn("search interrupted", "q", query, "err", err)
				break
			}
			return nil, err
		}
		results = append(results, p.Items...)
		if !p.HasNext || p.EndCursor == "" || len(p.Items) == 0 {
			break
		}
		after = p.EndCursor
	}
	if len(results) > _maxSearch {
		results = results[:_maxSearch]
	}

	for _, m := range results {
		if err := c.mirror.UpsertMangaSummary(ctx, m); err != nil {
			Log(ctx).Warn("problem saving search result", "slug", m.Slug, "err", err)
		}
	}

	return results, nil
}

// Popular returns the cached popular list for the period. Unknown periods
// fall back to MONTH.
func (c *Controller) Popular(ctx context.Context, period string, ttl time.Duration) ([]byte, error) {
	period = strings.ToUpper(strings.TrimSpace(period))
	if period != "DAY" && period != "WEEK" && period != "MONTH" {
		period = "MONTH"
	}
	if ttl <= 0 {
		ttl = _popularTTL
	}

	empty := PopularResource{Period: period, Manga: []Manga{}, CachedAt: time.Now()}
	return c.aggregate(ctx, "popular_"+strings.ToLower(period), ttl, empty, func(ctx context.Context) ([]byte, error) {
		manga, err := c.popular(ctx, period, _popularLength)
		if err != nil {
			return nil, err
		}
		return sonic.ConfigStd.Marshal(PopularResource{Period: period, Manga: manga, CachedAt: time.Now()})
	})
}

// aggregate serves a home page aggregate from the cache. When it can't be
// recomputed and nothing stale is cached, the empty resource is served
// instead without being cached.
func (c *Controller) aggregate(ctx context.Context, key string, ttl time.Duration, empty any, recompute func(context.Context) ([]byte, error)) ([]byte, error) {
	out, err := c.cache.Fetch(ctx, key, ttl, recompute)
	if err == nil {
		return out, nil
	}
	Log(ctx).Warn("upstream unavailable, serving empty aggregate", "key", key, "err", err)
	return sonic.ConfigStd.Marshal(empty)
}

func (c *Controller) popular(ctx context.Context, period string, limit int) ([]Manga, error) {
	manga, err := c.getter.Popular(ctx, period)
	if err != nil {
		return nil, err
	}
	if len(manga) > limit {
		manga = manga[:limit]
	}
	for _, m := range manga {
		if err := c.mirror.UpsertMangaSummary(ctx, m); err != nil {
			Log(ctx).Warn("problem saving popular manga", "slug", m.Slug, "err", err)
		}
	}
	return manga, nil
}

// RecentChapters returns the cached home page feed. When the upstream is
// unavailable the newest mirrored chapters are used instead.
func (c *Controller) RecentChapters(ctx context.Context, ttl time.Duration) ([]byte, error) {
	if ttl <= 0 {
		ttl = _recentTTL
	}
	empty := RecentResource{Chapters: []RecentChapter{}, Source: "mirror", CachedAt: time.Now()}
	return c.aggregate(ctx, "recent_chapters_cache", ttl, empty, func(ctx context.Context) ([]byte, error) {
		rsc, err := c.recentChapters(ctx)
		if err != nil {
			return nil, err
		}
		return sonic.ConfigStd.Marshal(rsc)
	})
}

func (c *Controller) recentChapters(ctx context.Context) (RecentResource, error) {
	items, err := c.getter.MainFeed(ctx)
	if err != nil {
		Log(ctx).Warn("problem getting feed, falling back to mirror", "err", err)
	}
	if len(items) == 0 {
		recent, err := c.mirror.RecentChapters(ctx, _recentMirror)
		if err != nil {
			return RecentResource{}, err
		}
		return RecentResource{Chapters: recent, Source: "mirror", CachedAt: time.Now()}, nil
	}

	if len(items) > _feedItems {
		items = items[:_feedItems]
	}
	rsc := RecentResource{Chapters: make([]RecentChapter, 0, len(items)), Source: "upstream", CachedAt: time.Now()}
	for _, item := range items {
		if err := c.mirror.UpsertFeedItem(ctx, item); err != nil {
			Log(ctx).Warn("problem saving feed item", "slug", item.Manga.Slug, "err", err)
		}
		rsc.Chapters = append(rsc.Chapters, RecentChapter{
			MangaID:       item.Manga.ID,
			MangaSlug:     item.Manga.Slug,
			MangaTitle:    item.Manga.Title,
			CoverURL:      item.Manga.CoverURL,
			ChapterID:     item.Chapter.ID,
			ChapterSlug:   item.Chapter.Slug,
			ChapterNumber: item.Chapter.Number,
			ChapterVolume: item.Chapter.Volume,
			ChapterName:   item.Chapter.Name,
			CreatedAt:     item.Chapter.CreatedAt,
		})
	}
	return rsc, nil
}

// Shutdown waits for background backfills and refreshes to finish, or for ctx
// to expire.
func (c *Controller) Shutdown(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		Log(ctx).Warn("shutting down with background work in flight", "slugs", c.loading.items())
	}
}

// fuzz scales the given duration into the range (d, d * f).
func fuzz(d time.Duration, f float64) time.Duration {
	if f < 1.0 {
		f += 1.0
	}
	factor := 1.0 + rand.Float64()*(f-1.0)
	return time.Duration(float64(d) * factor)
}

// Configure sonic's memory pooling.
func init() {
	option.LimitBufferSize = 100 * 1024 * 1024    // 100MB max buffer.
	option.DefaultDecoderBufferSize = 1024 * 1024 // 1MB
	option.DefaultEncoderBufferSize = 1024 * 1024 // 1MB
}
