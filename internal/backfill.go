package internal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// _maxChapterPages caps how many chapter pages a single backfill will walk.
var _maxChapterPages = 50

// Backfill walks a manga's chapter list from the upstream and mirrors it.
// The walk stops when the upstream runs out of pages, when limit chapters
// have been fetched, or after _maxChapterPages requests. An upstream error
// mid-walk also stops it, keeping whatever was fetched so far.
//
// The upstream doesn't report an authoritative total, so the number of
// chapters fetched is recorded as the manga's chapters_count.
func (c *Controller) Backfill(ctx context.Context, slug string, limit int) ([]Chapter, error) {
	m, err := c.getter.GetManga(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("getting manga %q: %w", slug, err)
	}
	if err := c.mirror.UpsertMangaDetails(ctx, m); err != nil {
		return nil, fmt.Errorf("saving details: %w", err)
	}

	fetched := []Chapter{}
	after := ""
	for pages := 0; pages < _maxChapterPages && len(fetched) < limit; pages++ {
		if pages > 0 && c.pageDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.pageDelay):
			}
		}

		p, err := c.getter.GetChapterPage(ctx, m.BranchID, after)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			Log(ctx).Warn("problem fetching chapter page", "slug", slug, "page", pages, "err", err)
			break
		}
		fetched = append(fetched, p.Items...)

		if !p.HasNext || p.EndCursor == "" {
			break
		}
		after = p.EndCursor
	}

	if len(fetched) > limit {
		fetched = fetched[:limit]
	}
	if len(fetched) == 0 {
		return fetched, nil
	}

	for i := range fetched {
		fetched[i].MangaID = m.ID
		fetched[i].URL = ChapterURL(m.Slug, fetched[i].Slug)
	}

	stats := c.mirror.UpsertChapters(ctx, m.ID, fetched)
	c.metrics.chaptersSavedAdd(stats.saved)
	Log(ctx).Info("saved chapters",
		"slug", slug,
		"fetched", len(fetched),
		"saved", stats.saved,
		"updated", stats.updated,
		"errors", stats.errors,
	)

	if err := c.mirror.UpdateChaptersCount(ctx, m.ID, len(fetched)); err != nil {
		Log(ctx).Warn("problem updating chapters count", "slug", slug, "err", err)
	}

	return fetched, nil
}

// BackfillAll runs a backfill for every mirrored manga, one at a time. It's
// used by the backfill command to seed a fresh mirror.
func (c *Controller) BackfillAll(ctx context.Context, onlyMissing, skipExisting bool, limit int, delay time.Duration) error {
	manga, err := c.mirror.MangaForBackfill(ctx, onlyMissing, skipExisting)
	if err != nil {
		return fmt.Errorf("listing manga: %w", err)
	}
	if limit > 0 && len(manga) > limit {
		manga = manga[:limit]
	}

	Log(ctx).Info("starting backfill", "manga", len(manga))

	var failed int
	for i, m := range manga {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(fuzz(delay, 1.5)):
			}
		}

		chapters, err := c.Backfill(ctx, m.Slug, _backfillLimit)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failed++
			Log(ctx).Warn("backfill failed", "slug", m.Slug, "err", err)
			continue
		}
		Log(ctx).Info("backfilled", "slug", m.Slug, "chapters", len(chapters), "progress", fmt.Sprintf("%d/%d", i+1, len(manga)))
	}

	Log(ctx).Info("backfill complete", "manga", len(manga), "failed", failed)
	return nil
}
