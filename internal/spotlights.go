package internal

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// _maxSpotlightPages caps how many spotlight pages we request.
const _maxSpotlightPages = 5

// _spotlightRules classify spotlight blocks by their titles. The first rule
// with a matching keyword wins. When several blocks share a category the
// last one is kept.
var _spotlightRules = []struct {
	category string
	keywords []string
}{
	{"last_manga", []string{"последние манги", "last manga"}},
	{"popular_new", []string{"популярные новинки", "new popular"}},
	{"top_manhwa", []string{"топ манхв", "top manhwa"}},
	{"top_manhua", []string{"топ манхуа", "топ маньхуа", "top manhua"}},
	{"top_manga", []string{"топ манг", "top manga"}},
	{"most_read", []string{"самое читаемое", "most read"}},
	{"latest_updates", []string{"последние обновления", "latest updates"}},
	{"genres", []string{"лейблы", "labels", "жанры", "genres"}},
}

// classifySpotlight returns the block's category, or false if it doesn't
// match any rule.
func classifySpotlight(s Spotlight) (string, bool) {
	haystack := strings.ToLower(s.Title) + " " + strings.ToLower(s.TitleRU)
	for _, rule := range _spotlightRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.category, true
			}
		}
	}
	return "", false
}

// Spotlights returns the cached, categorized home page spotlights.
func (c *Controller) Spotlights(ctx context.Context, ttl time.Duration) ([]byte, error) {
	if ttl <= 0 {
		ttl = _spotlightsTTL
	}
	empty := SpotlightsResource{Spotlights: emptySpotlights(), All: []Spotlight{}, CachedAt: time.Now()}
	return c.aggregate(ctx, "spotlights_cache", ttl, empty, func(ctx context.Context) ([]byte, error) {
		rsc, err := c.spotlights(ctx)
		if err != nil {
			return nil, err
		}
		return sonic.ConfigStd.Marshal(rsc)
	})
}

func (c *Controller) spotlights(ctx context.Context) (SpotlightsResource, error) {
	all := []Spotlight{}
	after := ""
	for range _maxSpotlightPages {
		p, err := c.getter.GetSpotlightPage(ctx, after)
		if err != nil {
			if len(all) == 0 {
				return SpotlightsResource{}, err
			}
			Log(ctx).Warn("problem fetching spotlights, using partial result", "err", err)
			break
		}
		all = append(all, p.Items...)
		if !p.HasNext || p.EndCursor == "" {
			break
		}
		after = p.EndCursor
	}

	rsc := SpotlightsResource{
		Spotlights: emptySpotlights(),
		All:        all,
		CachedAt:   time.Now(),
	}

	for i, s := range all {
		for _, m := range s.Manga {
			if err := c.mirror.UpsertMangaSummary(ctx, m); err != nil {
				Log(ctx).Warn("problem saving spotlight manga", "slug", m.Slug, "err", err)
			}
		}

		category, ok := classifySpotlight(s)
		if !ok {
			Log(ctx).Debug("unclassified spotlight", "id", s.ID, "title", s.Title, "titleRU", s.TitleRU)
			continue
		}
		rsc.Spotlights[category] = &all[i]
	}

	if mr := rsc.Spotlights["most_read"]; mr == nil || len(mr.Manga) == 0 {
		manga, err := c.popular(ctx, "WEEK", _popularLength)
		if err != nil {
			Log(ctx).Warn("problem synthesizing most read", "err", err)
		} else if len(manga) > 0 {
			rsc.Spotlights["most_read"] = &Spotlight{
				ID:      "most_read",
				Title:   "Most read",
				TitleRU: "Самое читаемое",
				Manga:   manga,
			}
		}
	}

	return rsc, nil
}

// emptySpotlights has every category present and unset.
func emptySpotlights() map[string]*Spotlight {
	m := make(map[string]*Spotlight, len(_spotlightRules))
	for _, rule := range _spotlightRules {
		m[rule.category] = nil
	}
	return m
}
