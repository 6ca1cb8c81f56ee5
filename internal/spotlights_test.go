package internal

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestClassifySpotlight(t *testing.T) {
	tests := []struct {
		title   string
		titleRU string
		want    string
	}{
		{title: "Last manga", want: "last_manga"},
		{titleRU: "Популярные новинки", want: "popular_new"},
		{title: "Top Manhwa", want: "top_manhwa"},
		{titleRU: "Топ маньхуа недели", want: "top_manhua"},
		{title: "Top manga", want: "top_manga"},
		{titleRU: "Самое читаемое", want: "most_read"},
		{title: "Latest updates", want: "latest_updates"},
		{titleRU: "Лейблы", want: "genres"},
		{title: "Genres", want: "genres"},
		{title: "Something else", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.title+tt.titleRU, func(t *testing.T) {
			got, ok := classifySpotlight(Spotlight{Title: tt.title, TitleRU: tt.titleRU})
			assert.Equal(t, tt.want != "", ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpotlights(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)
	getter := NewMockgetter(gomock.NewController(t))

	first := page[Spotlight]{
		Items: []Spotlight{
			{ID: "s1", Title: "Top manhwa", Manga: []Manga{{ID: "m1", Slug: "slug-m1"}}},
			{ID: "s2", Title: "Top manhwa again", Manga: []Manga{{ID: "m2", Slug: "slug-m2"}}},
		},
		HasNext:   true,
		EndCursor: "c1",
	}
	second := page[Spotlight]{
		Items: []Spotlight{
			{ID: "s3", Title: "Mystery block", Manga: []Manga{{ID: "m3", Slug: "slug-m3"}}},
		},
	}
	getter.EXPECT().GetSpotlightPage(gomock.Any(), "").Return(first, nil)
	getter.EXPECT().GetSpotlightPage(gomock.Any(), "c1").Return(second, nil)
	getter.EXPECT().Popular(gomock.Any(), "WEEK").Return([]Manga{{ID: "m4", Slug: "slug-m4"}}, nil)

	ctrl := newTestController(t, store, getter)

	// The second call is served from cache.
	for range 2 {
		out, err := ctrl.Spotlights(ctx, 0)
		require.NoError(t, err)

		var rsc SpotlightsResource
		require.NoError(t, sonic.ConfigStd.Unmarshal(out, &rsc))

		assert.Len(t, rsc.All, 3)
		require.NotNil(t, rsc.Spotlights["top_manhwa"])
		assert.Equal(t, "s2", rsc.Spotlights["top_manhwa"].ID, "last match wins")

		assert.Contains(t, rsc.Spotlights, "genres")
		assert.Nil(t, rsc.Spotlights["genres"])

		require.NotNil(t, rsc.Spotlights["most_read"])
		assert.Equal(t, "most_read", rsc.Spotlights["most_read"].ID)
		assert.Equal(t, "m4", rsc.Spotlights["most_read"].Manga[0].ID)
	}

	for _, slug := range []string{"slug-m1", "slug-m2", "slug-m3", "slug-m4"} {
		_, err := store.MangaBySlug(ctx, slug)
		assert.NoError(t, err, slug)
	}
}

func TestSpotlightsPageCap(t *testing.T) {
	store := newTestStore(t)
	getter := NewMockgetter(gomock.NewController(t))

	getter.EXPECT().GetSpotlightPage(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, after string) (page[Spotlight], error) {
		n, _ := strconv.Atoi(after)
		return page[Spotlight]{
			Items:     []Spotlight{{ID: strconv.Itoa(n), Title: "Most read"}},
			HasNext:   true,
			EndCursor: strconv.Itoa(n + 1),
		}, nil
	}).Times(_maxSpotlightPages)
	// Every "most read" block is empty so we synthesize one.
	getter.EXPECT().Popular(gomock.Any(), "WEEK").Return(nil, statusErr(500))

	ctrl := newTestController(t, store, getter)
	rsc, err := ctrl.spotlights(t.Context())
	require.NoError(t, err)
	assert.Len(t, rsc.All, _maxSpotlightPages)
	assert.Equal(t, strconv.Itoa(_maxSpotlightPages-1), rsc.Spotlights["most_read"].ID, "last match wins")
}

func TestSpotlightsUpstreamDown(t *testing.T) {
	ctx := t.Context()

	t.Run("stale", func(t *testing.T) {
		store := newTestStore(t)
		stale := []byte(`{"spotlights":{},"all_spotlights":[{"id":"old"}]}`)
		require.NoError(t, store.PutEntry(ctx, "spotlights_cache", stale, time.Now().Add(-2*time.Hour)))

		getter := NewMockgetter(gomock.NewController(t))
		getter.EXPECT().GetSpotlightPage(gomock.Any(), "").Return(page[Spotlight]{}, statusErr(502))

		ctrl := newTestController(t, store, getter)
		out, err := ctrl.Spotlights(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, string(stale), string(out))
	})

	t.Run("nothing cached", func(t *testing.T) {
		store := newTestStore(t)
		getter := NewMockgetter(gomock.NewController(t))
		getter.EXPECT().GetSpotlightPage(gomock.Any(), "").Return(page[Spotlight]{}, statusErr(503)).Times(2)

		ctrl := newTestController(t, store, getter)
		for range 2 {
			out, err := ctrl.Spotlights(ctx, 0)
			require.NoError(t, err)

			var rsc SpotlightsResource
			require.NoError(t, sonic.ConfigStd.Unmarshal(out, &rsc))
			assert.Empty(t, rsc.All)
			assert.Len(t, rsc.Spotlights, len(_spotlightRules))
			assert.Contains(t, rsc.Spotlights, "top_manga")
		}
	})
}
