package internal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(t.Context(), filepath.Join(t.TempDir(), "mirror.db"))
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func testManga(id string) Manga {
	return Manga{
		ID:            id,
		Slug:          "slug-" + id,
		Title:         "Title " + id,
		Description:   "Description " + id,
		ChaptersCount: 3,
		BranchID:      "branch-" + id,
		Tags:          []string{"Драма", "Сёнэн"},
	}
}

func testChapters(mangaID string, numbers ...string) []Chapter {
	chapters := make([]Chapter, 0, len(numbers))
	for _, n := range numbers {
		chapters = append(chapters, Chapter{
			ID:      mangaID + "-c" + n,
			MangaID: mangaID,
			Slug:    "ch-" + n,
			Number:  n,
			URL:     ChapterURL("slug-"+mangaID, "ch-"+n),
		})
	}
	return chapters
}

func TestUpsertChaptersIdempotent(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)

	require.NoError(t, store.UpsertMangaDetails(ctx, testManga("m1")))

	chapters := testChapters("m1", "1", "2", "3")

	stats := store.UpsertChapters(ctx, "m1", chapters)
	assert.Equal(t, upsertStats{saved: 3}, stats)

	// Replaying the same batch changes nothing.
	stats = store.UpsertChapters(ctx, "m1", chapters)
	assert.Equal(t, upsertStats{}, stats)

	n, err := store.CountChapters(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// A renumbered chapter is patched in place.
	chapters[2].Number = "3.5"
	chapters[2].Name = "Эпилог"
	stats = store.UpsertChapters(ctx, "m1", chapters)
	assert.Equal(t, upsertStats{updated: 1}, stats)

	n, err = store.CountChapters(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := store.ListChapters(ctx, "m1", 0, 1, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3.5", got[0].Number)
	assert.Equal(t, "Эпилог", got[0].Name)
}

func TestUpsertChaptersCountsErrors(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)

	// The manga doesn't exist so the foreign key rejects every row.
	stats := store.UpsertChapters(ctx, "ghost", testChapters("ghost", "1", "2"))
	assert.Equal(t, upsertStats{errors: 2}, stats)
}

func TestListChaptersNumericOrder(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)

	require.NoError(t, store.UpsertMangaDetails(ctx, testManga("m1")))
	store.UpsertChapters(ctx, "m1", testChapters("m1", "1", "10", "2", "2.5"))

	desc, err := store.ListChapters(ctx, "m1", 0, 10, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "2.5", "2", "1"}, numbers(desc))

	asc, err := store.ListChapters(ctx, "m1", 1, 2, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "2.5"}, numbers(asc))
}

func TestUpsertSummaryKeepsDetails(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)

	require.NoError(t, store.UpsertMangaDetails(ctx, testManga("m1")))
	before, err := store.MangaBySlug(ctx, "slug-m1")
	require.NoError(t, err)

	// A search sighting with sparse fields.
	require.NoError(t, store.UpsertMangaSummary(ctx, Manga{ID: "m1", Slug: "slug-m1", CoverURL: "https://img/cover.jpg"}))

	after, err := store.MangaBySlug(ctx, "slug-m1")
	require.NoError(t, err)

	assert.Equal(t, "Title m1", after.Title)
	assert.Equal(t, "Description m1", after.Description)
	assert.Equal(t, "branch-m1", after.BranchID)
	assert.Equal(t, []string{"Драма", "Сёнэн"}, after.Tags)
	assert.Equal(t, "https://img/cover.jpg", after.CoverURL)
	assert.True(t, before.LastUpdated.Equal(after.LastUpdated), "summaries shouldn't bump last_updated")
}

func TestUpsertFeedItem(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)

	item := FeedItem{
		Manga:   Manga{ID: "m1", Slug: "slug-m1", Title: "Title m1"},
		Chapter: testChapters("m1", "7")[0],
	}

	require.NoError(t, store.UpsertFeedItem(ctx, item))
	require.NoError(t, store.UpsertFeedItem(ctx, item))

	m, err := store.MangaBySlug(ctx, "slug-m1")
	require.NoError(t, err)
	assert.Equal(t, "m1-c7", m.LastChapterID)
	assert.Equal(t, "7", m.LastChapterNumber)
	assert.Equal(t, "ch-7", m.LastChapterSlug)
	assert.Empty(t, m.Description)
	assert.True(t, m.LastUpdated.Before(time.Now().Add(-time.Hour)), "feed sightings aren't detail refreshes")

	n, err := store.CountChapters(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	recent, err := store.RecentChapters(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "slug-m1", recent[0].MangaSlug)
	assert.Equal(t, "7", recent[0].ChapterNumber)
}

func TestSaveChapterPages(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)

	require.NoError(t, store.UpsertMangaDetails(ctx, testManga("m1")))
	c := testChapters("m1", "1")[0]
	store.UpsertChapters(ctx, "m1", []Chapter{c})

	c.Pages = []string{"https://img/1.webp", "https://img/2.webp"}
	require.NoError(t, store.SaveChapter(ctx, c))

	got, err := store.ListChapters(ctx, "m1", 0, 10, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, c.Pages, got[0].Pages)
	assert.Equal(t, 2, got[0].PagesCount)
}

func TestMangaBySlugNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.MangaBySlug(t.Context(), "missing")
	assert.ErrorIs(t, err, errNotFound)
}

func TestMangaForBackfill(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)

	require.NoError(t, store.UpsertMangaDetails(ctx, testManga("m1")))
	require.NoError(t, store.UpsertMangaSummary(ctx, Manga{ID: "m2", Slug: "slug-m2"}))
	require.NoError(t, store.UpsertMangaDetails(ctx, testManga("m3")))
	store.UpsertChapters(ctx, "m3", testChapters("m3", "1"))

	all, err := store.MangaForBackfill(ctx, false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2", "m3"}, ids(all))

	missing, err := store.MangaForBackfill(ctx, true, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"m2"}, ids(missing))

	fresh, err := store.MangaForBackfill(ctx, false, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2"}, ids(fresh))
}

func TestExpirePremium(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)
	now := time.Now().UTC()

	exec := func(query string, args ...any) {
		t.Helper()
		_, err := store.db.ExecContext(ctx, query, args...)
		require.NoError(t, err)
	}

	exec(`INSERT INTO users (id, telegram_id, is_premium, premium_expires_at) VALUES (1, 100, 1, ?)`, now.Add(-time.Hour))
	exec(`INSERT INTO users (id, telegram_id, is_premium, premium_expires_at) VALUES (2, 200, 1, ?)`, now.Add(time.Hour))
	exec(`INSERT INTO users (id, telegram_id, is_premium, premium_expires_at) VALUES (3, 300, 1, NULL)`)

	exec(`INSERT INTO shop_items (id, type) VALUES (10, 'frame'), (11, 'badge')`)
	exec(`INSERT INTO user_items (user_id, item_id, is_premium_loan, is_equipped) VALUES (1, 10, 1, 1), (1, 11, 0, 1), (2, 10, 1, 1)`)
	exec(`INSERT INTO user_profile (user_id, frame_item_id, badge_item_id) VALUES (1, 10, 11), (2, 10, NULL)`)

	n, err := store.ExpirePremium(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var premium bool
	var expires *time.Time
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT is_premium, premium_expires_at FROM users WHERE id = 1`).Scan(&premium, &expires))
	assert.False(t, premium)
	assert.Nil(t, expires)

	var frame, badge *int64
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT frame_item_id, badge_item_id FROM user_profile WHERE user_id = 1`).Scan(&frame, &badge))
	assert.Nil(t, frame)
	require.NotNil(t, badge)
	assert.Equal(t, int64(11), *badge)

	var items int
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_items WHERE user_id = 1`).Scan(&items))
	assert.Equal(t, 1, items)

	// Unexpired and open-ended subscriptions are untouched.
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE is_premium = 1`).Scan(&items))
	assert.Equal(t, 2, items)

	// Running again is a no-op.
	n, err = store.ExpirePremium(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExpirePremiumTextLayouts(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	// Same day as now, written the way the bot writes them.
	_, err := store.db.ExecContext(ctx, `
		INSERT INTO users (id, telegram_id, is_premium, premium_expires_at) VALUES
			(1, 100, 1, '2026-03-14T09:30:00'),
			(2, 200, 1, '2026-03-14T18:45:00.123456'),
			(3, 300, 1, '2026-03-14 11:59:59'),
			(4, 400, 1, '2026-03-14T13:00:00+03:00');
	`)
	require.NoError(t, err)

	n, err := store.ExpirePremium(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var premium bool
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT is_premium FROM users WHERE id = 2`).Scan(&premium))
	assert.True(t, premium)

	for _, id := range []int{1, 3, 4} {
		require.NoError(t, store.db.QueryRowContext(ctx, `SELECT is_premium FROM users WHERE id = ?`, id).Scan(&premium))
		assert.False(t, premium, "user %d", id)
	}
}

func TestSubscribers(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)

	_, err := store.db.ExecContext(ctx, `
		INSERT INTO users (id, telegram_id, notifications_enabled) VALUES (1, 100, 1), (2, 200, 0);
		INSERT INTO subscriptions (user_id, manga_id) VALUES (1, 'm1'), (2, 'm1'), (2, 'm2');
	`)
	require.NoError(t, err)

	subs, err := store.Subscribers(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, []subscriber{
		{UserID: 1, TelegramID: 100, NotificationsEnabled: true},
		{UserID: 2, TelegramID: 200, NotificationsEnabled: false},
	}, subs)

	c, err := store.counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.subscriptions)
}

func TestEntries(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)

	_, ok, err := store.GetEntry(ctx, "spotlights_cache")
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Now().Add(-time.Minute)
	require.NoError(t, store.PutEntry(ctx, "spotlights_cache", []byte(`{"a":1}`), at))
	require.NoError(t, store.PutEntry(ctx, "spotlights_cache", []byte(`{"a":2}`), at))

	e, ok, err := store.GetEntry(ctx, "spotlights_cache")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":2}`, string(e.Value))
	assert.WithinDuration(t, at, e.UpdatedAt, time.Millisecond)

	require.NoError(t, store.DeleteEntry(ctx, "spotlights_cache"))
	_, ok, err = store.GetEntry(ctx, "spotlights_cache")
	require.NoError(t, err)
	assert.False(t, ok)
}

func numbers(chapters []Chapter) []string {
	out := []string{}
	for _, c := range chapters {
		out = append(out, c.Number)
	}
	return out
}

func ids(manga []Manga) []string {
	out := []string{}
	for _, m := range manga {
		out = append(out, m.ID)
	}
	return out
}
