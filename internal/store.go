package internal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// mirror is the local copy of the upstream catalog plus the collaborator
// tables we need for notifications and premium bookkeeping. All writes are
// idempotent per upstream ID.
type mirror interface {
	// UpsertFeedItem records a feed sighting: the manga's summary and
	// last-chapter columns are updated, and the chapter is inserted if we
	// haven't seen it before.
	UpsertFeedItem(ctx context.Context, item FeedItem) error

	// UpsertMangaSummary records a sighting from search or spotlights. Detail
	// columns (description, tags, branch) are left alone.
	UpsertMangaSummary(ctx context.Context, m Manga) error

	// UpsertMangaDetails records a full detail fetch and bumps last_updated.
	UpsertMangaDetails(ctx context.Context, m Manga) error

	// UpsertChapters saves chapters row by row. Failures are counted rather
	// than aborting the batch.
	UpsertChapters(ctx context.Context, mangaID string, chapters []Chapter) upsertStats

	// SaveChapter upserts a chapter along with its page list.
	SaveChapter(ctx context.Context, c Chapter) error

	UpdateChaptersCount(ctx context.Context, mangaID string, n int) error

	// MangaBySlug returns errNotFound if we've never seen the manga.
	MangaBySlug(ctx context.Context, slug string) (Manga, error)

	CountChapters(ctx context.Context, mangaID string) (int, error)

	// ListChapters returns chapters ordered by their numeric value.
	ListChapters(ctx context.Context, mangaID string, offset, limit int, desc bool) ([]Chapter, error)

	// RecentChapters returns the newest mirrored chapters across all manga.
	RecentChapters(ctx context.Context, limit int) ([]RecentChapter, error)

	// MangaForBackfill lists manga in insertion order. onlyMissing restricts
	// to manga with no declared chapters; skipExisting drops manga which
	// already have mirrored chapters.
	MangaForBackfill(ctx context.Context, onlyMissing, skipExisting bool) ([]Manga, error)

	// Subscribers returns everyone subscribed to the manga.
	Subscribers(ctx context.Context, mangaID string) ([]subscriber, error)

	// ExpirePremium revokes premium from users whose subscription lapsed
	// before now, along with any loaned items. The number of affected users
	// is returned.
	ExpirePremium(ctx context.Context, now time.Time) (int, error)

	GetEntry(ctx context.Context, key string) (entry, bool, error)
	PutEntry(ctx context.Context, key string, value []byte, at time.Time) error
	DeleteEntry(ctx context.Context, key string) error

	// EntryKeys returns keys with the given prefix, oldest first.
	EntryKeys(ctx context.Context, prefix string) ([]string, error)

	// counts is used for metrics.
	counts(ctx context.Context) (dbCounts, error)

	Close()
}

// Store is a mirror backend, either *PGStore or *SQLiteStore.
type Store interface {
	mirror
}

// entry is a row of the key/value cache table. Freshness is decided by the
// reader.
type entry struct {
	Value     []byte
	UpdatedAt time.Time
}

type dbCounts struct {
	manga, chapters, entries, subscriptions int64
}

// _loanColumns maps a loaned item's type to the profile column it occupies
// when equipped.
var _loanColumns = map[string]string{
	"frame": "frame_item_id",
	"badge": "badge_item_id",
	"title": "title_item_id",
}

// ChapterURL is where a chapter can be read on the site.
func ChapterURL(mangaSlug, chapterSlug string) string {
	return fmt.Sprintf("/read/%s/%s", mangaSlug, chapterSlug)
}

func encodeList(ss []string) string {
	if ss == nil {
		ss = []string{}
	}
	out, err := sonic.ConfigStd.MarshalToString(ss)
	if err != nil {
		return "[]"
	}
	return out
}

func decodeList(s string) []string {
	out := []string{}
	if strings.TrimSpace(s) == "" {
		return out
	}
	_ = sonic.ConfigStd.UnmarshalFromString(s, &out)
	return out
}

// chapterChanged reports whether an existing row needs patching.
func chapterChanged(existing, c Chapter) bool {
	return existing.Number != c.Number || existing.Volume != c.Volume || existing.Name != c.Name
}
