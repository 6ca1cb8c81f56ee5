package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const _pgSchema = `
CREATE TABLE IF NOT EXISTS manga (
	id                  BIGSERIAL PRIMARY KEY,
	manga_id            TEXT NOT NULL UNIQUE,
	manga_slug          TEXT NOT NULL,
	manga_title         TEXT NOT NULL DEFAULT '',
	original_name       TEXT NOT NULL DEFAULT '',
	manga_type          TEXT NOT NULL DEFAULT '',
	manga_status        TEXT NOT NULL DEFAULT '',
	rating              TEXT NOT NULL DEFAULT '',
	cover_url           TEXT NOT NULL DEFAULT '',
	last_chapter_id     TEXT NOT NULL DEFAULT '',
	last_chapter_number TEXT NOT NULL DEFAULT '',
	last_chapter_volume TEXT NOT NULL DEFAULT '',
	last_chapter_name   TEXT NOT NULL DEFAULT '',
	last_chapter_slug   TEXT NOT NULL DEFAULT '',
	views               BIGINT NOT NULL DEFAULT 0,
	score               DOUBLE PRECISION NOT NULL DEFAULT 0,
	chapters_count      INTEGER NOT NULL DEFAULT 0,
	branch_id           TEXT NOT NULL DEFAULT '',
	description         TEXT NOT NULL DEFAULT '',
	tags                JSONB NOT NULL DEFAULT '[]',
	formats             JSONB NOT NULL DEFAULT '[]',
	is_licensed         BOOLEAN NOT NULL DEFAULT FALSE,
	translation_status  TEXT NOT NULL DEFAULT '',
	last_updated        TIMESTAMPTZ NOT NULL DEFAULT 'epoch'
);
CREATE INDEX IF NOT EXISTS idx_manga_slug ON manga (manga_slug);

CREATE TABLE IF NOT EXISTS chapters (
	id             BIGSERIAL PRIMARY KEY,
	chapter_id     TEXT NOT NULL UNIQUE,
	manga_id       TEXT NOT NULL REFERENCES manga (manga_id),
	chapter_slug   TEXT NOT NULL DEFAULT '',
	chapter_number TEXT NOT NULL DEFAULT '',
	chapter_volume TEXT NOT NULL DEFAULT '',
	chapter_name   TEXT NOT NULL DEFAULT '',
	chapter_url    TEXT NOT NULL DEFAULT '',
	pages_json     JSONB NOT NULL DEFAULT '[]',
	pages_count    INTEGER NOT NULL DEFAULT 0,
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chapters_manga_number ON chapters (manga_id, chapter_number);

CREATE TABLE IF NOT EXISTS cache (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id                    BIGSERIAL PRIMARY KEY,
	telegram_id           BIGINT NOT NULL UNIQUE,
	notifications_enabled BOOLEAN NOT NULL DEFAULT TRUE,
	is_premium            BOOLEAN NOT NULL DEFAULT FALSE,
	premium_expires_at    TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS subscriptions (
	user_id  BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	manga_id TEXT NOT NULL,
	UNIQUE (user_id, manga_id)
);

CREATE TABLE IF NOT EXISTS shop_items (
	id   BIGSERIAL PRIMARY KEY,
	type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_items (
	user_id         BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	item_id         BIGINT NOT NULL REFERENCES shop_items (id),
	is_premium_loan BOOLEAN NOT NULL DEFAULT FALSE,
	is_equipped     BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS user_profile (
	user_id       BIGINT PRIMARY KEY REFERENCES users (id) ON DELETE CASCADE,
	frame_item_id BIGINT,
	badge_item_id BIGINT,
	title_item_id BIGINT
);
`

// _pgNumber orders chapter numbers numerically. Postgres refuses to cast
// non-numeric text, so those sort last.
const _pgNumber = `CASE WHEN chapter_number ~ '^[0-9]+(\.[0-9]+)?$' THEN chapter_number::float8 END`

// PGStore is the production mirror backed by Postgres.
type PGStore struct {
	db *pgxpool.Pool
}

var _ mirror = (*PGStore)(nil)

// newDB connects to Postgres and ensures the schema exists.
func newDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing dsn: %w", err)
	}
	db, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging: %w", err)
	}
	if _, err := db.Exec(ctx, _pgSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return db, nil
}

// NewPGStore connects to the database described by dsn.
func NewPGStore(ctx context.Context, dsn string) (*PGStore, error) {
	db, err := newDB(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &PGStore{db: db}, nil
}

// Pool exposes the connection pool for metrics.
func (s *PGStore) Pool() *pgxpool.Pool {
	return s.db
}

// Close closes the pool.
func (s *PGStore) Close() {
	s.db.Close()
}

func (s *PGStore) upsertSummary(ctx context.Context, tx pgx.Tx, m Manga) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO manga (manga_id, manga_slug, manga_title, original_name, manga_type, manga_status, rating, cover_url, formats, translation_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (manga_id) DO UPDATE SET
			manga_slug         = EXCLUDED.manga_slug,
			manga_title        = COALESCE(NULLIF(EXCLUDED.manga_title, ''), manga.manga_title),
			original_name      = COALESCE(NULLIF(EXCLUDED.original_name, ''), manga.original_name),
			manga_type         = COALESCE(NULLIF(EXCLUDED.manga_type, ''), manga.manga_type),
			manga_status       = COALESCE(NULLIF(EXCLUDED.manga_status, ''), manga.manga_status),
			rating             = COALESCE(NULLIF(EXCLUDED.rating, ''), manga.rating),
			cover_url          = COALESCE(NULLIF(EXCLUDED.cover_url, ''), manga.cover_url),
			formats            = CASE WHEN EXCLUDED.formats = '[]'::jsonb THEN manga.formats ELSE EXCLUDED.formats END,
			translation_status = COALESCE(NULLIF(EXCLUDED.translation_status, ''), manga.translation_status)
	`, m.ID, m.Slug, m.Title, m.OriginalName, m.Type, m.Status, m.Rating, m.CoverURL, encodeList(m.Formats), m.TranslationStatus)
	if err != nil {
		return fmt.Errorf("upserting manga %q: %w", m.ID, err)
	}
	return nil
}

// UpsertMangaSummary records a sighting without touching detail columns.
func (s *PGStore) UpsertMangaSummary(ctx context.Context, m Manga) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return s.upsertSummary(ctx, tx, m)
	})
}

// UpsertFeedItem records a feed sighting.
func (s *PGStore) UpsertFeedItem(ctx context.Context, item FeedItem) error {
	m, c := item.Manga, item.Chapter
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.upsertSummary(ctx, tx, m); err != nil {
			return err
		}
		if c.ID == "" {
			return nil
		}
		_, err := tx.Exec(ctx, `
			UPDATE manga SET
				last_chapter_id = $1, last_chapter_number = $2, last_chapter_volume = $3,
				last_chapter_name = $4, last_chapter_slug = $5
			WHERE manga_id = $6
		`, c.ID, c.Number, c.Volume, c.Name, c.Slug, m.ID)
		if err != nil {
			return fmt.Errorf("updating last chapter for %q: %w", m.ID, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO chapters (chapter_id, manga_id, chapter_slug, chapter_number, chapter_volume, chapter_name, chapter_url, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (chapter_id) DO NOTHING
		`, c.ID, m.ID, c.Slug, c.Number, c.Volume, c.Name, ChapterURL(m.Slug, c.Slug), createdAt(c))
		if err != nil {
			return fmt.Errorf("inserting chapter %q: %w", c.ID, err)
		}
		return nil
	})
}

// UpsertMangaDetails records a full detail fetch.
func (s *PGStore) UpsertMangaDetails(ctx context.Context, m Manga) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.upsertSummary(ctx, tx, m); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			UPDATE manga SET
				views = $1, score = $2, chapters_count = $3, branch_id = $4, description = $5,
				tags = $6, is_licensed = $7, last_updated = now()
			WHERE manga_id = $8
		`, m.Views, m.Score, m.ChaptersCount, m.BranchID, m.Description, encodeList(m.Tags), m.IsLicensed, m.ID)
		if err != nil {
			return fmt.Errorf("updating details for %q: %w", m.ID, err)
		}
		return nil
	})
}

// UpsertChapters inserts new chapters and patches changed ones. xmax is zero
// for freshly inserted rows, which tells us which branch the upsert took.
func (s *PGStore) UpsertChapters(ctx context.Context, mangaID string, chapters []Chapter) upsertStats {
	stats := upsertStats{}
	for _, c := range chapters {
		var inserted bool
		err := s.db.QueryRow(ctx, `
			INSERT INTO chapters (chapter_id, manga_id, chapter_slug, chapter_number, chapter_volume, chapter_name, chapter_url, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (chapter_id) DO UPDATE SET
				chapter_number = EXCLUDED.chapter_number,
				chapter_volume = EXCLUDED.chapter_volume,
				chapter_name   = EXCLUDED.chapter_name
			WHERE (chapters.chapter_number, chapters.chapter_volume, chapters.chapter_name)
				IS DISTINCT FROM (EXCLUDED.chapter_number, EXCLUDED.chapter_volume, EXCLUDED.chapter_name)
			RETURNING (xmax = 0)
		`, c.ID, mangaID, c.Slug, c.Number, c.Volume, c.Name, c.URL, createdAt(c)).Scan(&inserted)

		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// Unchanged.
		case err != nil:
			Log(ctx).Warn("problem saving chapter", "mangaID", mangaID, "chapterID", c.ID, "err", err)
			stats.errors++
		case inserted:
			stats.saved++
		default:
			stats.updated++
		}
	}
	return stats
}

// SaveChapter upserts a chapter including its pages.
func (s *PGStore) SaveChapter(ctx context.Context, c Chapter) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO chapters (chapter_id, manga_id, chapter_slug, chapter_number, chapter_volume, chapter_name, chapter_url, pages_json, pages_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (chapter_id) DO UPDATE SET
			chapter_slug   = EXCLUDED.chapter_slug,
			chapter_number = EXCLUDED.chapter_number,
			chapter_volume = EXCLUDED.chapter_volume,
			chapter_name   = EXCLUDED.chapter_name,
			chapter_url    = EXCLUDED.chapter_url,
			pages_json     = EXCLUDED.pages_json,
			pages_count    = EXCLUDED.pages_count
	`, c.ID, c.MangaID, c.Slug, c.Number, c.Volume, c.Name, c.URL, encodeList(c.Pages), len(c.Pages), createdAt(c))
	if err != nil {
		return fmt.Errorf("saving chapter %q: %w", c.ID, err)
	}
	return nil
}

// UpdateChaptersCount records how many chapters the manga has.
func (s *PGStore) UpdateChaptersCount(ctx context.Context, mangaID string, n int) error {
	_, err := s.db.Exec(ctx, `UPDATE manga SET chapters_count = $1 WHERE manga_id = $2`, n, mangaID)
	return err
}

const _pgMangaColumns = `
	manga_id, manga_slug, manga_title, original_name, manga_type, manga_status, rating, cover_url,
	last_chapter_id, last_chapter_number, last_chapter_volume, last_chapter_name, last_chapter_slug,
	views, score, chapters_count, branch_id, description, tags::text, formats::text, is_licensed,
	translation_status, last_updated`

// MangaBySlug returns the mirrored manga.
func (s *PGStore) MangaBySlug(ctx context.Context, slug string) (Manga, error) {
	row := s.db.QueryRow(ctx, `SELECT `+_pgMangaColumns+` FROM manga WHERE manga_slug = $1 ORDER BY id LIMIT 1`, slug)
	m, err := scanManga(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Manga{}, errNotFound
	}
	return m, err
}

// CountChapters returns how many chapters we've mirrored for the manga.
func (s *PGStore) CountChapters(ctx context.Context, mangaID string) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM chapters WHERE manga_id = $1`, mangaID).Scan(&n)
	return n, err
}

// ListChapters returns a page of chapters in numeric order.
func (s *PGStore) ListChapters(ctx context.Context, mangaID string, offset, limit int, desc bool) ([]Chapter, error) {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	rows, err := s.db.Query(ctx, `
		SELECT chapter_id, manga_id, chapter_slug, chapter_number, chapter_volume, chapter_name,
			chapter_url, pages_json::text, pages_count, created_at
		FROM chapters
		WHERE manga_id = $1
		ORDER BY `+_pgNumber+` `+dir+` NULLS LAST, id `+dir+`
		LIMIT $2 OFFSET $3
	`, mangaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing chapters: %w", err)
	}
	defer rows.Close()

	chapters := []Chapter{}
	for rows.Next() {
		var c Chapter
		var pages string
		if err := rows.Scan(&c.ID, &c.MangaID, &c.Slug, &c.Number, &c.Volume, &c.Name,
			&c.URL, &pages, &c.PagesCount, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Pages = decodeList(pages)
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}

// RecentChapters returns the newest chapters across the catalog.
func (s *PGStore) RecentChapters(ctx context.Context, limit int) ([]RecentChapter, error) {
	rows, err := s.db.Query(ctx, `
		SELECT m.manga_id, m.manga_slug, m.manga_title, m.cover_url,
			c.chapter_id, c.chapter_slug, c.chapter_number, c.chapter_volume, c.chapter_name, c.created_at
		FROM chapters c
		JOIN manga m ON m.manga_id = c.manga_id
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent chapters: %w", err)
	}
	defer rows.Close()

	recent := []RecentChapter{}
	for rows.Next() {
		var r RecentChapter
		if err := rows.Scan(&r.MangaID, &r.MangaSlug, &r.MangaTitle, &r.CoverURL,
			&r.ChapterID, &r.ChapterSlug, &r.ChapterNumber, &r.ChapterVolume, &r.ChapterName, &r.CreatedAt); err != nil {
			return nil, err
		}
		recent = append(recent, r)
	}
	return recent, rows.Err()
}

// MangaForBackfill lists candidates for a bulk backfill.
func (s *PGStore) MangaForBackfill(ctx context.Context, onlyMissing, skipExisting bool) ([]Manga, error) {
	where := []string{"TRUE"}
	if onlyMissing {
		where = append(where, "chapters_count = 0")
	}
	if skipExisting {
		where = append(where, "NOT EXISTS (SELECT 1 FROM chapters c WHERE c.manga_id = manga.manga_id)")
	}
	rows, err := s.db.Query(ctx, `SELECT `+_pgMangaColumns+` FROM manga WHERE `+strings.Join(where, " AND ")+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing manga: %w", err)
	}
	defer rows.Close()

	manga := []Manga{}
	for rows.Next() {
		m, err := scanManga(rows)
		if err != nil {
			return nil, err
		}
		manga = append(manga, m)
	}
	return manga, rows.Err()
}

// Subscribers returns the manga's subscribers.
func (s *PGStore) Subscribers(ctx context.Context, mangaID string) ([]subscriber, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.id, u.telegram_id, u.notifications_enabled
		FROM subscriptions s
		JOIN users u ON u.id = s.user_id
		WHERE s.manga_id = $1
		ORDER BY u.id
	`, mangaID)
	if err != nil {
		return nil, fmt.Errorf("listing subscribers: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (subscriber, error) {
		var sub subscriber
		err := row.Scan(&sub.UserID, &sub.TelegramID, &sub.NotificationsEnabled)
		return sub, err
	})
}

// ExpirePremium revokes lapsed premium subscriptions in one transaction.
func (s *PGStore) ExpirePremium(ctx context.Context, now time.Time) (int, error) {
	n := 0
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			UPDATE users SET is_premium = FALSE, premium_expires_at = NULL
			WHERE is_premium AND premium_expires_at IS NOT NULL AND premium_expires_at < $1
			RETURNING id
		`, now)
		if err != nil {
			return fmt.Errorf("expiring users: %w", err)
		}
		userIDs, err := pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return err
		}
		for _, userID := range userIDs {
			if err := s.revokeLoans(ctx, tx, userID); err != nil {
				return err
			}
		}
		n = len(userIDs)
		return nil
	})
	return n, err
}

func (s *PGStore) revokeLoans(ctx context.Context, tx pgx.Tx, userID int64) error {
	rows, err := tx.Query(ctx, `
		SELECT si.type FROM user_items ui
		JOIN shop_items si ON si.id = ui.item_id
		WHERE ui.user_id = $1 AND ui.is_premium_loan AND ui.is_equipped
	`, userID)
	if err != nil {
		return fmt.Errorf("finding loans for user %d: %w", userID, err)
	}
	types, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return err
	}
	for _, t := range types {
		col, ok := _loanColumns[t]
		if !ok {
			continue
		}
		if _, err := tx.Exec(ctx, `UPDATE user_profile SET `+col+` = NULL WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("unequipping %s for user %d: %w", t, userID, err)
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM user_items WHERE user_id = $1 AND is_premium_loan`, userID); err != nil {
		return fmt.Errorf("deleting loans for user %d: %w", userID, err)
	}
	return nil
}

// GetEntry returns a cache row.
func (s *PGStore) GetEntry(ctx context.Context, key string) (entry, bool, error) {
	var e entry
	var updated pgtype.Timestamptz
	err := s.db.QueryRow(ctx, `SELECT value, updated_at FROM cache WHERE key = $1`, key).Scan(&e.Value, &updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return entry{}, false, nil
	}
	if err != nil {
		return entry{}, false, err
	}
	e.UpdatedAt = updated.Time
	return e, true, nil
}

// PutEntry writes a cache row.
func (s *PGStore) PutEntry(ctx context.Context, key string, value []byte, at time.Time) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO cache (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, value, at)
	return err
}

// DeleteEntry removes a cache row.
func (s *PGStore) DeleteEntry(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM cache WHERE key = $1`, key)
	return err
}

// EntryKeys lists cache keys with the given prefix, oldest first.
func (s *PGStore) EntryKeys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT key FROM cache WHERE starts_with(key, $1) ORDER BY updated_at, key`, prefix)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (s *PGStore) counts(ctx context.Context) (dbCounts, error) {
	var c dbCounts
	err := s.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM manga),
			(SELECT COUNT(*) FROM chapters),
			(SELECT COUNT(*) FROM cache),
			(SELECT COUNT(*) FROM subscriptions)
	`).Scan(&c.manga, &c.chapters, &c.entries, &c.subscriptions)
	return c, err
}
