package internal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // Driver.
)

const _sqliteSchema = `
CREATE TABLE IF NOT EXISTS manga (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
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
	views               INTEGER NOT NULL DEFAULT 0,
	score               REAL NOT NULL DEFAULT 0,
	chapters_count      INTEGER NOT NULL DEFAULT 0,
	branch_id           TEXT NOT NULL DEFAULT '',
	description         TEXT NOT NULL DEFAULT '',
	tags                TEXT NOT NULL DEFAULT '[]',
	formats             TEXT NOT NULL DEFAULT '[]',
	is_licensed         INTEGER NOT NULL DEFAULT 0,
	translation_status  TEXT NOT NULL DEFAULT '',
	last_updated        TIMESTAMP NOT NULL DEFAULT '1970-01-01 00:00:00+00:00'
);
CREATE INDEX IF NOT EXISTS idx_manga_slug ON manga (manga_slug);

CREATE TABLE IF NOT EXISTS chapters (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	chapter_id     TEXT NOT NULL UNIQUE,
	manga_id       TEXT NOT NULL REFERENCES manga (manga_id),
	chapter_slug   TEXT NOT NULL DEFAULT '',
	chapter_number TEXT NOT NULL DEFAULT '',
	chapter_volume TEXT NOT NULL DEFAULT '',
	chapter_name   TEXT NOT NULL DEFAULT '',
	chapter_url    TEXT NOT NULL DEFAULT '',
	pages_json     TEXT NOT NULL DEFAULT '[]',
	pages_count    INTEGER NOT NULL DEFAULT 0,
	created_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chapters_manga_number ON chapters (manga_id, chapter_number);

CREATE TABLE IF NOT EXISTS cache (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id                    INTEGER PRIMARY KEY AUTOINCREMENT,
	telegram_id           INTEGER NOT NULL UNIQUE,
	notifications_enabled INTEGER NOT NULL DEFAULT 1,
	is_premium            INTEGER NOT NULL DEFAULT 0,
	premium_expires_at    TIMESTAMP
);

CREATE TABLE IF NOT EXISTS subscriptions (
	user_id  INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	manga_id TEXT NOT NULL,
	UNIQUE (user_id, manga_id)
);

CREATE TABLE IF NOT EXISTS shop_items (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_items (
	user_id         INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	item_id         INTEGER NOT NULL REFERENCES shop_items (id),
	is_premium_loan INTEGER NOT NULL DEFAULT 0,
	is_equipped     INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS user_profile (
	user_id       INTEGER PRIMARY KEY REFERENCES users (id) ON DELETE CASCADE,
	frame_item_id INTEGER,
	badge_item_id INTEGER,
	title_item_id INTEGER
);
`

// SQLiteStore is a mirror backed by a local SQLite file. It's handy for
// development and tests; production uses Postgres.
type SQLiteStore struct {
	db *sql.DB
}

var _ mirror = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if necessary) the database at path and
// applies the schema.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensuring data dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	if _, err := db.ExecContext(ctx, _sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() {
	_ = s.db.Close()
}

func (s *SQLiteStore) upsertSummary(ctx context.Context, tx *sql.Tx, m Manga) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO manga (manga_id, manga_slug, manga_title, original_name, manga_type, manga_status, rating, cover_url, formats, translation_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (manga_id) DO UPDATE SET
			manga_slug         = excluded.manga_slug,
			manga_title        = COALESCE(NULLIF(excluded.manga_title, ''), manga.manga_title),
			original_name      = COALESCE(NULLIF(excluded.original_name, ''), manga.original_name),
			manga_type         = COALESCE(NULLIF(excluded.manga_type, ''), manga.manga_type),
			manga_status       = COALESCE(NULLIF(excluded.manga_status, ''), manga.manga_status),
			rating             = COALESCE(NULLIF(excluded.rating, ''), manga.rating),
			cover_url          = COALESCE(NULLIF(excluded.cover_url, ''), manga.cover_url),
			formats            = CASE WHEN excluded.formats = '[]' THEN manga.formats ELSE excluded.formats END,
			translation_status = COALESCE(NULLIF(excluded.translation_status, ''), manga.translation_status)
	`, m.ID, m.Slug, m.Title, m.OriginalName, m.Type, m.Status, m.Rating, m.CoverURL, encodeList(m.Formats), m.TranslationStatus)
	if err != nil {
		return fmt.Errorf("upserting manga %q: %w", m.ID, err)
	}
	return nil
}

// UpsertMangaSummary records a sighting without touching detail columns.
func (s *SQLiteStore) UpsertMangaSummary(ctx context.Context, m Manga) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.upsertSummary(ctx, tx, m); err != nil {
		return err
	}
	return tx.Commit()
}

// UpsertFeedItem records a feed sighting.
func (s *SQLiteStore) UpsertFeedItem(ctx context.Context, item FeedItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	m, c := item.Manga, item.Chapter
	if err := s.upsertSummary(ctx, tx, m); err != nil {
		return err
	}
	if c.ID == "" {
		return tx.Commit()
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE manga SET
			last_chapter_id = ?, last_chapter_number = ?, last_chapter_volume = ?,
			last_chapter_name = ?, last_chapter_slug = ?
		WHERE manga_id = ?
	`, c.ID, c.Number, c.Volume, c.Name, c.Slug, m.ID)
	if err != nil {
		return fmt.Errorf("updating last chapter for %q: %w", m.ID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO chapters (chapter_id, manga_id, chapter_slug, chapter_number, chapter_volume, chapter_name, chapter_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (chapter_id) DO NOTHING
	`, c.ID, m.ID, c.Slug, c.Number, c.Volume, c.Name, ChapterURL(m.Slug, c.Slug), createdAt(c))
	if err != nil {
		return fmt.Errorf("inserting chapter %q: %w", c.ID, err)
	}

	return tx.Commit()
}

// UpsertMangaDetails records a full detail fetch.
func (s *SQLiteStore) UpsertMangaDetails(ctx context.Context, m Manga) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.upsertSummary(ctx, tx, m); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE manga SET
			views = ?, score = ?, chapters_count = ?, branch_id = ?, description = ?,
			tags = ?, is_licensed = ?, last_updated = ?
		WHERE manga_id = ?
	`, m.Views, m.Score, m.ChaptersCount, m.BranchID, m.Description,
		encodeList(m.Tags), m.IsLicensed, time.Now().UTC(), m.ID)
	if err != nil {
		return fmt.Errorf("updating details for %q: %w", m.ID, err)
	}

	return tx.Commit()
}

// UpsertChapters inserts new chapters and patches ones whose number, volume
// or name changed.
func (s *SQLiteStore) UpsertChapters(ctx context.Context, mangaID string, chapters []Chapter) upsertStats {
	stats := upsertStats{}
	for _, c := range chapters {
		inserted, updated, err := s.upsertChapter(ctx, mangaID, c)
		switch {
		case err != nil:
			Log(ctx).Warn("problem saving chapter", "mangaID", mangaID, "chapterID", c.ID, "err", err)
			stats.errors++
		case inserted:
			stats.saved++
		case updated:
			stats.updated++
		}
	}
	return stats
}

func (s *SQLiteStore) upsertChapter(ctx context.Context, mangaID string, c Chapter) (inserted bool, updated bool, _ error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing Chapter
	err = tx.QueryRowContext(ctx,
		`SELECT chapter_number, chapter_volume, chapter_name FROM chapters WHERE chapter_id = ?`, c.ID,
	).Scan(&existing.Number, &existing.Volume, &existing.Name)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
			INSERT INTO chapters (chapter_id, manga_id, chapter_slug, chapter_number, chapter_volume, chapter_name, chapter_url, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID, mangaID, c.Slug, c.Number, c.Volume, c.Name, c.URL, createdAt(c))
		inserted = true
	case err != nil:
		return false, false, err
	case chapterChanged(existing, c):
		_, err = tx.ExecContext(ctx, `
			UPDATE chapters SET chapter_number = ?, chapter_volume = ?, chapter_name = ? WHERE chapter_id = ?
		`, c.Number, c.Volume, c.Name, c.ID)
		updated = true
	default:
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}

	return inserted, updated, tx.Commit()
}

// SaveChapter upserts a chapter including its pages.
func (s *SQLiteStore) SaveChapter(ctx context.Context, c Chapter) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chapters (chapter_id, manga_id, chapter_slug, chapter_number, chapter_volume, chapter_name, chapter_url, pages_json, pages_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (chapter_id) DO UPDATE SET
			chapter_slug   = excluded.chapter_slug,
			chapter_number = excluded.chapter_number,
			chapter_volume = excluded.chapter_volume,
			chapter_name   = excluded.chapter_name,
			chapter_url    = excluded.chapter_url,
			pages_json     = excluded.pages_json,
			pages_count    = excluded.pages_count
	`, c.ID, c.MangaID, c.Slug, c.Number, c.Volume, c.Name, c.URL, encodeList(c.Pages), len(c.Pages), createdAt(c))
	if err != nil {
		return fmt.Errorf("saving chapter %q: %w", c.ID, err)
	}
	return nil
}

// UpdateChaptersCount records how many chapters the manga has.
func (s *SQLiteStore) UpdateChaptersCount(ctx context.Context, mangaID string, n int) error {
	_, err := s.db.ExecContext(ctx, `UPDATE manga SET chapters_count = ? WHERE manga_id = ?`, n, mangaID)
	return err
}

const _sqliteMangaColumns = `
	manga_id, manga_slug, manga_title, original_name, manga_type, manga_status, rating, cover_url,
	last_chapter_id, last_chapter_number, last_chapter_volume, last_chapter_name, last_chapter_slug,
	views, score, chapters_count, branch_id, description, tags, formats, is_licensed,
	translation_status, last_updated`

type scanner interface {
	Scan(dest ...any) error
}

func scanManga(row scanner) (Manga, error) {
	var m Manga
	var tags, formats string
	err := row.Scan(
		&m.ID, &m.Slug, &m.Title, &m.OriginalName, &m.Type, &m.Status, &m.Rating, &m.CoverURL,
		&m.LastChapterID, &m.LastChapterNumber, &m.LastChapterVolume, &m.LastChapterName, &m.LastChapterSlug,
		&m.Views, &m.Score, &m.ChaptersCount, &m.BranchID, &m.Description, &tags, &formats, &m.IsLicensed,
		&m.TranslationStatus, &m.LastUpdated,
	)
	m.Tags = decodeList(tags)
	m.Formats = decodeList(formats)
	return m, err
}

// MangaBySlug returns the mirrored manga.
func (s *SQLiteStore) MangaBySlug(ctx context.Context, slug string) (Manga, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+_sqliteMangaColumns+` FROM manga WHERE manga_slug = ? ORDER BY id LIMIT 1`, slug)
	m, err := scanManga(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Manga{}, errNotFound
	}
	return m, err
}

// CountChapters returns how many chapters we've mirrored for the manga.
func (s *SQLiteStore) CountChapters(ctx context.Context, mangaID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chapters WHERE manga_id = ?`, mangaID).Scan(&n)
	return n, err
}

// ListChapters returns a page of chapters in numeric order.
func (s *SQLiteStore) ListChapters(ctx context.Context, mangaID string, offset, limit int, desc bool) ([]Chapter, error) {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT chapter_id, manga_id, chapter_slug, chapter_number, chapter_volume, chapter_name,
			chapter_url, pages_json, pages_count, created_at
		FROM chapters
		WHERE manga_id = ?
		ORDER BY CAST(chapter_number AS REAL) `+dir+`, id `+dir+`
		LIMIT ? OFFSET ?
	`, mangaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing chapters: %w", err)
	}
	defer func() { _ = rows.Close() }()

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
func (s *SQLiteStore) RecentChapters(ctx context.Context, limit int) ([]RecentChapter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.manga_id, m.manga_slug, m.manga_title, m.cover_url,
			c.chapter_id, c.chapter_slug, c.chapter_number, c.chapter_volume, c.chapter_name, c.created_at
		FROM chapters c
		JOIN manga m ON m.manga_id = c.manga_id
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent chapters: %w", err)
	}
	defer func() { _ = rows.Close() }()

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
func (s *SQLiteStore) MangaForBackfill(ctx context.Context, onlyMissing, skipExisting bool) ([]Manga, error) {
	where := []string{"1 = 1"}
	if onlyMissing {
		where = append(where, "chapters_count = 0")
	}
	if skipExisting {
		where = append(where, "NOT EXISTS (SELECT 1 FROM chapters c WHERE c.manga_id = manga.manga_id)")
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+_sqliteMangaColumns+` FROM manga WHERE `+strings.Join(where, " AND ")+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing manga: %w", err)
	}
	defer func() { _ = rows.Close() }()

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
func (s *SQLiteStore) Subscribers(ctx context.Context, mangaID string) ([]subscriber, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.telegram_id, u.notifications_enabled
		FROM subscriptions s
		JOIN users u ON u.id = s.user_id
		WHERE s.manga_id = ?
		ORDER BY u.id
	`, mangaID)
	if err != nil {
		return nil, fmt.Errorf("listing subscribers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	subs := []subscriber{}
	for rows.Next() {
		var sub subscriber
		if err := rows.Scan(&sub.UserID, &sub.TelegramID, &sub.NotificationsEnabled); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// ExpirePremium revokes lapsed premium subscriptions in one transaction.
func (s *SQLiteStore) ExpirePremium(ctx context.Context, now time.Time) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Expiries are written by other clients in more than one text layout, so
	// both sides are normalized before comparing.
	rows, err := tx.QueryContext(ctx, `
		SELECT id FROM users
		WHERE is_premium = 1 AND premium_expires_at IS NOT NULL
		  AND datetime(premium_expires_at) < datetime(?)
	`, now.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("finding expired users: %w", err)
	}
	userIDs := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return 0, err
		}
		userIDs = append(userIDs, id)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, userID := range userIDs {
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET is_premium = 0, premium_expires_at = NULL WHERE id = ?`, userID,
		); err != nil {
			return 0, fmt.Errorf("expiring user %d: %w", userID, err)
		}
		if err := s.revokeLoans(ctx, tx, userID); err != nil {
			return 0, err
		}
	}

	return len(userIDs), tx.Commit()
}

func (s *SQLiteStore) revokeLoans(ctx context.Context, tx *sql.Tx, userID int64) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT si.type FROM user_items ui
		JOIN shop_items si ON si.id = ui.item_id
		WHERE ui.user_id = ? AND ui.is_premium_loan = 1 AND ui.is_equipped = 1
	`, userID)
	if err != nil {
		return fmt.Errorf("finding loans for user %d: %w", userID, err)
	}
	types := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			_ = rows.Close()
			return err
		}
		types = append(types, t)
	}
	_ = rows.Close()

	for _, t := range types {
		col, ok := _loanColumns[t]
		if !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, `UPDATE user_profile SET `+col+` = NULL WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("unequipping %s for user %d: %w", t, userID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_items WHERE user_id = ? AND is_premium_loan = 1`, userID); err != nil {
		return fmt.Errorf("deleting loans for user %d: %w", userID, err)
	}
	return nil
}

// GetEntry returns a cache row.
func (s *SQLiteStore) GetEntry(ctx context.Context, key string) (entry, bool, error) {
	var e entry
	err := s.db.QueryRowContext(ctx, `SELECT value, updated_at FROM cache WHERE key = ?`, key).Scan(&e.Value, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entry{}, false, nil
	}
	if err != nil {
		return entry{}, false, err
	}
	return e, true, nil
}

// PutEntry writes a cache row.
func (s *SQLiteStore) PutEntry(ctx context.Context, key string, value []byte, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, at.UTC())
	return err
}

// DeleteEntry removes a cache row.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cache WHERE key = ?`, key)
	return err
}

// EntryKeys lists cache keys with the given prefix, oldest first.
func (s *SQLiteStore) EntryKeys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM cache WHERE substr(key, 1, ?) = ? ORDER BY updated_at, key`, len(prefix), prefix)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLiteStore) counts(ctx context.Context) (dbCounts, error) {
	var c dbCounts
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM manga),
			(SELECT COUNT(*) FROM chapters),
			(SELECT COUNT(*) FROM cache),
			(SELECT COUNT(*) FROM subscriptions)
	`).Scan(&c.manga, &c.chapters, &c.entries, &c.subscriptions)
	return c, err
}

func createdAt(c Chapter) time.Time {
	if c.CreatedAt.IsZero() {
		return time.Now().UTC()
	}
	return c.CreatedAt.UTC()
}
