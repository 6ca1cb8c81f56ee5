package internal

import "time"

// Manga is a mirrored catalog entry. Sightings from the feed, spotlights and
// search only carry the summary fields; the detail view fills in the rest.
type Manga struct {
	ID                string    `json:"manga_id"`
	Slug              string    `json:"manga_slug"`
	Title             string    `json:"manga_title"`
	OriginalName      string    `json:"original_name,omitempty"`
	Type              string    `json:"manga_type,omitempty"`
	Status            string    `json:"manga_status,omitempty"`
	Rating            string    `json:"rating,omitempty"`
	CoverURL          string    `json:"cover_url,omitempty"`
	LastChapterID     string    `json:"last_chapter_id,omitempty"`
	LastChapterNumber string    `json:"last_chapter_number,omitempty"`
	LastChapterVolume string    `json:"last_chapter_volume,omitempty"`
	LastChapterName   string    `json:"last_chapter_name,omitempty"`
	LastChapterSlug   string    `json:"last_chapter_slug,omitempty"`
	Views             int64     `json:"views"`
	Score             float64   `json:"score"`
	ChaptersCount     int       `json:"chapters_count"`
	BranchID          string    `json:"branch_id,omitempty"`
	Description       string    `json:"description,omitempty"`
	Tags              []string  `json:"tags"`
	Formats           []string  `json:"formats"`
	IsLicensed        bool      `json:"is_licensed"`
	TranslationStatus string    `json:"translation_status,omitempty"`
	LastUpdated       time.Time `json:"last_updated"`
}

// Chapter is a mirrored chapter. Number is kept as text and compared
// numerically when ordering.
type Chapter struct {
	ID         string    `json:"chapter_id"`
	MangaID    string    `json:"manga_id"`
	Slug       string    `json:"chapter_slug"`
	Number     string    `json:"chapter_number"`
	Volume     string    `json:"chapter_volume,omitempty"`
	Name       string    `json:"chapter_name,omitempty"`
	URL        string    `json:"chapter_url"`
	Pages      []string  `json:"pages,omitempty"`
	PagesCount int       `json:"pages_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// FeedItem is one entry of the upstream "latest chapters" feed: a manga with
// its newest chapter.
type FeedItem struct {
	Manga   Manga
	Chapter Chapter
}

// page is one page of a cursor-paginated upstream listing.
type page[T any] struct {
	Items     []T
	HasNext   bool
	EndCursor string
}

// Spotlight is a curated block from the upstream home page.
type Spotlight struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	TitleRU string  `json:"title_ru,omitempty"`
	Manga   []Manga `json:"manga"`
}

// SpotlightsResource is the cached spotlight aggregate.
type SpotlightsResource struct {
	Spotlights map[string]*Spotlight `json:"spotlights"`
	All        []Spotlight           `json:"all_spotlights"`
	CachedAt   time.Time             `json:"cached_at"`
}

// RecentChapter is a flattened feed entry for the home page.
type RecentChapter struct {
	MangaID       string    `json:"manga_id"`
	MangaSlug     string    `json:"manga_slug"`
	MangaTitle    string    `json:"manga_title"`
	CoverURL      string    `json:"cover_url,omitempty"`
	ChapterID     string    `json:"chapter_id"`
	ChapterSlug   string    `json:"chapter_slug"`
	ChapterNumber string    `json:"chapter_number"`
	ChapterVolume string    `json:"chapter_volume,omitempty"`
	ChapterName   string    `json:"chapter_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// RecentResource is the cached recent-chapters aggregate.
type RecentResource struct {
	Chapters []RecentChapter `json:"chapters"`
	Source   string          `json:"source"` // "upstream" or "mirror".
	CachedAt time.Time       `json:"cached_at"`
}

// PopularResource is the cached popular-by-period aggregate.
type PopularResource struct {
	Period   string    `json:"period"`
	Manga    []Manga   `json:"manga"`
	CachedAt time.Time `json:"cached_at"`
}

// MangaView is the detail view for a single manga.
type MangaView struct {
	Manga     Manga     `json:"manga"`
	Chapters  []Chapter `json:"chapters"`
	TotalInDB int       `json:"total_in_db"`
	IsLoading bool      `json:"is_loading"`
}

// ChapterList is one page of a manga's mirrored chapters.
type ChapterList struct {
	Chapters  []Chapter `json:"chapters"`
	IsLoading bool      `json:"is_loading"`
	TotalInDB int       `json:"total_in_db"`
	HasMore   bool      `json:"has_more"`
}

// ReleaseEvent is emitted when the poller sees a new chapter.
type ReleaseEvent struct {
	Manga   Manga
	Chapter Chapter
}

// subscriber is a user following a manga.
type subscriber struct {
	UserID               int64
	TelegramID           int64
	NotificationsEnabled bool
}

// upsertStats summarizes a bulk chapter upsert.
type upsertStats struct {
	saved   int
	updated int
	errors  int
}
