package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Khan/genqlient/graphql"
	"github.com/bubblemanga/mangamirror/senkuro"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// _descriptionText selects the text runs of every paragraph in a rich-text
// description.
var _descriptionText = jp.MustParseString(`$[?(@.type == 'paragraph')].content[?(@.type == 'text')].text`)

// _maxTags caps how many labels we keep per manga.
const _maxTags = 10

// SenkuroGetter fetches catalog data from the Senkuro GraphQL API.
type SenkuroGetter struct {
	gql graphql.Client
}

var _ getter = (*SenkuroGetter)(nil)

// NewSenkuroGetter creates a new getter backed by the given GraphQL client.
func NewSenkuroGetter(gql graphql.Client) *SenkuroGetter {
	return &SenkuroGetter{gql: gql}
}

// MainFeed returns the upstream's "latest chapters" feed. Entries without a
// chapter are skipped.
func (g *SenkuroGetter) MainFeed(ctx context.Context) ([]FeedItem, error) {
	resp, err := senkuro.FetchMainPage(ctx, g.gql, senkuro.LabelFilter{Exclude: []string{"hentai"}}, true, false, false, true)
	if err != nil {
		return nil, fmt.Errorf("fetching main page: %w", err)
	}

	items := make([]FeedItem, 0, len(resp.LastMangaChapters.Edges))
	for _, e := range resp.LastMangaChapters.Edges {
		node := e.Node
		if node.Id == "" || len(node.LastChapters) == 0 {
			continue
		}
		m := Manga{
			ID:       node.Id,
			Slug:     node.Slug,
			Title:    title(node.Titles, node.Slug),
			CoverURL: node.Cover.URL(),
		}
		c := mapChapter(node.LastChapters[0])
		c.MangaID = m.ID
		c.URL = ChapterURL(m.Slug, c.Slug)
		items = append(items, FeedItem{Manga: m, Chapter: c})
	}
	return items, nil
}

// GetManga returns the manga's details with its branch already selected.
func (g *SenkuroGetter) GetManga(ctx context.Context, slug string) (Manga, error) {
	resp, err := senkuro.FetchManga(ctx, g.gql, slug)
	if err != nil {
		return Manga{}, fmt.Errorf("fetching manga %q: %w", slug, err)
	}
	if resp.Manga == nil || resp.Manga.Id == "" {
		return Manga{}, errNotFound
	}
	d := resp.Manga

	m := Manga{
		ID:                d.Id,
		Slug:              d.Slug,
		Title:             senkuro.Title(d.Titles, "RU"),
		OriginalName:      d.OriginalName.Content,
		Type:              string(d.Type),
		Status:            d.Status,
		Rating:            d.Rating,
		CoverURL:          d.Cover.URL(),
		Views:             int64(d.Views),
		Score:             d.Score,
		ChaptersCount:     d.Chapters,
		Description:       description(ctx, d.Localizations),
		Tags:              tags(d.Labels),
		Formats:           d.Formats,
		IsLicensed:        d.IsLicensed,
		TranslationStatus: d.TranslitionStatus,
		BranchID:          d.Id,
	}
	if !hasLang(d.Titles, "RU") && m.OriginalName != "" {
		m.Title = m.OriginalName
	}
	if m.Slug == "" {
		m.Slug = slug
	}

	if b, ok := d.Primary(); ok {
		m.BranchID = b.Id
		Log(ctx).Debug("selected branch", "slug", slug, "branchID", b.Id, "primary", b.PrimaryBranch, "chapters", b.Chapters)
	} else {
		Log(ctx).Warn("no branches found, using manga id", "slug", slug)
	}

	return m, nil
}

// GetChapterPage returns one page of a branch's chapters, newest first.
func (g *SenkuroGetter) GetChapterPage(ctx context.Context, branchID string, after string) (page[Chapter], error) {
	order := senkuro.MangaChapterOrder{
		Direction: senkuro.SortDirectionDesc,
		Field:     senkuro.MangaChapterOrderFieldNumber,
	}
	resp, err := senkuro.FetchMangaChapters(ctx, g.gql, after, branchID, nil, order)
	if err != nil {
		return page[Chapter]{}, fmt.Errorf("fetching chapters for branch %q: %w", branchID, err)
	}

	p := page[Chapter]{
		HasNext:   resp.MangaChapters.PageInfo.HasNextPage,
		EndCursor: resp.MangaChapters.PageInfo.EndCursor,
	}
	for _, e := range resp.MangaChapters.Edges {
		if e.Node.Id == "" {
			continue
		}
		p.Items = append(p.Items, mapChapter(e.Node))
	}
	return p, nil
}

// GetChapterImages returns the compressed page images of a chapter.
func (g *SenkuroGetter) GetChapterImages(ctx context.Context, chapterSlug string) ([]string, error) {
	resp, err := senkuro.FetchMangaChapter(ctx, g.gql, chapterSlug)
	if err != nil {
		return nil, fmt.Errorf("fetching pages for %q: %w", chapterSlug, err)
	}
	urls := []string{}
	for _, p := range resp.MangaChapter.Pages {
		if u := p.Image.Compress.Url; u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// GetSpotlightPage returns one page of home page spotlights.
func (g *SenkuroGetter) GetSpotlightPage(ctx context.Context, after string) (page[Spotlight], error) {
	resp, err := senkuro.FetchExperimentalSpotlights(ctx, g.gql, after, senkuro.WebsiteModeSenkuro)
	if err != nil {
		return page[Spotlight]{}, fmt.Errorf("fetching spotlights: %w", err)
	}

	p := page[Spotlight]{
		HasNext:   resp.ExperimentalSpotlights.PageInfo.HasNextPage,
		EndCursor: resp.ExperimentalSpotlights.PageInfo.EndCursor,
	}
	for _, e := range resp.ExperimentalSpotlights.Edges {
		node := e.Node
		s := Spotlight{
			ID:      node.Id,
			Title:   senkuro.Title(node.Titles, "EN"),
			TitleRU: senkuro.Title(node.Titles, "RU"),
			Manga:   make([]Manga, 0, len(node.Nodes)),
		}
		for _, card := range node.Nodes {
			if card.Id == "" {
				continue
			}
			s.Manga = append(s.Manga, mapCard(card))
		}
		p.Items = append(p.Items, s)
	}
	return p, nil
}

// Popular returns the most popular manga for a period (DAY, WEEK or MONTH).
func (g *SenkuroGetter) Popular(ctx context.Context, period string) ([]Manga, error) {
	resp, err := senkuro.FetchPopularMangaByPeriod(ctx, g.gql, senkuro.PopularPeriod(period))
	if err != nil {
		return nil, fmt.Errorf("fetching popular for %s: %w", period, err)
	}
	manga := make([]Manga, 0, len(resp.MangaPopularByPeriod))
	for _, p := range resp.MangaPopularByPeriod {
		if p.Id == "" {
			continue
		}
		manga = append(manga, Manga{
			ID:       p.Id,
			Slug:     p.Slug,
			Title:    title(p.Titles, p.Slug),
			CoverURL: p.Cover.URL(),
			Score:    p.Score,
		})
	}
	return manga, nil
}

// Search returns one page of search results.
func (g *SenkuroGetter) Search(ctx context.Context, query string, after string) (page[Manga], error) {
	resp, err := senkuro.Search(ctx, g.gql, query, senkuro.SearchTypeManga, 20, after)
	if err != nil {
		return page[Manga]{}, fmt.Errorf("searching %q: %w", query, err)
	}
	p := page[Manga]{
		HasNext:   resp.Search.PageInfo.HasNextPage,
		EndCursor: resp.Search.PageInfo.EndCursor,
	}
	for _, e := range resp.Search.Edges {
		if e.Node.Id == "" {
			continue
		}
		p.Items = append(p.Items, mapCard(e.Node))
	}
	return p, nil
}

func mapChapter(c senkuro.ChapterInfo) Chapter {
	return Chapter{
		ID:        c.Id,
		Slug:      c.Slug,
		Number:    c.Number,
		Volume:    c.Volume,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

func mapCard(card senkuro.MangaCard) Manga {
	return Manga{
		ID:                card.Id,
		Slug:              card.Slug,
		Title:             title(card.Titles, card.Slug),
		OriginalName:      card.OriginalName.Content,
		Type:              string(card.MangaType),
		Status:            card.MangaStatus,
		Rating:            card.MangaRating,
		CoverURL:          card.Cover.URL(),
		Formats:           card.MangaFormats,
		TranslationStatus: card.TranslitionStatus,
	}
}

// title prefers RU, then EN, then the fallback.
func title(titles []senkuro.LocalizedText, fallback string) string {
	for _, lang := range []string{"RU", "EN"} {
		if hasLang(titles, lang) {
			return senkuro.Title(titles, lang)
		}
	}
	return fallback
}

func hasLang(titles []senkuro.LocalizedText, lang string) bool {
	for _, t := range titles {
		if strings.EqualFold(t.Lang, lang) && t.Content != "" {
			return true
		}
	}
	return false
}

// tags returns up to _maxTags label names, RU preferred.
func tags(labels []senkuro.Label) []string {
	out := []string{}
	for _, l := range labels {
		if len(out) == _maxTags {
			break
		}
		name := ""
		if hasLang(l.Titles, "RU") {
			name = senkuro.Title(l.Titles, "RU")
		} else if hasLang(l.Titles, "EN") {
			name = senkuro.Title(l.Titles, "EN")
		}
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// description concatenates the text of the RU localization's paragraphs.
func description(ctx context.Context, locs []senkuro.Localization) string {
	for _, loc := range locs {
		if !strings.EqualFold(loc.Lang, "RU") {
			continue
		}
		text, err := richText(loc.Description)
		if err != nil {
			Log(ctx).Debug("problem parsing description", "err", err)
		}
		return text
	}
	return ""
}

func richText(raw []byte) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	doc, err := oj.Parse(raw)
	if err != nil {
		return "", errors.Join(errBadRequest, err)
	}
	sb := strings.Builder{}
	for _, v := range _descriptionText.Get(doc) {
		if s, ok := v.(string); ok {
			sb.WriteString(s)
		}
	}
	return sb.String(), nil
}
