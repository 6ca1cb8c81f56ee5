package internal

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/bubblemanga/mangamirror/senkuro"
	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// fakeSenkuro serves canned responses keyed by upstream operation name.
func fakeSenkuro(t *testing.T, responses map[string]string) (*httptest.Server, *[]persistedRequest) {
	t.Helper()
	seen := []persistedRequest{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req persistedRequest
		require.NoError(t, sonic.ConfigStd.Unmarshal(body, &req))
		seen = append(seen, req)

		resp, ok := responses[req.OperationName]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, resp)
	}))
	t.Cleanup(ts.Close)
	return ts, &seen
}

func TestPersistedClientRequest(t *testing.T) {
	ts, seen := fakeSenkuro(t, map[string]string{
		"fetchManga": `{"data":{"manga":null}}`,
	})

	reg := prometheus.NewPedanticRegistry()
	gql := newPersistedClient(ts.URL, ts.Client(), reg)
	g := NewSenkuroGetter(gql)

	_, err := g.GetManga(t.Context(), "missing")
	assert.ErrorIs(t, err, errNotFound)

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Equal(t, "fetchManga", req.OperationName)
	assert.Equal(t, 1, req.Extensions.PersistedQuery.Version)
	assert.Equal(t, senkuro.PersistedQueries["FetchManga"].Hash, req.Extensions.PersistedQuery.Sha256Hash)
	assert.Equal(t, map[string]any{"slug": "missing"}, req.Variables)

	assert.Equal(t, int64(1), gql.metrics.queriesSentGet())
	assert.Equal(t, 1.0, testutil.ToFloat64(gql.metrics.totals.WithLabelValues("queries_sent")))
}

func TestPersistedClientErrors(t *testing.T) {
	ts, _ := fakeSenkuro(t, map[string]string{
		"search": `{"data":null,"errors":[{"message":"query too short","path":["search"]}]}`,
	})
	gql := newPersistedClient(ts.URL, ts.Client(), nil)
	g := NewSenkuroGetter(gql)

	_, err := g.Search(t.Context(), "a", "")
	require.Error(t, err)

	var list gqlerror.List
	require.ErrorAs(t, err, &list)
	assert.Equal(t, "query too short", list[0].Message)

	// Upstream status codes are preserved.
	_, err = g.Popular(t.Context(), "WEEK")
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	assert.Equal(t, int64(2), gql.metrics.errorsGet())
}

func TestSenkuroGetManga(t *testing.T) {
	ts, _ := fakeSenkuro(t, map[string]string{
		"fetchManga": `{"data":{"manga":{
			"id": "TUFOR0E6MQ",
			"slug": "one-piece",
			"titles": [{"lang": "EN", "content": "One Piece"}, {"lang": "RU", "content": "Ван Пис"}],
			"originalName": {"lang": "JA", "content": "ワンピース"},
			"cover": {"main": {"url": ""}, "original": {"url": "https://img/original.jpg"}, "preview": {"url": "https://img/preview.jpg"}},
			"type": "MANGA",
			"status": "ONGOING",
			"rating": "GENERAL",
			"views": 1000,
			"score": 9.5,
			"chapters": 1100,
			"formats": ["DIGITAL"],
			"isLicensed": false,
			"translitionStatus": "ONGOING",
			"labels": [
				{"titles": [{"lang": "EN", "content": "Adventure"}, {"lang": "RU", "content": "Приключения"}]},
				{"titles": [{"lang": "EN", "content": "Comedy"}]}
			],
			"localizations": [
				{"lang": "EN", "description": [{"type": "paragraph", "content": [{"type": "text", "text": "Pirates."}]}]},
				{"lang": "RU", "description": [
					{"type": "paragraph", "content": [{"type": "text", "text": "Пираты "}, {"type": "hardBreak"}, {"type": "text", "text": "и сокровища."}]},
					{"type": "image", "content": [{"type": "text", "text": "ignored"}]}
				]}
			],
			"branches": [
				{"id": "b-fan", "primaryBranch": false, "chapters": 10},
				{"id": "b-main", "primaryBranch": true, "chapters": 1100}
			]
		}}}`,
	})
	g := NewSenkuroGetter(newPersistedClient(ts.URL, ts.Client(), nil))

	m, err := g.GetManga(t.Context(), "one-piece")
	require.NoError(t, err)

	assert.Equal(t, "TUFOR0E6MQ", m.ID)
	assert.Equal(t, "Ван Пис", m.Title)
	assert.Equal(t, "ワンピース", m.OriginalName)
	assert.Equal(t, "https://img/original.jpg", m.CoverURL)
	assert.Equal(t, "MANGA", m.Type)
	assert.Equal(t, 1100, m.ChaptersCount)
	assert.Equal(t, int64(1000), m.Views)
	assert.Equal(t, "b-main", m.BranchID)
	assert.Equal(t, []string{"Приключения", "Comedy"}, m.Tags)
	assert.Equal(t, "Пираты и сокровища.", m.Description)
}

func TestSenkuroGetMangaWithoutBranches(t *testing.T) {
	ts, _ := fakeSenkuro(t, map[string]string{
		"fetchManga": `{"data":{"manga":{"id":"m1","slug":"orphan","titles":[],"originalName":{"lang":"EN","content":"Orphan"},"branches":[]}}}`,
	})
	g := NewSenkuroGetter(newPersistedClient(ts.URL, ts.Client(), nil))

	m, err := g.GetManga(t.Context(), "orphan")
	require.NoError(t, err)
	assert.Equal(t, "m1", m.BranchID)
	assert.Equal(t, "Orphan", m.Title)
	assert.Empty(t, m.Description)
}

func TestSenkuroChapterPage(t *testing.T) {
	ts, seen := fakeSenkuro(t, map[string]string{
		"fetchMangaChapters": `{"data":{"mangaChapters":{
			"edges": [
				{"node": {"id": "c2", "slug": "ch-2", "number": "2", "volume": "1", "name": "", "createdAt": "2024-05-01T10:00:00Z"}},
				{"node": {"id": "c1", "slug": "ch-1", "number": "1", "volume": "1", "name": "Romance Dawn", "createdAt": "2024-04-01T10:00:00Z"}}
			],
			"pageInfo": {"hasNextPage": true, "endCursor": "YXJyYXk6MQ"}
		}}}`,
	})
	g := NewSenkuroGetter(newPersistedClient(ts.URL, ts.Client(), nil))

	p, err := g.GetChapterPage(t.Context(), "b-main", "")
	require.NoError(t, err)

	assert.True(t, p.HasNext)
	assert.Equal(t, "YXJyYXk6MQ", p.EndCursor)
	require.Len(t, p.Items, 2)
	assert.Equal(t, "Romance Dawn", p.Items[1].Name)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), p.Items[0].CreatedAt.UTC())

	vars := (*seen)[0].Variables.(map[string]any)
	assert.Equal(t, "b-main", vars["branchId"])
	assert.Nil(t, vars["number"])
	assert.NotContains(t, vars, "after", "empty cursors are omitted")
	assert.Equal(t, map[string]any{"direction": "DESC", "field": "NUMBER"}, vars["orderBy"])
}

func TestSenkuroMainFeed(t *testing.T) {
	ts, _ := fakeSenkuro(t, map[string]string{
		"fetchMainPage": `{"data":{"lastMangaChapters":{"edges":[
			{"node": {"id": "m1", "slug": "one-piece", "titles": [{"lang": "RU", "content": "Ван Пис"}],
				"cover": {"main": {"url": "https://img/m1.jpg"}},
				"lastChapters": [{"id": "c1100", "slug": "ch-1100", "number": "1100", "createdAt": "2024-05-01T10:00:00Z"}]}},
			{"node": {"id": "m2", "slug": "no-chapters", "titles": [], "lastChapters": []}}
		]}}}`,
	})
	g := NewSenkuroGetter(newPersistedClient(ts.URL, ts.Client(), nil))

	items, err := g.MainFeed(t.Context())
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Ван Пис", items[0].Manga.Title)
	assert.Equal(t, "https://img/m1.jpg", items[0].Manga.CoverURL)
	assert.Equal(t, "c1100", items[0].Chapter.ID)
	assert.Equal(t, "m1", items[0].Chapter.MangaID)
	assert.Equal(t, "/read/one-piece/ch-1100", items[0].Chapter.URL)
}

func TestSenkuroChapterImages(t *testing.T) {
	ts, _ := fakeSenkuro(t, map[string]string{
		"fetchMangaChapter": `{"data":{"mangaChapter":{"pages":[
			{"image": {"compress": {"url": "https://img/1.webp"}}},
			{"image": {"compress": {"url": ""}}},
			{"image": {"compress": {"url": "https://img/2.webp"}}}
		]}}}`,
	})
	g := NewSenkuroGetter(newPersistedClient(ts.URL, ts.Client(), nil))

	pages, err := g.GetChapterImages(t.Context(), "ch-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img/1.webp", "https://img/2.webp"}, pages)
}

func TestSenkuroSpotlights(t *testing.T) {
	ts, _ := fakeSenkuro(t, map[string]string{
		"fetchExperimentalSpotlights": `{"data":{"experimentalSpotlights":{
			"edges": [{"node": {"id": "s1",
				"titles": [{"lang": "RU", "content": "Топ манхв"}, {"lang": "EN", "content": "Top manhwa"}],
				"nodes": [{"id": "m1", "slug": "solo-leveling", "titles": [{"lang": "EN", "content": "Solo Leveling"}], "mangaType": "MANHWA"}]}}],
			"pageInfo": {"hasNextPage": false, "endCursor": ""}
		}}}`,
	})
	g := NewSenkuroGetter(newPersistedClient(ts.URL, ts.Client(), nil))

	p, err := g.GetSpotlightPage(t.Context(), "")
	require.NoError(t, err)
	require.Len(t, p.Items, 1)

	s := p.Items[0]
	assert.Equal(t, "Top manhwa", s.Title)
	assert.Equal(t, "Топ манхв", s.TitleRU)
	require.Len(t, s.Manga, 1)
	assert.Equal(t, "Solo Leveling", s.Manga[0].Title)
	assert.Equal(t, "MANHWA", s.Manga[0].Type)
}

func TestRichText(t *testing.T) {
	text, err := richText([]byte(`null`))
	require.NoError(t, err)
	assert.Empty(t, text)

	_, err = richText([]byte(`{not json`))
	assert.ErrorIs(t, err, errBadRequest)
}

func TestSenkuroIntegration(t *testing.T) {
	t.Parallel()

	if os.Getenv("SENKURO_INTEGRATION") == "" {
		t.Skip("missing SENKURO_INTEGRATION env var")
		return
	}

	g := NewSenkuroGetter(NewSenkuroGQL("api.senkuro.com", time.Second, nil))

	items, err := g.MainFeed(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, items)

	m, err := g.GetManga(t.Context(), items[0].Manga.Slug)
	require.NoError(t, err)
	assert.NotEmpty(t, m.BranchID)

	p, err := g.GetChapterPage(t.Context(), m.BranchID, "")
	require.NoError(t, err)
	assert.NotEmpty(t, p.Items)
}
