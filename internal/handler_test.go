package internal

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type handlerFixture struct {
	store  *SQLiteStore
	getter *Mockgetter
	sender *Mockmessenger
	server *httptest.Server
}

func newHandlerFixture(t *testing.T, withFanout bool) *handlerFixture {
	t.Helper()
	c := gomock.NewController(t)
	f := &handlerFixture{
		store:  newTestStore(t),
		getter: NewMockgetter(c),
		sender: NewMockmessenger(c),
	}

	reg := prometheus.NewRegistry()
	ctrl, err := NewController(f.store, f.getter, nil, nil, 0, reg)
	require.NoError(t, err)
	t.Cleanup(func() { ctrl.Shutdown(context.Background()) })

	var fanout *Fanout
	if withFanout {
		outbox := NewOutbox(1, 1, reg)
		outbox.Start()
		t.Cleanup(func() { outbox.Shutdown(context.Background()) })
		fanout = NewFanout(f.store, outbox, f.sender, "https://example.com", false)
	}

	f.server = httptest.NewServer(NewMux(NewHandler(ctrl, fanout), reg))
	t.Cleanup(f.server.Close)
	return f
}

func (f *handlerFixture) do(t *testing.T, method, path, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), method, f.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(out)
}

func TestHandlerManga(t *testing.T) {
	f := newHandlerFixture(t, false)
	ctx := t.Context()

	m := testManga("m1")
	require.NoError(t, f.store.UpsertMangaDetails(ctx, m))
	f.store.UpsertChapters(ctx, "m1", testChapters("m1", "1", "2", "3"))

	resp, body := f.do(t, http.MethodGet, "/api/manga/slug-m1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var view MangaView
	require.NoError(t, sonic.ConfigStd.UnmarshalFromString(body, &view))
	assert.Equal(t, "Title m1", view.Manga.Title)
	assert.Equal(t, []string{"3", "2", "1"}, numbers(view.Chapters))
	assert.Equal(t, 3, view.TotalInDB)

	resp, body = f.do(t, http.MethodGet, "/api/manga/slug-m1/chapters?order=asc&limit=2&offset=1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list ChapterList
	require.NoError(t, sonic.ConfigStd.UnmarshalFromString(body, &list))
	assert.Equal(t, []string{"2", "3"}, numbers(list.Chapters))
	assert.False(t, list.HasMore)

	f.getter.EXPECT().GetManga(gomock.Any(), "missing").Return(Manga{}, errNotFound)
	resp, body = f.do(t, http.MethodGet, "/api/manga/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Not Found"}`, body)

	resp, body = f.do(t, http.MethodGet, "/api/manga/missing/chapters", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"chapters":[],"is_loading":false,"total_in_db":0,"has_more":false}`, body)
}

func TestHandlerHome(t *testing.T) {
	f := newHandlerFixture(t, false)

	f.getter.EXPECT().Popular(gomock.Any(), "DAY").Return([]Manga{{ID: "m1", Slug: "slug-m1"}}, nil)

	resp, body := f.do(t, http.MethodGet, "/api/home/popular?period=day", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "public, max-age=600", resp.Header.Get("Cache-Control"))
	assert.Contains(t, body, `"period":"DAY"`)

	f.getter.EXPECT().Popular(gomock.Any(), "MONTH").Return(nil, statusErr(http.StatusBadGateway))
	resp, body = f.do(t, http.MethodGet, "/api/home/popular?period=decade", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"period":"MONTH"`)
	assert.Contains(t, body, `"manga":[]`)

	f.getter.EXPECT().MainFeed(gomock.Any()).Return([]FeedItem{feedItem("m1", "5")}, nil)
	resp, body = f.do(t, http.MethodGet, "/api/home/recent", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "public, max-age=300", resp.Header.Get("Cache-Control"))
	assert.Contains(t, body, `"source":"upstream"`)

	// A stale aggregate is served when the upstream is down.
	stale := `{"spotlights":{},"all_spotlights":[],"cached_at":"2020-01-01T00:00:00Z"}`
	require.NoError(t, f.store.PutEntry(t.Context(), "spotlights_cache", []byte(stale), time.Now().Add(-2*time.Hour)))
	f.getter.EXPECT().GetSpotlightPage(gomock.Any(), "").Return(page[Spotlight]{}, statusErr(http.StatusBadGateway))
	resp, body = f.do(t, http.MethodGet, "/api/home/spotlights", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, stale, body)
}

func TestHandlerBulkRefresh(t *testing.T) {
	f := newHandlerFixture(t, false)

	resp, body := f.do(t, http.MethodPost, "/api/manga/bulk-refresh", `{"slugs":["a","b"," "]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"queued":2}`, body)

	resp, _ = f.do(t, http.MethodPost, "/api/manga/bulk-refresh", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandlerSearch(t *testing.T) {
	f := newHandlerFixture(t, false)

	resp, _ := f.do(t, http.MethodGet, "/api/search?q=", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	f.getter.EXPECT().Search(gomock.Any(), "solo", "").Return(page[Manga]{Items: []Manga{{ID: "m1", Slug: "slug-m1"}}}, nil)
	resp, body := f.do(t, http.MethodGet, "/api/search?q=solo", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"results":[`)
	assert.Contains(t, body, `"manga_slug":"slug-m1"`)
}

func TestHandlerTestNotify(t *testing.T) {
	t.Run("unconfigured", func(t *testing.T) {
		f := newHandlerFixture(t, false)
		resp, _ := f.do(t, http.MethodPost, "/api/notify/test/42", "")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("configured", func(t *testing.T) {
		f := newHandlerFixture(t, true)

		resp, _ := f.do(t, http.MethodPost, "/api/notify/test/abc", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		f.sender.EXPECT().SendMessage(gomock.Any(), int64(42), gomock.Any()).Return(nil)
		resp, body := f.do(t, http.MethodPost, "/api/notify/test/42", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":true}`, body)

		f.sender.EXPECT().SendMessage(gomock.Any(), int64(43), gomock.Any()).Return(statusErr(http.StatusForbidden))
		resp, _ = f.do(t, http.MethodPost, "/api/notify/test/43", "")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
