package internal

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the JSON API over the mirror.
type Handler struct {
	ctrl   *Controller
	fanout *Fanout // Optional; test notifications are unavailable without it.
}

// NewHandler creates a new handler.
func NewHandler(ctrl *Controller, fanout *Fanout) *Handler {
	return &Handler{ctrl: ctrl, fanout: fanout}
}

// NewMux registers the API's routes.
func NewMux(h *Handler, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler { return gzhttp.GzipHandler(next) })
	r.Use(func(next http.Handler) http.Handler { return instrument(reg, next) })

	r.Get("/api/home/recent", h.getRecent)
	r.Get("/api/home/spotlights", h.getSpotlights)
	r.Get("/api/home/popular", h.getPopular)

	r.Post("/api/manga/bulk-refresh", h.bulkRefresh)
	r.Get("/api/manga/{slug}", h.getManga)
	r.Get("/api/manga/{slug}/chapters", h.getChapters)

	r.Get("/api/search", h.search)

	r.Post("/api/notify/test/{telegramID}", h.testNotify)

	r.Handle("/debug/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return r
}

// requestLogger logs every request once it's been served.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		Log(r.Context()).Debug("served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
		)
	})
}

// getRecent godoc
//
//	@Summary	Newest chapters for the home page
//	@Produce	json
//	@Success	200	{object}	RecentResource
//	@Router		/api/home/recent [get]
func (h *Handler) getRecent(w http.ResponseWriter, r *http.Request) {
	out, err := h.ctrl.RecentChapters(r.Context(), 300*time.Second)
	if err != nil {
		h.error(w, r, err)
		return
	}
	writeRaw(w, out, 300)
}

// getSpotlights godoc
//
//	@Summary	Categorized home page spotlights
//	@Produce	json
//	@Success	200	{object}	SpotlightsResource
//	@Router		/api/home/spotlights [get]
func (h *Handler) getSpotlights(w http.ResponseWriter, r *http.Request) {
	out, err := h.ctrl.Spotlights(r.Context(), 1800*time.Second)
	if err != nil {
		h.error(w, r, err)
		return
	}
	writeRaw(w, out, 1800)
}

// getPopular godoc
//
//	@Summary	Popular manga by period
//	@Param		period	query	string	false	"DAY, WEEK or MONTH"
//	@Produce	json
//	@Success	200	{object}	PopularResource
//	@Failure	400
//	@Router		/api/home/popular [get]
func (h *Handler) getPopular(w http.ResponseWriter, r *http.Request) {
	out, err := h.ctrl.Popular(r.Context(), r.URL.Query().Get("period"), 600*time.Second)
	if err != nil {
		h.error(w, r, err)
		return
	}
	writeRaw(w, out, 600)
}

// getManga godoc
//
//	@Summary	Manga details with the newest chapters
//	@Param		slug	path	string	true	"Manga slug"
//	@Param		refresh	query	bool	false	"Force an upstream refresh"
//	@Produce	json
//	@Success	200	{object}	MangaView
//	@Failure	404
//	@Router		/api/manga/{slug} [get]
func (h *Handler) getManga(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	force, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	view, err := h.ctrl.GetManga(r.Context(), slug, force)
	if err != nil {
		h.error(w, r, err)
		return
	}
	writeJSON(w, view)
}

// getChapters godoc
//
//	@Summary	A page of a manga's mirrored chapters
//	@Param		slug	path	string	true	"Manga slug"
//	@Param		offset	query	int		false	"Offset"
//	@Param		limit	query	int		false	"Limit, at most 5000"
//	@Param		order	query	string	false	"asc or desc"
//	@Produce	json
//	@Success	200	{object}	ChapterList
//	@Router		/api/manga/{slug}/chapters [get]
func (h *Handler) getChapters(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	offset, _ := strconv.Atoi(q.Get("offset"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	desc := !strings.EqualFold(q.Get("order"), "asc")

	list, err := h.ctrl.ListChapters(r.Context(), chi.URLParam(r, "slug"), offset, limit, desc)
	if err != nil {
		h.error(w, r, err)
		return
	}
	writeJSON(w, list)
}

type bulkRefreshRequest struct {
	Slugs []string `json:"slugs"`
}

// bulkRefresh godoc
//
//	@Summary	Queue metadata refreshes for up to 20 manga
//	@Accept		json
//	@Produce	json
//	@Success	200
//	@Failure	400
//	@Router		/api/manga/bulk-refresh [post]
func (h *Handler) bulkRefresh(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		h.error(w, r, errors.Join(errBadRequest, err))
		return
	}
	var req bulkRefreshRequest
	if err := sonic.ConfigStd.Unmarshal(body, &req); err != nil {
		h.error(w, r, errors.Join(errBadRequest, err))
		return
	}

	queued := h.ctrl.BulkRefresh(r.Context(), req.Slugs)
	writeJSON(w, map[string]int{"queued": queued})
}

// search godoc
//
//	@Summary	Search the upstream catalog
//	@Param		q	query	string	true	"Query"
//	@Produce	json
//	@Success	200
//	@Failure	400
//	@Router		/api/search [get]
func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	results, err := h.ctrl.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.error(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"results": results})
}

// testNotify godoc
//
//	@Summary	Send a test notification
//	@Param		telegramID	path	int	true	"Telegram chat ID"
//	@Success	200
//	@Failure	400
//	@Router		/api/notify/test/{telegramID} [post]
func (h *Handler) testNotify(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(chi.URLParam(r, "telegramID"), 10, 64)
	if err != nil || chatID == 0 {
		h.error(w, r, errBadRequest)
		return
	}
	if h.fanout == nil {
		h.error(w, r, statusErr(http.StatusServiceUnavailable))
		return
	}
	if err := h.fanout.Test(r.Context(), chatID); err != nil {
		h.error(w, r, err)
		return
	}
	writeJSON(w, map[string]bool{"success": true})
}

// error responds with the error's status. Server errors are logged.
func (h *Handler) error(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= 500 {
		Log(r.Context()).Error("request failed", "path", r.URL.Path, "err", err)
	}
	out, _ := sonic.ConfigStd.Marshal(map[string]string{"error": http.StatusText(status)})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

func writeJSON(w http.ResponseWriter, v any) {
	out, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(out)
}

// writeRaw writes an already-encoded JSON body which may be cached for
// maxAge seconds.
func writeRaw(w http.ResponseWriter, out []byte, maxAge int) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(maxAge))
	_, _ = w.Write(out)
}
