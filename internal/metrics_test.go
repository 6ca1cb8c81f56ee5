package internal

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestInstrument(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()

	notFoundGetter := NewMockgetter(gomock.NewController(t))
	notFoundGetter.EXPECT().GetManga(gomock.Any(), "missing").Return(Manga{}, errNotFound).AnyTimes()

	ctrl, err := NewController(newTestStore(t), notFoundGetter, nil, nil, 0, reg)
	require.NoError(t, err)

	h := NewHandler(ctrl, nil)
	mux := NewMux(h, reg)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/api/manga/missing")
	assert.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/debug/metrics")
	assert.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(got), `http_inflight 1`)
	assert.Contains(t, string(got), `http_requests_bucket{method="GET",path="/api/manga",status="404",le="1"} 1`)
}

func TestControllerMetrics(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()

	cm := newControllerMetrics(reg)

	cm.backfillWaitingAdd(2)
	assert.Equal(t, 2.0, cm.backfillWaitingGet())
	cm.backfillWaitingAdd(-2)

	cm.refreshWaitingAdd(3)
	assert.Equal(t, 3.0, cm.refreshWaitingGet())
	cm.refreshWaitingAdd(-3)

	cm.refreshesInc()
	cm.chaptersSavedAdd(120)
	cm.chaptersSavedAdd(0)

	assert.Equal(t, 0.0, cm.backfillWaitingGet())
	assert.Equal(t, 0.0, cm.refreshWaitingGet())
	assert.Equal(t, 2.0, testutil.ToFloat64(cm.totals.WithLabelValues("backfills")))
	assert.Equal(t, 1.0, testutil.ToFloat64(cm.totals.WithLabelValues("refreshes")))
	assert.Equal(t, 120.0, testutil.ToFloat64(cm.totals.WithLabelValues("chapters_saved")))
}

func TestCacheMetrics(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	cm := newCacheMetrics(reg)

	assert.Equal(t, 0.0, cm.cacheHitRatioGet())

	cm.cacheHitInc()
	cm.cacheMissInc()

	assert.Equal(t, 1.0, testutil.ToFloat64(cm.totals.WithLabelValues("hits")))
	assert.Equal(t, 1.0, testutil.ToFloat64(cm.totals.WithLabelValues("misses")))
	assert.Equal(t, 0.5, cm.cacheHitRatioGet())
}

func TestPollerMetrics(t *testing.T) {
	pm := newPollerMetrics(prometheus.NewPedanticRegistry())

	pm.ticksInc()
	pm.ticksInc()
	pm.releasesInc()
	pm.failuresInc()
	pm.expiredAdd(0)
	pm.expiredAdd(4)

	assert.Equal(t, 2.0, pm.get("ticks"))
	assert.Equal(t, 1.0, pm.get("releases"))
	assert.Equal(t, 1.0, pm.get("failures"))
	assert.Equal(t, 4.0, pm.get("premium_expired"))
}

func TestDBMetrics(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)
	require.NoError(t, store.UpsertMangaDetails(ctx, testManga("m1")))
	store.UpsertChapters(ctx, "m1", testChapters("m1", "1", "2"))

	reg := prometheus.NewPedanticRegistry()
	RegisterDBMetrics(store, reg)

	assert.EventuallyWithT(t, func(c *assert.CollectT) {
		n, err := testutil.GatherAndCount(reg, "mirror_db_total")
		assert.NoError(c, err)
		assert.Equal(c, 4, n)
	}, time.Second, 10*time.Millisecond)

	dbm := &dbMetrics{gauge: prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "db_total"}, []string{"type"})}
	dbm.collect(ctx, store.counts)
	assert.Equal(t, 1.0, testutil.ToFloat64(dbm.gauge.WithLabelValues("manga")))
	assert.Equal(t, 2.0, testutil.ToFloat64(dbm.gauge.WithLabelValues("chapters")))
	assert.Equal(t, 0.0, testutil.ToFloat64(dbm.gauge.WithLabelValues("subscriptions")))
}

func TestNormalizePattern(t *testing.T) {
	assert.Equal(t, "/api/manga", normalizePattern("/api/manga/{slug}"))
	assert.Equal(t, "/api/manga/chapters", normalizePattern("/api/manga/{slug}/chapters"))
	assert.Equal(t, "/api/manga/bulk-refresh", normalizePattern("/api/manga/bulk-refresh"))
	assert.Equal(t, "/api/notify/test", normalizePattern("/api/notify/test/{telegramID}"))
	assert.Equal(t, "", normalizePattern(""))
}
