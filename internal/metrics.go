package internal

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	dto "github.com/prometheus/client_model/go"
)

// NewMetrics creates a new Prometheus registry with default collectors already
// registered.
func NewMetrics() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
			Namespace: _metricsNamespace,
		}),
		collectors.NewBuildInfoCollector(),
	)

	return reg
}

var _metricsNamespace = "mirror"

// _patternRE is used for stripping all `{...}` segments from the pattern
// to build a label.
var _patternRE = regexp.MustCompile(`\{[^/]+\}`)

type controllerMetrics struct {
	totals *prometheus.CounterVec
	gauge  *prometheus.GaugeVec
}

type cacheMetrics struct {
	totals *prometheus.CounterVec
}

type gqlMetrics struct {
	totals *prometheus.CounterVec
}

type pollerMetrics struct {
	totals *prometheus.CounterVec
}

type outboxMetrics struct {
	totals *prometheus.CounterVec
	queued prometheus.Gauge
}

type dbMetrics struct {
	gauge *prometheus.GaugeVec
}

// instrument wraps an HTTP handler to automatically record timing and status
// codes. It must be mounted inside the router so the matched route pattern
// is available once the request has been served.
func instrument(reg *prometheus.Registry, next http.Handler) http.Handler {
	requests := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: _metricsNamespace,
			Subsystem: "http",
			Name:      "requests",
			Help:      "HTTP request latencies by method & path",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 1.5, 2.0, 2.5, 5, 7.5, 10, 30, 60, 120},
		},
		[]string{"method", "path", "status"},
	)

	inflight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: _metricsNamespace,
			Subsystem: "http",
			Name:      "inflight",
			Help:      "Current number of inbound in-flight HTTP requests.",
		},
	)

	var mu sync.Mutex
	normalized := map[string]string{}

	reg.MustRegister(requests, inflight)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		inflight.Inc()
		defer inflight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			pattern = rctx.RoutePattern()
		}

		mu.Lock()
		path, ok := normalized[pattern]
		if !ok {
			path = normalizePattern(pattern)
			normalized[pattern] = path
		}
		mu.Unlock()

		if path == "" {
			// Don't record traffic for unrecognized endpoints.
			return
		}

		duration := time.Since(start).Seconds()
		requests.WithLabelValues(r.Method, path, fmt.Sprint(ww.Status())).Observe(duration)
	})
}

func newControllerMetrics(reg *prometheus.Registry) *controllerMetrics {
	totals := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: _metricsNamespace,
			Subsystem: "controller",
			Name:      "total_operations",
			Help:      "Counts of controller operations by type.",
		},
		[]string{"type"},
	)
	gauge := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: _metricsNamespace,
			Subsystem: "controller",
			Name:      "pending_operations",
			Help:      "Counts of pending controller operations by type.",
		},
		[]string{"type"},
	)
	if reg != nil {
		reg.MustRegister(totals, gauge)
	}
	return &controllerMetrics{
		totals: totals,
		gauge:  gauge,
	}
}

func newCacheMetrics(reg *prometheus.Registry) *cacheMetrics {
	totals := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: _metricsNamespace,
			Subsystem: "cache",
			Name:      "total",
			Help:      "Totals for cache system.",
		},
		[]string{"type"},
	)
	if reg != nil {
		reg.MustRegister(totals)
	}
	return &cacheMetrics{totals: totals}
}

func newGQLMetrics(reg *prometheus.Registry) *gqlMetrics {
	totals := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: _metricsNamespace,
			Subsystem: "gql",
			Name:      "total",
			Help:      "How many upstream queries have been sent and failed.",
		},
		[]string{"type"},
	)
	if reg != nil {
		reg.MustRegister(totals)
	}
	return &gqlMetrics{totals: totals}
}

func newPollerMetrics(reg *prometheus.Registry) *pollerMetrics {
	totals := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: _metricsNamespace,
			Subsystem: "poller",
			Name:      "total",
			Help:      "Counts of poll ticks, releases and failures.",
		},
		[]string{"type"},
	)
	if reg != nil {
		reg.MustRegister(totals)
	}
	return &pollerMetrics{totals: totals}
}

func newOutboxMetrics(reg *prometheus.Registry) *outboxMetrics {
	totals := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: _metricsNamespace,
			Subsystem: "outbox",
			Name:      "total",
			Help:      "Counts of outbound deliveries by outcome.",
		},
		[]string{"type"},
	)
	queued := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: _metricsNamespace,
			Subsystem: "outbox",
			Name:      "queued",
			Help:      "Deliveries waiting for a worker.",
		},
	)
	if reg != nil {
		reg.MustRegister(totals, queued)
	}
	return &outboxMetrics{totals: totals, queued: queued}
}

// RegisterDBMetrics exports the store's row counts to reg.
func RegisterDBMetrics(store mirror, reg *prometheus.Registry) {
	var pool *pgxpool.Pool
	if pg, ok := store.(*PGStore); ok {
		pool = pg.Pool()
	}
	newDBMetrics(store.counts, pool, reg)
}

// newDBMetrics periodically records row counts. Pool stats are exported too
// when we're backed by Postgres.
func newDBMetrics(counter func(context.Context) (dbCounts, error), pool *pgxpool.Pool, reg *prometheus.Registry) *dbMetrics {
	gauge := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: _metricsNamespace,
			Subsystem: "db",
			Name:      "total",
			Help:      "Counts of persisted objects by type.",
		},
		[]string{"type"},
	)
	if reg != nil {
		reg.MustRegister(gauge)
		if pool != nil {
			reg.MustRegister(pgxpoolprometheus.NewCollector(pool, nil))
		}
	}
	dbm := &dbMetrics{gauge: gauge}

	// Counting chapters is a full scan, so only do it every 5 minutes.
	go func() {
		ctx := context.Background()
		for {
			dbm.collect(ctx, counter)
			time.Sleep(5 * time.Minute)
		}
	}()

	return dbm
}

func (dbm *dbMetrics) collect(ctx context.Context, counter func(context.Context) (dbCounts, error)) {
	n, err := counter(ctx)
	if err != nil {
		Log(ctx).Warn("problem collecting db stats", "err", err)
		return
	}
	dbm.gauge.WithLabelValues("manga").Set(float64(n.manga))
	dbm.gauge.WithLabelValues("chapters").Set(float64(n.chapters))
	dbm.gauge.WithLabelValues("cache_entries").Set(float64(n.entries))
	dbm.gauge.WithLabelValues("subscriptions").Set(float64(n.subscriptions))
}

func (cm *controllerMetrics) backfillWaitingAdd(delta int64) {
	if delta == 0 {
		return
	}
	if delta > 0 {
		cm.totals.WithLabelValues("backfills").Add(float64(delta))
	}
	cm.gauge.WithLabelValues("backfill").Add(float64(delta))
}

func (cm *controllerMetrics) backfillWaitingGet() float64 {
	m := &dto.Metric{}
	err := cm.gauge.WithLabelValues("backfill").Write(m)
	if err != nil {
		return 0.0
	}
	return m.GetGauge().GetValue()
}

func (cm *controllerMetrics) refreshWaitingAdd(delta int64) {
	if delta == 0 {
		return
	}
	cm.gauge.WithLabelValues("refresh").Add(float64(delta))
}

func (cm *controllerMetrics) refreshWaitingGet() float64 {
	m := &dto.Metric{}
	err := cm.gauge.WithLabelValues("refresh").Write(m)
	if err != nil {
		return 0.0
	}
	return m.GetGauge().GetValue()
}

func (cm *controllerMetrics) refreshesInc() {
	cm.totals.WithLabelValues("refreshes").Inc()
}

func (cm *controllerMetrics) chaptersSavedAdd(delta int) {
	if delta <= 0 {
		return
	}
	cm.totals.WithLabelValues("chapters_saved").Add(float64(delta))
}

func (cm *cacheMetrics) cacheHitInc() {
	cm.totals.WithLabelValues("hits").Inc()
}

func (cm *cacheMetrics) cacheHitGet() int64 {
	m := &dto.Metric{}
	err := cm.totals.WithLabelValues("hits").Write(m)
	if err != nil {
		return 0.0
	}
	return int64(m.GetCounter().GetValue())
}

func (cm *cacheMetrics) cacheMissInc() {
	cm.totals.WithLabelValues("misses").Inc()
}

func (cm *cacheMetrics) cacheStaleInc() {
	cm.totals.WithLabelValues("stale").Inc()
}

func (cm *cacheMetrics) cacheMissGet() int64 {
	m := &dto.Metric{}
	err := cm.totals.WithLabelValues("misses").Write(m)
	if err != nil {
		return 0.0
	}
	return int64(m.GetCounter().GetValue())
}

func (cm *cacheMetrics) cacheHitRatioGet() float64 {
	hits := cm.cacheHitGet()
	misses := cm.cacheMissGet()
	if hits+misses == 0 {
		return 0.0
	}
	ratio := float64(hits) / float64(hits+misses)
	return ratio
}

func (gm *gqlMetrics) queriesSentInc() {
	gm.totals.WithLabelValues("queries_sent").Inc()
}

func (gm *gqlMetrics) queriesSentGet() int64 {
	m := &dto.Metric{}
	err := gm.totals.WithLabelValues("queries_sent").Write(m)
	if err != nil {
		return 0
	}
	return int64(m.GetCounter().GetValue())
}

func (gm *gqlMetrics) errorsInc() {
	gm.totals.WithLabelValues("errors").Inc()
}

func (gm *gqlMetrics) errorsGet() int64 {
	m := &dto.Metric{}
	err := gm.totals.WithLabelValues("errors").Write(m)
	if err != nil {
		return 0
	}
	return int64(m.GetCounter().GetValue())
}

func (pm *pollerMetrics) ticksInc() {
	pm.totals.WithLabelValues("ticks").Inc()
}

func (pm *pollerMetrics) releasesInc() {
	pm.totals.WithLabelValues("releases").Inc()
}

func (pm *pollerMetrics) failuresInc() {
	pm.totals.WithLabelValues("failures").Inc()
}

func (pm *pollerMetrics) expiredAdd(n int) {
	if n <= 0 {
		return
	}
	pm.totals.WithLabelValues("premium_expired").Add(float64(n))
}

func (pm *pollerMetrics) get(kind string) float64 {
	m := &dto.Metric{}
	err := pm.totals.WithLabelValues(kind).Write(m)
	if err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func (om *outboxMetrics) sentInc() {
	om.totals.WithLabelValues("sent").Inc()
}

func (om *outboxMetrics) failedInc() {
	om.totals.WithLabelValues("failed").Inc()
}

func (om *outboxMetrics) droppedInc() {
	om.totals.WithLabelValues("dropped").Inc()
}

func (om *outboxMetrics) get(kind string) float64 {
	m := &dto.Metric{}
	err := om.totals.WithLabelValues(kind).Write(m)
	if err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// normalizePattern derives the constant label from the pattern:
//
//	"/api/manga/{slug}"          → "/api/manga"
//	"/api/manga/{slug}/chapters" → "/api/manga/chapters"
//	"/api/manga/bulk-refresh"    → "/api/manga/bulk-refresh"
func normalizePattern(pattern string) string {
	p := _patternRE.ReplaceAllString(pattern, "")
	p = strings.TrimSuffix(p, "/")
	p = strings.ReplaceAll(p, "//", "/")
	return p
}
