// Package metrics exposes this service's prometheus collectors: HTTP request
// instrumentation plus the GA/clustering domain counters and histograms.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plantgen_http_requests_total",
		Help: "Total HTTP requests served, by method, path and status",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "plantgen_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	optimizationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plantgen_optimizations_total",
		Help: "Layout optimization runs completed, by objective",
	}, []string{"objective"})

	optimizationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "plantgen_optimization_duration_seconds",
		Help:    "Wall-clock duration of a layout optimization run",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	optimizationGenerations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "plantgen_optimization_generations_executed",
		Help:    "Number of generations executed before a run converged or stopped",
		Buckets: prometheus.LinearBuckets(0, 25, 12),
	})

	optimizationBestFitness = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "plantgen_optimization_best_fitness",
		Help:    "Best aggregate fitness found by a completed optimization run",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})

	trainingRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plantgen_training_runs_total",
		Help: "Clustering training pipeline runs, by outcome",
	}, []string{"outcome"})

	trainingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "plantgen_training_duration_seconds",
		Help:    "Wall-clock duration of a clustering training run",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
	})

	trainingSilhouette = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "plantgen_training_silhouette_score",
		Help: "Silhouette score of the most recently trained cluster model",
	})

	trainingK = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "plantgen_training_k",
		Help: "Number of clusters chosen by the most recently trained cluster model",
	})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plantgen_cache_hits_total",
		Help: "Feature-vector cache hits",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plantgen_cache_misses_total",
		Help: "Feature-vector cache misses",
	})

	dbQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "plantgen_store_query_duration_seconds",
		Help:    "Duration of a catalog/repository store query, by operation and collection",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "collection"})

	recommendationsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plantgen_recommendations_served_total",
		Help: "Recommendations handed back to a caller across all broadcast and on-demand requests",
	})

	progressBroadcastDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "plantgen_progress_broadcast_duration_seconds",
		Help:    "Time spent pushing one generation snapshot to a progress-stream websocket client",
		Buckets: prometheus.DefBuckets,
	})

	activeProgressConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "plantgen_active_progress_connections",
		Help: "Currently open optimization progress-stream websocket connections",
	})
)

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency for every non-websocket
// route. Callers skip it on upgrade paths the way the game server skips it
// for its own websocket endpoint.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)

		path := r.URL.Path
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(r.Method, path, http.StatusText(ww.statusCode)).Inc()
	})
}

// RecordOptimization records one completed layout optimization run.
func RecordOptimization(objective string, duration time.Duration, generationsExecuted int, bestFitness float64) {
	optimizationsTotal.WithLabelValues(objective).Inc()
	optimizationDuration.Observe(duration.Seconds())
	optimizationGenerations.Observe(float64(generationsExecuted))
	optimizationBestFitness.Observe(bestFitness)
}

// RecordTraining records one clustering training pipeline run. outcome is
// "succeeded" or "failed"; k and silhouette are only meaningful when
// outcome is "succeeded".
func RecordTraining(outcome string, duration time.Duration, k int, silhouette float64) {
	trainingRunsTotal.WithLabelValues(outcome).Inc()
	trainingDuration.Observe(duration.Seconds())
	if outcome == "succeeded" {
		trainingK.Set(float64(k))
		trainingSilhouette.Set(silhouette)
	}
}

// RecordCacheHit records a feature-vector cache hit.
func RecordCacheHit() {
	cacheHits.Inc()
}

// RecordCacheMiss records a feature-vector cache miss.
func RecordCacheMiss() {
	cacheMisses.Inc()
}

// RecordStoreQuery records a catalog/repository store round trip.
func RecordStoreQuery(operation, collection string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
}

// RecordRecommendationsServed records n recommendations handed back to a caller.
func RecordRecommendationsServed(n int) {
	recommendationsServed.Add(float64(n))
}

// RecordProgressBroadcast records the time spent pushing one generation
// snapshot to a progress-stream websocket client.
func RecordProgressBroadcast(duration time.Duration) {
	progressBroadcastDuration.Observe(duration.Seconds())
}

// SetActiveProgressConnections reports the number of open progress-stream
// websocket connections.
func SetActiveProgressConnections(n int64) {
	activeProgressConnections.Set(float64(n))
}
