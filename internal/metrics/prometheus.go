package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the prediction pipeline

var (
	// Scoreboard API metrics
	ScoreboardCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookiebench_scoreboard_calls_total",
			Help: "Total number of ESPN scoreboard API calls",
		},
		[]string{"operation", "status"},
	)

	ScoreboardCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookiebench_scoreboard_call_duration_seconds",
			Help:    "Duration of scoreboard API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// AI provider metrics
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookiebench_provider_calls_total",
			Help: "Total number of AI provider completions",
		},
		[]string{"model", "status"},
	)

	ProviderCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookiebench_provider_call_duration_seconds",
			Help:    "Duration of AI provider completions in seconds",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 20, 45},
		},
		[]string{"model"},
	)

	PredictionsCollected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookiebench_predictions_collected_total",
			Help: "Total number of predictions stored",
		},
		[]string{"model"},
	)

	// Database metrics
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookiebench_db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookiebench_db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookiebench_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookiebench_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// Pipeline run metrics
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookiebench_pipeline_runs_total",
			Help: "Total number of pipeline runs",
		},
		[]string{"pipeline", "status"},
	)

	PipelineRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookiebench_pipeline_run_duration_seconds",
			Help:    "Duration of pipeline runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"pipeline"},
	)

	GamesTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookiebench_games_tracked",
			Help: "Number of games fetched in the latest schedule run",
		},
	)

	ResultsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookiebench_results_recorded_total",
			Help: "Total number of final results recorded",
		},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookiebench_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookiebench_system_uptime_seconds",
			Help: "System uptime in seconds",
		},
	)

	LastSuccessfulRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookiebench_last_successful_run_timestamp",
			Help: "Timestamp of the last successful pipeline run",
		},
	)
)

// RecordScoreboardCall records a scoreboard API call metric
func RecordScoreboardCall(operation, status string, duration float64) {
	ScoreboardCallsTotal.WithLabelValues(operation, status).Inc()
	ScoreboardCallDuration.WithLabelValues(operation).Observe(duration)
}

// RecordProviderCall records an AI provider completion metric
func RecordProviderCall(model, status string, duration float64) {
	ProviderCallsTotal.WithLabelValues(model, status).Inc()
	ProviderCallDuration.WithLabelValues(model).Observe(duration)
}

// RecordPrediction records a stored prediction
func RecordPrediction(model string) {
	PredictionsCollected.WithLabelValues(model).Inc()
}

// RecordCacheHit records a cache hit
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordPipelineRun records a pipeline run
func RecordPipelineRun(pipeline, status string, duration float64) {
	PipelineRunsTotal.WithLabelValues(pipeline, status).Inc()
	PipelineRunDuration.WithLabelValues(pipeline).Observe(duration)

	if status == "success" {
		LastSuccessfulRun.SetToCurrentTime()
	}
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// UpdateDBConnectionStats updates database connection pool statistics
func UpdateDBConnectionStats(active, idle int32) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
