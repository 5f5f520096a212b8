package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/adrianowead/wead/pkg/store"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Repository operation metrics
	dbOperationsTotal   *prometheus.CounterVec
	dbOperationDuration *prometheus.HistogramVec
	dbRecordsTotal      prometheus.Gauge
	dbLastID            prometheus.Gauge
	dbFileSizeBytes     prometheus.Gauge

	// Benchmark metrics
	benchmarkRunsTotal *prometheus.CounterVec
	benchmarkDuration  *prometheus.HistogramVec

	// Health check metrics
	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates all Prometheus metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wead_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wead_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "wead_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		dbOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wead_db_operations_total",
				Help: "Total number of repository operations",
			},
			[]string{"operation", "status"},
		),

		dbOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wead_db_operation_duration_seconds",
				Help:    "Repository operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		dbRecordsTotal: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "wead_db_records_total",
				Help: "Number of records in the data file",
			},
		),

		dbLastID: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "wead_db_last_id",
				Help: "Highest id assigned by the repository",
			},
		),

		dbFileSizeBytes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "wead_db_file_size_bytes",
				Help: "Size of the data file in bytes",
			},
		),

		benchmarkRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wead_benchmark_runs_total",
				Help: "Total number of pricing benchmark runs",
			},
			[]string{"mode", "status"},
		),

		benchmarkDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wead_benchmark_duration_seconds",
				Help:    "Pricing benchmark kernel duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"mode"},
		),

		healthChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wead_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}

	return m
}

func statusLabel(success bool) string {
	if success {
		return statusSuccess
	}
	return statusError
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDBOperation records a repository operation
func (m *Metrics) RecordDBOperation(operation string, success bool, duration time.Duration) {
	m.dbOperationsTotal.WithLabelValues(operation, statusLabel(success)).Inc()
	m.dbOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBStats updates the repository gauges
func (m *Metrics) UpdateDBStats(stats *store.Stats) {
	m.dbRecordsTotal.Set(float64(stats.Records))
	m.dbLastID.Set(float64(stats.LastID))
	m.dbFileSizeBytes.Set(float64(stats.FileSize))
}

// RecordBenchmark records one benchmark run
func (m *Metrics) RecordBenchmark(mode string, success bool, duration time.Duration) {
	m.benchmarkRunsTotal.WithLabelValues(mode, statusLabel(success)).Inc()
	if success {
		m.benchmarkDuration.WithLabelValues(mode).Observe(duration.Seconds())
	}
}

// RecordHealthCheck records a health check
func (m *Metrics) RecordHealthCheck(success bool) {
	m.healthChecksTotal.WithLabelValues(statusLabel(success)).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		// Create response writer wrapper to capture status code
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
