package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the application.
// It includes counters for handled HTTP requests and attendance marks,
// and histograms for request, database query and report durations.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec   // Counter for handled HTTP requests
	RequestDuration  *prometheus.HistogramVec // Histogram for HTTP request durations
	AttendanceMarks  *prometheus.CounterVec   // Counter for attendance clock actions
	DBQueryDuration  *prometheus.HistogramVec // Histogram for database query durations
	ReportGeneration *prometheus.HistogramVec // Histogram for report rendering durations
}

// NewMetrics creates a new Metrics instance with the provided Prometheus Registerer.
// It initializes the counters and histograms tracking the HTTP surface, the
// attendance flow, database access, and report rendering.
//
// Parameters:
//   - reg: A Prometheus Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "chronos_http_requests_total",
			Help: "Total number of handled HTTP requests",
		}, []string{"method", "path", "status"}),
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chronos_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		AttendanceMarks: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "chronos_attendance_marks_total",
			Help: "Total number of attendance clock actions",
		}, []string{"action"}), // action: IN, OUT
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chronos_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'mark_attendance', 'monthly_stats'
		ReportGeneration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name: "chronos_report_generation_duration_seconds",
			Help: "Duration of report rendering.",
		}, []string{"format"}), // format: csv, excel, pdf
	}
}
