// Package metrics provides Prometheus metrics for the MediTrack service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the MediTrack service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Adherence
	dosesLogged       prometheus.Counter
	medicinesAdded    prometheus.Counter
	medicinesDeleted  prometheus.Counter
	medicineCount     prometheus.Gauge
	todayDoses        prometheus.Gauge
	adherenceRate     prometheus.Gauge
	recordsQuarantine prometheus.Counter

	// Reminders
	reminderScans      prometheus.Counter
	reminderScanTime   prometheus.Histogram
	remindersFired     prometheus.Counter
	remindersDuplicate prometheus.Counter
	remindersDelivered *prometheus.CounterVec
	remindersDropped   *prometheus.CounterVec
	outboxSize         prometheus.Gauge

	// Storage
	storeOperations *prometheus.CounterVec
	storeErrors     *prometheus.CounterVec
	storeLatency    *prometheus.HistogramVec

	// System
	memoryUsage    prometheus.Gauge
	goroutineCount prometheus.Gauge
	gcPauseTime    prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "meditrack",
		subsystem:        "tracker",
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
		Buckets:   m.histogramBuckets,
	}, labels)
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	m.dosesLogged = m.counter("doses_logged_total", "Total number of doses marked as taken")
	m.medicinesAdded = m.counter("medicines_added_total", "Total number of medicines registered")
	m.medicinesDeleted = m.counter("medicines_deleted_total", "Total number of medicines deleted")
	m.medicineCount = m.gauge("medicines", "Number of medicines currently tracked")
	m.todayDoses = m.gauge("today_doses", "Number of dose slots expected today")
	m.adherenceRate = m.gauge("adherence_rate_percent", "Adherence rate over the trailing week")
	m.recordsQuarantine = m.counter("records_quarantined_total", "Persisted medicine records skipped as malformed")

	m.reminderScans = m.counter("reminder_scans_total", "Total number of reminder scans")
	m.reminderScanTime = promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reminder_scan_duration_milliseconds",
		Help:      "Reminder scan duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.remindersFired = m.counter("reminders_fired_total", "Reminders produced by scans")
	m.remindersDuplicate = m.counter("reminders_duplicate_total", "Reminders suppressed because the slot was already notified")
	m.remindersDelivered = m.counterVec("reminders_delivered_total", "Reminders delivered by notifier", "notifier")
	m.remindersDropped = m.counterVec("reminders_dropped_total", "Reminders a notifier failed to deliver", "notifier")
	m.outboxSize = m.gauge("outbox_size", "Reminders waiting in the outbox")

	m.storeOperations = m.counterVec("store_operations_total", "Persistence operations", "op", "key")
	m.storeErrors = m.counterVec("store_errors_total", "Persistence failures", "op", "key")
	m.storeLatency = m.histogramVec("store_latency_milliseconds", "Persistence latency in milliseconds", "op")

	m.memoryUsage = m.gauge("system_memory_bytes", "Heap bytes allocated")
	m.goroutineCount = m.gauge("system_goroutines", "Number of goroutines")
	m.gcPauseTime = m.gauge("system_gc_pause_milliseconds", "Average GC pause in milliseconds")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds",
		"endpoint", "method", "status_code")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by HTTP endpoint",
		"endpoint", "method", "error_type")
}

// RecordDoseLogged increments the doses counter.
func RecordDoseLogged() { globalManager.dosesLogged.Inc() }

// RecordMedicineAdded increments the registered medicines counter.
func RecordMedicineAdded() { globalManager.medicinesAdded.Inc() }

// RecordMedicineDeleted increments the deleted medicines counter.
func RecordMedicineDeleted() { globalManager.medicinesDeleted.Inc() }

// UpdateMedicineCount sets the tracked medicines gauge.
func UpdateMedicineCount(n int) { globalManager.medicineCount.Set(float64(n)) }

// UpdateTodayDoses sets the expected doses gauge.
func UpdateTodayDoses(n int) { globalManager.todayDoses.Set(float64(n)) }

// UpdateAdherenceRate sets the adherence rate gauge.
func UpdateAdherenceRate(rate int) { globalManager.adherenceRate.Set(float64(rate)) }

// RecordQuarantined counts malformed records skipped on load.
func RecordQuarantined(n int) { globalManager.recordsQuarantine.Add(float64(n)) }

// RecordReminderScan records one scan and its duration.
func RecordReminderScan(durationMs float64) {
	globalManager.reminderScans.Inc()
	globalManager.reminderScanTime.Observe(durationMs)
}

// RecordReminderFired counts reminders produced by a scan.
func RecordReminderFired(n int) { globalManager.remindersFired.Add(float64(n)) }

// RecordReminderDuplicate counts reminders suppressed by the seen-set.
func RecordReminderDuplicate() { globalManager.remindersDuplicate.Inc() }

// RecordReminderDelivered counts a delivery by notifier.
func RecordReminderDelivered(notifier string) {
	globalManager.remindersDelivered.WithLabelValues(notifier).Inc()
}

// RecordReminderDropped counts a failed delivery by notifier.
func RecordReminderDropped(notifier string) {
	globalManager.remindersDropped.WithLabelValues(notifier).Inc()
}

// UpdateOutboxSize sets the outbox gauge.
func UpdateOutboxSize(n int) { globalManager.outboxSize.Set(float64(n)) }

// RecordStoreOperation records a persistence call, its latency and outcome.
func RecordStoreOperation(op, key string, latencyMs float64, err error) {
	globalManager.storeOperations.WithLabelValues(op, key).Inc()
	globalManager.storeLatency.WithLabelValues(op).Observe(latencyMs)
	if err != nil {
		globalManager.storeErrors.WithLabelValues(op, key).Inc()
	}
}

// UpdateSystemMemoryUsage sets the heap gauge.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.memoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) { globalManager.goroutineCount.Set(float64(n)) }

// RecordSystemGCPauseTime sets the average GC pause gauge.
func RecordSystemGCPauseTime(ms float64) { globalManager.gcPauseTime.Set(ms) }

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint counts an error response by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
