package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics. Collectors are created
// unregistered so tests can construct a Metrics without fighting over
// the default registry; main calls MustRegister once.
type Metrics struct {
	// Store metrics
	StoreOperations *prometheus.CounterVec
	SlotConflicts   prometheus.Counter
	StorageWrites   *prometheus.CounterVec

	// HTTP metrics
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec

	// Reminder worker metrics
	RemindersSent   prometheus.Counter
	ReminderLatency prometheus.Histogram
}

func New(namespace string) *Metrics {
	return &Metrics{
		StoreOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Total number of appointment store operations",
		}, []string{"operation", "status"}),
		SlotConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_conflicts_total",
			Help:      "Total number of bookings rejected as slot conflicts",
		}),
		StorageWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_writes_total",
			Help:      "Total number of durable storage writes",
		}, []string{"status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "path", "status"}),
		RequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		RemindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_sent_total",
			Help:      "Total number of appointment reminders sent",
		}),
		ReminderLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reminder_scan_duration_seconds",
			Help:      "Time spent scanning for due reminders",
		}),
	}
}

// MustRegister registers every collector with the given registerer.
func (m *Metrics) MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		m.StoreOperations,
		m.SlotConflicts,
		m.StorageWrites,
		m.RequestDuration,
		m.RequestTotal,
		m.RemindersSent,
		m.ReminderLatency,
	)
}
