package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nailapp_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nailapp_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Appointments
	AppointmentsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nailapp_appointments_created_total",
			Help: "Appointments created by initial status",
		},
		[]string{"status"},
	)

	AppointmentStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nailapp_appointment_status_changes_total",
			Help: "Appointment status transitions",
		},
		[]string{"from", "to"},
	)

	SlotConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nailapp_slot_conflicts_total",
			Help: "Bookings rejected because the slot was taken",
		},
	)

	// Reminders
	RemindersPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nailapp_reminders_pending",
			Help: "Reminders waiting to fire",
		},
	)

	RemindersSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nailapp_reminders_sent_total",
			Help: "Reminders handed to the notifier by result",
		},
		[]string{"result"},
	)

	// Auth
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nailapp_login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	// Stats cache
	StatsCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nailapp_stats_cache_lookups_total",
			Help: "Stats cache lookups by result",
		},
		[]string{"result"},
	)
)

func RecordHTTPRequest(method, route, status string) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
}

func RecordAppointmentCreated(status string) {
	AppointmentsCreated.WithLabelValues(status).Inc()
}

func RecordStatusChange(from, to string) {
	AppointmentStatusChanges.WithLabelValues(from, to).Inc()
}

func RecordSlotConflict() {
	SlotConflicts.Inc()
}

func RecordReminder(result string) {
	RemindersSent.WithLabelValues(result).Inc()
}

func SetRemindersPending(n int) {
	RemindersPending.Set(float64(n))
}

func RecordLogin(result string) {
	LoginAttempts.WithLabelValues(result).Inc()
}

func RecordStatsCache(hit bool) {
	if hit {
		StatsCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	StatsCacheLookups.WithLabelValues("miss").Inc()
}
