package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AppointmentsCreated prometheus.Counter
	ConflictsRejected   prometheus.Counter
	PromotionsApplied   prometheus.Counter
	PointsAwarded       prometheus.Counter
	PointsRedeemed      prometheus.Counter
	EventsDispatched    *prometheus.CounterVec

	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
}

// New registers and returns the service collectors.
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by method, route and status code.",
			ConstLabels: labels,
		}, []string{"method", "route", "code"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by method and route.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		AppointmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Appointments successfully created.",
			ConstLabels: labels,
		}),
		ConflictsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "appointment_conflicts_rejected_total",
			Help:        "Booking attempts rejected because of an overlap conflict.",
			ConstLabels: labels,
		}),
		PromotionsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "promotions_applied_total",
			Help:        "Promotion codes successfully applied to appointments.",
			ConstLabels: labels,
		}),
		PointsAwarded: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "loyalty_points_awarded_total",
			Help:        "Loyalty points credited on completed payments.",
			ConstLabels: labels,
		}),
		PointsRedeemed: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "loyalty_points_redeemed_total",
			Help:        "Loyalty points redeemed as discounts.",
			ConstLabels: labels,
		}),
		EventsDispatched: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "outbox_events_dispatched_total",
			Help:        "Outbox events dispatched by sink and result.",
			ConstLabels: labels,
		}, []string{"sink", "result"}),
		DBOpenConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the database pool.",
			ConstLabels: labels,
		}),
		DBInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Database connections currently in use.",
			ConstLabels: labels,
		}),
		DBIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Idle connections in the database pool.",
			ConstLabels: labels,
		}),
	}
}

// ObserveHTTP records one finished HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// EventDispatched records one outbox sink outcome.
func (m *Metrics) EventDispatched(sink, result string) {
	m.EventsDispatched.WithLabelValues(sink, result).Inc()
}

// AppointmentCreated records one successful booking.
func (m *Metrics) AppointmentCreated() {
	m.AppointmentsCreated.Inc()
}

// ConflictRejected records one booking rejected on overlap.
func (m *Metrics) ConflictRejected() {
	m.ConflictsRejected.Inc()
}

// PromotionApplied records one promotion code applied.
func (m *Metrics) PromotionApplied() {
	m.PromotionsApplied.Inc()
}

// LoyaltyPointsAwarded records points credited on a completed payment.
func (m *Metrics) LoyaltyPointsAwarded(points int) {
	m.PointsAwarded.Add(float64(points))
}

// LoyaltyPointsRedeemed records points spent as a discount.
func (m *Metrics) LoyaltyPointsRedeemed(points int) {
	m.PointsRedeemed.Add(float64(points))
}

// CollectDBStats samples db pool stats every interval until stopCh closes.
func (m *Metrics) CollectDBStats(db *sql.DB, interval time.Duration, stopCh <-chan struct{}) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := db.Stats()
			m.DBOpenConnections.Set(float64(stats.OpenConnections))
			m.DBInUse.Set(float64(stats.InUse))
			m.DBIdle.Set(float64(stats.Idle))
		}
	}
}
