package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	BookingsTotal      *prometheus.CounterVec
	SlotsGenerated     prometheus.Counter
	AbsenceCascades    prometheus.Counter
	CascadeCancelled   prometheus.Counter
	NotificationErrors *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barber",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "barber",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		BookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barber",
			Name:      "bookings_total",
			Help:      "Booking state transitions.",
		}, []string{"transition"}),
		SlotsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "barber",
			Name:      "slots_generated_total",
			Help:      "Slots created by the generator.",
		}),
		AbsenceCascades: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "barber",
			Name:      "absence_approvals_total",
			Help:      "Approved absence requests.",
		}),
		CascadeCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "barber",
			Name:      "absence_cancelled_bookings_total",
			Help:      "Bookings cancelled by approved absences.",
		}),
		NotificationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barber",
			Name:      "notification_errors_total",
			Help:      "Failed notification deliveries by kind.",
		}, []string{"kind"}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.BookingsTotal,
		m.SlotsGenerated,
		m.AbsenceCascades,
		m.CascadeCancelled,
		m.NotificationErrors,
	)
	return m
}

// Middleware registra contagem e latência por rota.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) BookingTransition(transition string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(transition).Inc()
}

func (m *Metrics) SlotsCreated(n int) {
	if m == nil {
		return
	}
	m.SlotsGenerated.Add(float64(n))
}

func (m *Metrics) AbsenceApproved(cancelled int) {
	if m == nil {
		return
	}
	m.AbsenceCascades.Inc()
	m.CascadeCancelled.Add(float64(cancelled))
}

func (m *Metrics) NotificationFailed(kind string) {
	if m == nil {
		return
	}
	m.NotificationErrors.WithLabelValues(kind).Inc()
}
