package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the service
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	LoginsTotal        *prometheus.CounterVec
	RegistrationsTotal *prometheus.CounterVec
	BookingsCreated    prometheus.Counter
	TransitionsTotal   *prometheus.CounterVec
}

// NewMetrics registers and returns the service metrics. Call once per
// process; the instruments live on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taxi_booking_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "code"}),

		LoginsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taxi_booking_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),

		RegistrationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taxi_booking_registrations_total",
			Help: "Account registrations by role",
		}, []string{"role"}),

		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taxi_booking_bookings_created_total",
			Help: "Bookings created",
		}),

		TransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taxi_booking_status_transitions_total",
			Help: "Booking status transitions by target status",
		}, []string{"to"}),
	}
}

// HTTPMetrics counts every request once the handler chain finishes
func (m *Metrics) HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
