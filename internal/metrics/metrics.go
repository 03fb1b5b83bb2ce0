// Package metrics exposes checkout funnel and HTTP metrics for Prometheus.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tourdesk/internal/checkout"
	"tourdesk/internal/models"
)

// Metrics also acts as a checkout.Notifier
type Metrics struct {
	registry *prometheus.Registry

	transitions    *prometheus.CounterVec
	ordersTotal    *prometheus.CounterVec
	ticketsSold    *prometheus.CounterVec
	revenue        *prometheus.CounterVec
	activeSessions prometheus.Gauge
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tourdesk_checkout_transitions_total",
			Help: "Checkout step transitions.",
		}, []string{"from", "to"}),
		ordersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tourdesk_orders_total",
			Help: "Completed checkouts by outcome.",
		}, []string{"outcome"}),
		ticketsSold: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tourdesk_tickets_sold_total",
			Help: "Tickets in confirmed orders.",
		}, []string{"tier"}),
		revenue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tourdesk_revenue_total",
			Help: "Sum of confirmed order totals.",
		}, []string{"currency"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tourdesk_checkout_sessions_active",
			Help: "Open checkout sessions.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tourdesk_http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tourdesk_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		m.transitions, m.ordersTotal, m.ticketsSold, m.revenue,
		m.activeSessions, m.httpRequests, m.httpDuration,
	)
	return m
}

func (m *Metrics) StepChanged(_ context.Context, _ string, from, to checkout.Step) {
	if from == "" {
		from = "NEW"
	}
	m.transitions.WithLabelValues(from.String(), to.String()).Inc()
}

func (m *Metrics) StepCompleted(_ context.Context, outcome checkout.Outcome, order models.OrderSummary) {
	m.ordersTotal.WithLabelValues(string(outcome)).Inc()
	if outcome != checkout.OutcomeSuccess {
		return
	}
	m.ticketsSold.WithLabelValues(order.Tier.String()).Add(float64(order.Quantity))
	m.revenue.WithLabelValues(order.Currency).Add(order.Total.InexactFloat64())
}

// SetActiveSessions records the session registry size
func (m *Metrics) SetActiveSessions(n int) {
	m.activeSessions.Set(float64(n))
}

// Middleware records request counts and latency per route template
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
