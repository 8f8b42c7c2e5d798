package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's prometheus collectors. A nil *Metrics is a valid no-op.
type Metrics struct {
	gatherer prometheus.Gatherer

	requests         *prometheus.CounterVec
	requestLatency   *prometheus.HistogramVec
	errors           *prometheus.CounterVec
	ticketsCreated   prometheus.Counter
	statusChanges    *prometheus.CounterVec
	commentsAdded    prometheus.Counter
	loginFailures    prometheus.Counter
	activeWorkspaces prometheus.Gauge
}

// NewMetrics registers collectors on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "helpdesk_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "helpdesk_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "helpdesk_http_errors_total",
			Help: "Error responses by route, method and error code.",
		}, []string{"route", "method", "code"}),
		ticketsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "helpdesk_tickets_created_total",
			Help: "Tickets created across all workspaces.",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "helpdesk_ticket_status_changes_total",
			Help: "Ticket status changes by new status.",
		}, []string{"status"}),
		commentsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "helpdesk_comments_added_total",
			Help: "Comments appended to tickets.",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "helpdesk_login_failures_total",
			Help: "Rejected login attempts.",
		}),
		activeWorkspaces: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "helpdesk_active_workspaces",
			Help: "Workspaces currently held in memory.",
		}),
	}

	reg.MustRegister(
		m.requests,
		m.requestLatency,
		m.errors,
		m.ticketsCreated,
		m.statusChanges,
		m.commentsAdded,
		m.loginFailures,
		m.activeWorkspaces,
	)
	return m
}

// RecordRequest counts a finished request.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError counts an error response.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(route, method, code).Inc()
}

func (m *Metrics) TicketCreated() {
	if m == nil {
		return
	}
	m.ticketsCreated.Inc()
}

func (m *Metrics) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) CommentAdded() {
	if m == nil {
		return
	}
	m.commentsAdded.Inc()
}

func (m *Metrics) LoginFailed() {
	if m == nil {
		return
	}
	m.loginFailures.Inc()
}

// SetActiveWorkspaces reports the registry size.
func (m *Metrics) SetActiveWorkspaces(n int) {
	if m == nil {
		return
	}
	m.activeWorkspaces.Set(float64(n))
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() fiber.Handler {
	gatherer := prometheus.DefaultGatherer
	if m != nil && m.gatherer != nil {
		gatherer = m.gatherer
	}
	return adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
