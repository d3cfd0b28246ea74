package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Booking attempt results
const (
	BookingCreated    = "created"
	BookingConflict   = "conflict"
	BookingRejected   = "rejected"
	BookingFailed     = "failed"
	ClaimAcquired     = "acquired"
	ClaimTakenOver    = "taken_over"
	ClaimHeld         = "held"
	ClaimUnavailable  = "unavailable"
	unmatchedEndpoint = "unmatched"
)

// Collector holds the service's Prometheus collectors. A nil *Collector is
// valid and records nothing, so tests and metric-less deployments can pass nil.
type Collector struct {
	gatherer prometheus.Gatherer

	httpRequestsTotal      *prometheus.CounterVec
	httpRequestDuration    *prometheus.HistogramVec
	bookingAttemptsTotal   *prometheus.CounterVec
	appointmentTransitions *prometheus.CounterVec
	slotClaimsTotal        *prometheus.CounterVec
}

// NewCollector registers the collectors on reg. Pass prometheus.NewRegistry()
// in tests to avoid duplicate registration on the default registry.
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		gatherer: reg,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		bookingAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booking_attempts_total",
				Help: "Appointment booking attempts by result",
			},
			[]string{"result"},
		),
		appointmentTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appointment_transitions_total",
				Help: "Appointment status changes",
			},
			[]string{"from", "to"},
		),
		slotClaimsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slot_claims_total",
				Help: "Redis slot claim outcomes",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		c.httpRequestsTotal,
		c.httpRequestDuration,
		c.bookingAttemptsTotal,
		c.appointmentTransitions,
		c.slotClaimsTotal,
	)

	return c
}

func (c *Collector) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	if c == nil {
		return
	}
	c.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	c.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func (c *Collector) RecordBooking(result string) {
	if c == nil {
		return
	}
	c.bookingAttemptsTotal.WithLabelValues(result).Inc()
}

func (c *Collector) RecordTransition(from, to string) {
	if c == nil {
		return
	}
	c.appointmentTransitions.WithLabelValues(from, to).Inc()
}

func (c *Collector) RecordClaim(result string) {
	if c == nil {
		return
	}
	c.slotClaimsTotal.WithLabelValues(result).Inc()
}

// Handler exposes the registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// HTTPMiddleware records request count and latency per route template, so
// /doctors/{id} is one series rather than one per doctor.
func (c *Collector) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		endpoint := unmatchedEndpoint
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}

		c.RecordHTTPRequest(r.Method, endpoint, wrapper.statusCode, time.Since(start))
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
