package middleware

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics instruments echo handlers with request counters and latency
// histograms. Status codes are recorded as-is, not grouped into 2xx/4xx.
type Metrics struct {
	registry *prometheus.Registry
	excluded []*regexp.Regexp

	inFlight prometheus.Gauge
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(excludedHandlers []string) (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_inprogress",
			Help: "Number of HTTP requests in progress.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of requests by method, status and handler.",
		}, []string{"method", "status", "handler"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests by handler.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "handler"}),
	}

	for _, pattern := range excludedHandlers {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid excluded handler pattern %q: %w", pattern, err)
		}
		m.excluded = append(m.excluded, re)
	}

	m.registry.MustRegister(
		m.inFlight,
		m.requests,
		m.duration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return m, nil
}

func (m *Metrics) isExcluded(handler string) bool {
	for _, re := range m.excluded {
		if re.MatchString(handler) {
			return true
		}
	}
	return false
}

// unmatchedHandler labels requests that matched no route, so scanned or
// mistyped URLs share one series.
const unmatchedHandler = "none"

// Middleware labels requests with the route template, e.g.
// /api/v1/hotels/:location. A panic passing through is counted as a 500.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			handler := c.Path()
			if handler == "" {
				handler = unmatchedHandler
			}
			if m.isExcluded(handler) {
				return next(c)
			}

			m.inFlight.Inc()
			start := time.Now()
			panicked := true
			defer func() {
				m.inFlight.Dec()
				status := c.Response().Status
				if panicked {
					status = http.StatusInternalServerError
				}
				method := c.Request().Method
				m.requests.WithLabelValues(method, strconv.Itoa(status), handler).Inc()
				m.duration.WithLabelValues(method, handler).Observe(time.Since(start).Seconds())
			}()

			err := next(c)
			panicked = false
			if err != nil {
				// Commit the error response now so the final status is known.
				c.Error(err)
			}
			return err
		}
	}
}

func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
