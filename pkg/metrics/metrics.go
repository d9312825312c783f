// Package metrics exposes session and validator activity to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lborres/kindercrew/core"
)

var _ core.AuthMetrics = (*Collector)(nil)

type Collector struct {
	logins           *prometheus.CounterVec
	registrations    *prometheus.CounterVec
	restores         *prometheus.CounterVec
	logouts          prometheus.Counter
	validatorLatency *prometheus.HistogramVec
	httpStatus       *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kindercrew_login_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kindercrew_register_total",
			Help: "Registration attempts by outcome.",
		}, []string{"outcome"}),
		restores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kindercrew_restore_total",
			Help: "Session restores by outcome.",
		}, []string{"outcome"}),
		logouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kindercrew_logout_total",
			Help: "Logouts.",
		}),
		validatorLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kindercrew_validator_latency_seconds",
			Help:    "Time the credential validator spent per request.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kindercrew_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.logins,
		c.registrations,
		c.restores,
		c.logouts,
		c.validatorLatency,
		c.httpStatus,
	)

	return c
}

func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordRegister(outcome string) {
	c.registrations.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordRestore(outcome string) {
	c.restores.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordLogout() {
	c.logouts.Inc()
}

func (c *Collector) RecordValidatorLatency(op string, d time.Duration) {
	c.validatorLatency.WithLabelValues(op).Observe(d.Seconds())
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
