// Package metrics defines all custom Prometheus metrics for the Nexus
// console client. It is the single source of truth for metric names, labels,
// and help strings.
//
// The metrics observe the outbound transport: every REST and GraphQL request
// passes through InstrumentTransport.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nexus_client"

// RequestsTotal counts completed backend requests.
// Labels:
//   - code: HTTP status code of the response
//   - method: HTTP method of the request
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of backend requests issued, by method and status code.",
	},
	[]string{"code", "method"},
)

// RequestDuration measures the full round-trip time of a backend request.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Round-trip duration of backend requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// RequestsInFlight tracks requests currently awaiting a response.
var RequestsInFlight = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "requests_in_flight",
		Help:      "Number of backend requests currently in flight.",
	},
)

// UnauthorizedTotal counts 401 responses, each of which forces a client-side
// logout.
var UnauthorizedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unauthorized_total",
		Help:      "Total number of 401 responses received from the backend.",
	},
)

// InstrumentTransport wraps rt with the counter, duration and in-flight
// collectors above. A nil rt falls back to http.DefaultTransport.
func InstrumentTransport(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperInFlight(RequestsInFlight,
		promhttp.InstrumentRoundTripperCounter(RequestsTotal,
			promhttp.InstrumentRoundTripperDuration(RequestDuration, rt)))
}
