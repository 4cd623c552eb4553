package gymapi

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer receives one measurement per upstream call. The HTTP adapter
// feeds these into the perf collector; Prometheus gets its own observer.
type Observer interface {
	ObserveCall(op string, status int, d time.Duration)
}

type opContextKey struct{}

func withOp(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, opContextKey{}, op)
}

func opFromRequest(req *http.Request) string {
	if op, ok := req.Context().Value(opContextKey{}).(string); ok {
		return op
	}
	return req.Method + " " + req.URL.Path
}

// observedTransport times every request and reports it to all observers.
// A transport error reports status 0.
type observedTransport struct {
	base      http.RoundTripper
	observers []Observer
}

func (t *observedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	elapsed := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	op := opFromRequest(req)
	for _, o := range t.observers {
		o.ObserveCall(op, status, elapsed)
	}
	return resp, err
}

// PrometheusObserver exports upstream call metrics: a counter by endpoint
// and status class, and a duration histogram by endpoint.
type PrometheusObserver struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusObserver registers the upstream metrics on reg.
// PRE: reg is non-nil and the metrics are not already registered
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	o := &PrometheusObserver{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gymapi_client_requests_total",
			Help: "Upstream gym API requests by endpoint and status code.",
		}, []string{"endpoint", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gymapi_client_request_duration_seconds",
			Help:    "Upstream gym API request latency by endpoint.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	reg.MustRegister(o.calls, o.duration)
	return o
}

// ObserveCall records one upstream request.
func (o *PrometheusObserver) ObserveCall(op string, status int, d time.Duration) {
	o.calls.WithLabelValues(op, statusLabel(status)).Inc()
	o.duration.WithLabelValues(op).Observe(d.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status == 0:
		return "error"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
