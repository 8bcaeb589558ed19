package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the responder.
type Metrics struct {
	registry *prometheus.Registry

	Replies      *prometheus.CounterVec
	Fallbacks    *prometheus.CounterVec
	Failures     *prometheus.CounterVec
	ReplyLatency *prometheus.HistogramVec
	HTTPRequests *prometheus.CounterVec
	InFlight     prometheus.Gauge
}

// NewMetrics registers instruments on a private registry so several instances
// can coexist in one process.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Replies: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_total",
			Help:      "Replies by intent and answering path.",
		}, []string{"intent", "path"}),
		Fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agent_outcomes_total",
			Help:      "Generative agent outcomes (planned, clarify, direct).",
		}, []string{"outcome"}),
		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Pipeline failures by stage.",
		}, []string{"stage"}),
		ReplyLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reply_latency_seconds",
			Help:      "End to end reply latency by answering path.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"path"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		InFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "replies_in_flight",
			Help:      "Replies currently being produced.",
		}),
	}
}

func (m *Metrics) ObserveReply(intent, path string, d time.Duration) {
	m.Replies.WithLabelValues(intent, path).Inc()
	m.ReplyLatency.WithLabelValues(path).Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
