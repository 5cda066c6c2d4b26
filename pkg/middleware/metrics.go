package middleware

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/linkroute/pkg/applink"
	"github.com/vango-dev/linkroute/pkg/router"
)

// MetricsConfig configures the Prometheus metrics filter.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "linkroute").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispatch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics filter.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "linkroute",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus collectors for one registry.
type metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	missesTotal     *prometheus.CounterVec
	routes          prometheus.Gauge
}

// Collectors are created once per registerer; registering the same
// collector twice on one registry panics.
var (
	registryMetrics   = map[metricsKey]*metrics{}
	registryMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_total",
			Help:        "Total number of dispatched navigation requests",
			ConstLabels: config.ConstLabels,
		}, []string{"scheme", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "Handler processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"scheme"}),

		missesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "misses_total",
			Help:        "Total number of navigation requests no route matched",
			ConstLabels: config.ConstLabels,
		}, []string{"scheme"}),

		routes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "routes",
			Help:        "Number of registered routes",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// metricsKey identifies one set of collectors. Buckets and const labels
// are not part of it: the first configuration registered under a key wins.
type metricsKey struct {
	registry  prometheus.Registerer
	namespace string
	subsystem string
}

func metricsFor(config MetricsConfig) *metrics {
	registryMetricsMu.Lock()
	defer registryMetricsMu.Unlock()

	key := metricsKey{config.Registry, config.Namespace, config.Subsystem}
	m, ok := registryMetrics[key]
	if !ok {
		m = initMetrics(config)
		registryMetrics[key] = m
	}
	return m
}

// Metrics records routing outcomes a filter cannot observe: lookups that
// matched nothing and the size of the route table.
type Metrics struct {
	m *metrics
}

// RecordMiss counts a request for which no route matched.
func (r *Metrics) RecordMiss(scheme string) {
	r.m.missesTotal.WithLabelValues(schemeLabel(scheme)).Inc()
}

// SetRoutes sets the registered route gauge.
func (r *Metrics) SetRoutes(n int) {
	r.m.routes.Set(float64(n))
}

// Prometheus creates a filter that collects Prometheus metrics for every
// dispatched request.
//
// Metrics collected:
//   - linkroute_requests_total: Counter of requests by scheme and status
//   - linkroute_request_duration_seconds: Histogram of handler duration by scheme
//
// Usage:
//
//	r := router.New(router.WithFilters(
//	    middleware.Prometheus(middleware.WithNamespace("myapp")),
//	))
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) router.Filter {
	f, _ := NewPrometheus(opts...)
	return f
}

// NewPrometheus is Prometheus that also returns the recorder for misses
// and route counts on the same registry.
func NewPrometheus(opts ...MetricsOption) (router.Filter, *Metrics) {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	m := metricsFor(config)

	filter := router.FilterFunc(func(next router.Handler) router.Handler {
		return router.HandlerFunc(func(req *applink.Request) router.Response {
			scheme := schemeLabel(req.Scheme)
			start := time.Now()

			resp := next.Process(req)

			m.requestDuration.WithLabelValues(scheme).Observe(time.Since(start).Seconds())
			m.requestsTotal.WithLabelValues(scheme, resp.Status.String()).Inc()
			return resp
		})
	})
	return filter, &Metrics{m: m}
}

// schemeLabel keeps the label value non-empty for schemeless requests.
func schemeLabel(scheme string) string {
	if scheme == "" {
		return "default"
	}
	return scheme
}
