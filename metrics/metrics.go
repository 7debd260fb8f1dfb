// Package metrics exposes Prometheus metrics for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type BuildInfo struct {
	Version  string
	Revision string
}

type Provider struct {
	reg *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	planDuration *prometheus.HistogramVec
	searchDur    *prometheus.HistogramVec
	cacheLookups *prometheus.CounterVec
	graphEdges   prometheus.Gauge
}

func Init(build BuildInfo) *Provider {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	info := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sea_routing_build_info",
			Help: "Build info for this binary (value is always 1).",
		},
		[]string{"version", "revision"},
	)
	if build.Version == "" {
		build.Version = "dev"
	}
	info.WithLabelValues(build.Version, build.Revision).Set(1)

	p := &Provider{
		reg: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sea_routing_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sea_routing_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		planDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sea_routing_plan_duration_seconds",
			Help:    "Shortest path planning latency by render mode and outcome.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"mode", "outcome"}),
		searchDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sea_routing_search_duration_seconds",
			Help:    "Coordinate search latency by method and outcome.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sea_routing_plan_cache_lookups_total",
			Help: "Plan cache lookups by result (hit|miss).",
		}, []string{"result"}),
		graphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sea_routing_graph_edges",
			Help: "Number of edges in the loaded routing graph.",
		}),
	}
	reg.MustRegister(info, p.httpRequests, p.httpDuration, p.planDuration, p.searchDur, p.cacheLookups, p.graphEdges)
	return p
}

func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{})
}

func (p *Provider) Registerer() prometheus.Registerer { return p.reg }

func (p *Provider) ObservePlan(mode, outcome string, seconds float64) {
	p.planDuration.WithLabelValues(mode, outcome).Observe(seconds)
}

func (p *Provider) ObserveSearch(method, outcome string, seconds float64) {
	p.searchDur.WithLabelValues(method, outcome).Observe(seconds)
}

func (p *Provider) CacheResult(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	p.cacheLookups.WithLabelValues(result).Inc()
}

// SetGraphEdges records the size of the graph loaded at startup.
func (p *Provider) SetGraphEdges(n int) {
	p.graphEdges.Set(float64(n))
}

// Middleware counts requests per matched route template, so /api/locations/:id
// stays one series regardless of the id.
func (p *Provider) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		p.httpRequests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		p.httpDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
