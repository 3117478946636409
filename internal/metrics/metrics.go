// Package metrics provides the centralized Prometheus metrics registry for
// the match tips service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RefreshPassesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchtips",
		Name:      "refresh_passes_total",
		Help:      "Total number of completed refresh passes",
	})
	LeagueRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchtips",
		Name:      "league_refresh_total",
		Help:      "Total number of successful league snapshot replacements",
	}, []string{"league"})
	LeagueRefreshFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchtips",
		Name:      "league_refresh_failures_total",
		Help:      "Total number of failed league refresh attempts",
	}, []string{"league"})
	AnalysisRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchtips",
		Name:      "analysis_requests_total",
		Help:      "Total number of analysis requests by outcome",
	}, []string{"outcome"})
)

// Gauge metrics
var (
	CachedTeams = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "matchtips",
		Name:      "cached_teams",
		Help:      "Number of teams in the current snapshot per league",
	}, []string{"league"})
	AnalysisCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchtips",
		Name:      "analysis_cache_hit_ratio",
		Help:      "Hit ratio of the analysis response cache",
	})
)

// Histogram metrics
var (
	ProviderRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "matchtips",
		Name:      "provider_request_duration_seconds",
		Help:      "Duration of provider HTTP requests",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// Registry returns the global metrics registry, registering all collectors
// on first use.
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			RefreshPassesTotal,
			LeagueRefreshTotal,
			LeagueRefreshFailuresTotal,
			AnalysisRequestsTotal,
			CachedTeams,
			AnalysisCacheHitRatio,
			ProviderRequestDuration,
		)
	})
	return registry
}

// Handler returns an HTTP handler serving the global registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}
