package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Generation latency buckets in milliseconds; model calls routinely take
	// seconds, so the upper range is wide.
	latencyBuckets = []float64{
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
		60000,
	}

	ModerationChecksTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatguard_moderation_checks_total",
			Help: "Moderation checks performed, by stage and outcome",
		},
		[]string{"stage", "outcome"},
	)

	GenerationLatency = promauto.With(registerer).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chatguard_generation_latency_ms",
			Help:    "Text generation backend latency in milliseconds",
			Buckets: latencyBuckets,
		},
	)

	GenerationFailuresTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "chatguard_generation_failures_total",
			Help: "Text generation backend failures",
		},
	)

	BlocklistRules = promauto.With(registerer).NewGauge(
		prometheus.GaugeOpts{
			Name: "chatguard_blocklist_rules",
			Help: "Number of rules currently persisted in the blocklist",
		},
	)
)

func Initialize() {
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}
