// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueriesClassified counts classified queries by resolved intent
	// and locale, including "unknown".
	QueriesClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_queries_classified_total",
			Help: "Total queries classified, by intent and locale",
		},
		[]string{"intent", "locale"},
	)

	// FuzzyFallbacks counts queries that went through the fuzzy
	// matcher after the direct classifier came up empty.
	FuzzyFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_fuzzy_fallbacks_total",
			Help: "Fuzzy matcher invocations, by locale and acceptance",
		},
		[]string{"locale", "accepted"},
	)

	// SimulatorRuns counts deterministic simulator executions.
	SimulatorRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_simulator_runs_total",
			Help: "Simulator executions, by kind",
		},
		[]string{"kind"},
	)

	// AnswerDuration observes end-to-end answer latency per intent.
	AnswerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_answer_duration_seconds",
			Help:    "Time to produce an answer, by intent",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"intent"},
	)

	// CacheHits tracks answer cache lookups.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_cache_lookups_total",
			Help: "Answer cache lookups, by result (hit/miss/error)",
		},
		[]string{"result"},
	)
)
