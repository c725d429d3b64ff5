package llm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	attemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partygen",
			Name:      "llm_attempts_total",
			Help:      "Chat-completion attempts, including retries.",
		},
		[]string{"provider"},
	)

	retriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partygen",
			Name:      "llm_retries_total",
			Help:      "Attempts that failed with a recoverable error and were retried.",
		},
		[]string{"provider"},
	)

	exhaustedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partygen",
			Name:      "llm_exhausted_total",
			Help:      "Invocations that gave up after the retry budget was spent.",
		},
		[]string{"provider"},
	)
)
