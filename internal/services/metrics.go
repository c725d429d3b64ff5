package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generateTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partygen",
			Name:      "generate_requests_total",
			Help:      "Pipeline runs by outcome.",
		},
		[]string{"outcome"},
	)

	cacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "partygen",
			Name:      "cache_hits_total",
			Help:      "Generate requests served from the response cache.",
		},
	)

	cacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "partygen",
			Name:      "cache_misses_total",
			Help:      "Generate requests that had to call the upstream model.",
		},
	)

	itemsFilteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "partygen",
			Name:      "items_filtered_total",
			Help:      "Parsed items dropped by mode mismatch or the denylist.",
		},
	)
)
