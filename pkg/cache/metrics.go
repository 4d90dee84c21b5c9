package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cacheHits tracks cache hits by cache name.
	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sunwatch_cache_hits_total",
			Help: "Total cache hits by cache name",
		},
		[]string{"cache"},
	)

	// cacheMisses tracks cache misses by cache name.
	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sunwatch_cache_misses_total",
			Help: "Total cache misses by cache name",
		},
		[]string{"cache"},
	)

	// cacheEntries tracks the live entry count by cache name.
	cacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sunwatch_cache_entries",
			Help: "Current number of live cache entries by cache name",
		},
		[]string{"cache"},
	)
)
