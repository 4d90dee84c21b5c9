package weather

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sunwatch_weather_fetches_total",
		Help: "Upstream weather API fetches by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sunwatch_weather_fetch_duration_seconds",
		Help:    "Upstream weather API fetch duration by endpoint",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	snapshotAge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sunwatch_weather_snapshot_age_seconds",
		Help: "Age of the served weather snapshot at last read",
	})
)
