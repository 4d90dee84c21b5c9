package view

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// rendersTotal tracks renders by view and outcome.
	rendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sunwatch_renders_total",
		Help: "Total view renders by view name and outcome",
	}, []string{"view", "outcome"})

	// renderDuration tracks render duration by view.
	renderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sunwatch_render_duration_seconds",
		Help:    "View render duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"view"})

	// navigationsTotal tracks navigation operations by direction.
	navigationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sunwatch_navigations_total",
		Help: "Total view navigations by direction",
	}, []string{"direction"})
)
