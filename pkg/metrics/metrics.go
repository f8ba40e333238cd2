package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AlertsRaisedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vital_alerts_raised_total",
			Help: "Total number of alerts persisted by the evaluation pipeline",
		},
		[]string{"parameter", "severity"},
	)

	AlertsSuppressedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vital_alerts_suppressed_total",
			Help: "Total number of alerts suppressed by the deduplication window",
		},
		[]string{"parameter", "severity"},
	)

	EvaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vital_evaluation_duration_seconds",
			Help:    "Time taken to evaluate one measurement against all thresholds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vital_notifications_total",
			Help: "Total number of notification rows written, by channel and terminal status",
		},
		[]string{"channel", "status"},
	)

	DispatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vital_dispatch_duration_seconds",
			Help:    "Time taken to dispatch notifications for one alert",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	DispatchQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vital_dispatch_queue_depth",
			Help: "Current number of alerts waiting in the dispatch queue",
		},
	)

	PanicsRecovered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vital_panics_recovered_total",
			Help: "Total number of panics recovered",
		},
		[]string{"component"},
	)
)
