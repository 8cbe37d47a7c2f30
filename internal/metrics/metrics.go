// Package metrics exposes prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

var (
	// ScansTotal counts receipt scan attempts by outcome
	// ("ok" or "error").
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "receiptsplit",
		Name:      "scans_total",
		Help:      "Receipt scan attempts by outcome.",
	}, []string{"outcome"})

	// ExtractionSeconds observes how long the vision model takes to
	// extract a receipt.
	ExtractionSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "receiptsplit",
		Name:      "extraction_duration_seconds",
		Help:      "Duration of receipt extraction calls.",
		Buckets:   prometheus.DefBuckets,
	})

	// SettlementsTotal counts settlement computations served.
	SettlementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "receiptsplit",
		Name:      "settlements_total",
		Help:      "Settlement computations served.",
	})
)

// Handler returns a gin handler serving the prometheus metrics
// endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
