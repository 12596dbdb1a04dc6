package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// METRICS - Generation counters exposed at /metrics
// =============================================================================

var (
	paymentsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tariff_payments_generated_total",
		Help: "Total number of payment records created by generation runs.",
	})

	generationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tariff_generation_errors_total",
		Help: "Total number of per-assignment errors reported by generation runs.",
	})
)
