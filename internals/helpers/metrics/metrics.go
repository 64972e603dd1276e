// file: internals/helpers/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APICalls counts calls to the external school API by endpoint and outcome.
	APICalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schooler",
		Subsystem: "api",
		Name:      "calls_total",
		Help:      "Calls made to the school API.",
	}, []string{"endpoint", "outcome"})

	// CacheLookups counts data-access cache hits and misses.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schooler",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "In-memory cache lookups.",
	}, []string{"cache", "result"})

	// Exports counts image exports by kind (schedule, calendar) and outcome.
	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schooler",
		Subsystem: "export",
		Name:      "total",
		Help:      "Image exports by outcome.",
	}, []string{"kind", "outcome"})

	// StaleResponses counts responses dropped because a newer request superseded them.
	StaleResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schooler",
		Subsystem: "api",
		Name:      "stale_responses_total",
		Help:      "Responses discarded by request tokens.",
	}, []string{"key"})
)
