package circuitbreaker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// stateGauge reports 0 (closed), 1 (half-open) or 2 (open) per breaker.
var stateGauge = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "npd_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
	},
	[]string{"circuit"},
)

// tripsTotal counts transitions into the open state per breaker.
var tripsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "npd_circuit_breaker_trips_total",
		Help: "Total number of times a circuit breaker opened",
	},
	[]string{"circuit"},
)
