package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AttemptsTotal tracks HTTP attempts per gateway and outcome
	AttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_attempts_total",
			Help: "Total number of HTTP attempts against gateways",
		},
		[]string{"gateway", "outcome"},
	)

	// RetriesTotal tracks same-gateway retries
	RetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_retries_total",
			Help: "Total number of same-gateway retries",
		},
		[]string{"gateway"},
	)

	// FailoversTotal tracks advances past an exhausted gateway
	FailoversTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_failovers_total",
			Help: "Total number of failovers to the next gateway",
		},
		[]string{"gateway"},
	)

	// AttemptLatency tracks per-attempt latency
	AttemptLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_attempt_latency_seconds",
			Help:    "Latency of individual gateway attempts in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"gateway"},
	)

	// CallsTotal tracks logical calls by final result
	CallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_calls_total",
			Help: "Total number of logical calls by final result",
		},
		[]string{"result"},
	)
)
