package gateway

import (
	"math/rand/v2"
	"time"
)

// Delay schedule for the failover client. Every timing constant lives here so
// the orchestrator and its tests read the same values.
const (
	// RequestTimeout is the per-attempt HTTP budget.
	RequestTimeout = 10 * time.Second

	// defaultRetryAfterSeconds is used when a 429 carries no usable
	// Retry-After hint.
	defaultRetryAfterSeconds = 60

	// Same-gateway retry ladder, indexed by zero-based retry number.
	retryDelayFirst  = 200 * time.Millisecond
	retryDelaySecond = 500 * time.Millisecond
	retryDelayMax    = 1000 * time.Millisecond
	retryJitterBound = 50 * time.Millisecond

	// Failover ladder, indexed by the zero-based position of the gateway
	// being abandoned.
	failoverDelayFirst  = 300 * time.Millisecond
	failoverDelaySecond = 1000 * time.Millisecond
	failoverDelayMax    = 2000 * time.Millisecond
	failoverJitterBound = 100 * time.Millisecond
)

// RetryDelay returns the pause before retrying the same gateway.
// retryIndex is zero-based: 0 is the first retry after the initial attempt.
func RetryDelay(retryIndex int) time.Duration {
	var base time.Duration
	switch {
	case retryIndex <= 0:
		base = retryDelayFirst
	case retryIndex == 1:
		base = retryDelaySecond
	default:
		base = retryDelayMax
	}
	return base + jitter(retryJitterBound)
}

// FailoverDelay returns the pause before advancing past an exhausted gateway.
// gatewayIndex is the zero-based position of the gateway being abandoned.
func FailoverDelay(gatewayIndex int) time.Duration {
	var base time.Duration
	switch {
	case gatewayIndex <= 0:
		base = failoverDelayFirst
	case gatewayIndex == 1:
		base = failoverDelaySecond
	default:
		base = failoverDelayMax
	}
	return base + jitter(failoverJitterBound)
}

// jitter returns a uniformly random duration in [0, bound) to avoid
// synchronized retry storms across independent callers.
func jitter(bound time.Duration) time.Duration {
	return time.Duration(rand.Int64N(int64(bound)))
}
