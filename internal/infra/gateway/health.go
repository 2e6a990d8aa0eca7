package gateway

import (
	"sync"
	"time"
)

// Status is the health state of a single gateway.
type Status string

const (
	StatusUnknown   Status = "unknown"
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// GatewayHealth is one per-gateway diagnostic record, index-aligned with the
// priority order. Used only for diagnostics, never for routing decisions.
type GatewayHealth struct {
	URL            string     `json:"url"`
	Status         Status     `json:"status"`
	LastSuccess    *time.Time `json:"last_success,omitempty"`
	LastError      string     `json:"last_error,omitempty"`
	ResponseTimeMs *int64     `json:"response_time_ms,omitempty"`
}

// HealthTracker maintains one mutable record per gateway. The lock covers the
// record array only, so a client can be shared by concurrent callers without
// serializing unrelated work.
type HealthTracker struct {
	mu      sync.Mutex
	records []GatewayHealth
	now     func() time.Time
}

// NewHealthTracker creates records for the given gateways in priority order,
// all starting Unknown with empty optional fields.
func NewHealthTracker(urls []string) *HealthTracker {
	records := make([]GatewayHealth, len(urls))
	for i, u := range urls {
		records[i] = GatewayHealth{URL: u, Status: StatusUnknown}
	}
	return &HealthTracker{records: records, now: time.Now}
}

// RecordAttempt updates the record for one gateway after a single HTTP
// attempt. The elapsed time is recorded for failures too.
func (h *HealthTracker) RecordAttempt(gatewayIndex int, outcome Outcome, elapsed time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if gatewayIndex < 0 || gatewayIndex >= len(h.records) {
		return
	}

	rec := &h.records[gatewayIndex]
	ms := elapsed.Milliseconds()
	rec.ResponseTimeMs = &ms

	if outcome.Kind == OutcomeSuccess {
		rec.Status = StatusHealthy
		now := h.now()
		rec.LastSuccess = &now
		return
	}

	rec.Status = StatusUnhealthy
	rec.LastError = outcome.ErrorMessage()
}

// Snapshot returns a copy of all records in priority order.
func (h *HealthTracker) Snapshot() []GatewayHealth {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]GatewayHealth, len(h.records))
	copy(out, h.records)
	return out
}
