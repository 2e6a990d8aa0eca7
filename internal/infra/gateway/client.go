package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/vietddude/gateway/internal/core/config"
	"github.com/vietddude/gateway/internal/core/domain"
	"github.com/vietddude/gateway/internal/metrics"
)

// Client executes proxy API calls against the fixed gateway list with bounded
// per-gateway retries and ordered failover. One logical call makes at most
// MaxAttempts * (MaxRetriesPerGateway + 1) HTTP attempts.
//
// The priority order is derived from the config once and never reordered.
// Health records are lock-protected, so a single Client may be shared by
// concurrent callers. The client imposes no overall deadline of its own;
// callers needing a hard upper bound wrap the context.
type Client struct {
	cfg      config.GatewayConfig
	order    []string
	executor *Executor
	health   *HealthTracker
	log      *slog.Logger

	// sleep is swapped out in tests so delay assertions do not wall-clock.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient builds a client from an immutable gateway config.
func NewClient(cfg config.GatewayConfig) *Client {
	order := cfg.PriorityOrder()
	return &Client{
		cfg:      cfg,
		order:    order,
		executor: NewExecutor(RequestTimeout),
		health:   NewHealthTracker(order),
		log:      slog.Default().With("component", "gateway"),
		sleep:    sleepCtx,
	}
}

// FetchWithFailover runs one logical call: each gateway in priority order gets
// an initial attempt plus up to MaxRetriesPerGateway retries, with the retry
// and failover delay ladders between attempts. Only success or total
// exhaustion crosses this boundary; every intermediate failure is absorbed
// and recorded in the health tracker.
func (c *Client) FetchWithFailover(ctx context.Context, req domain.Request) (*domain.Response, error) {
	totalAttempts := 0
	lastError := ""

	for gatewayIndex, url := range c.order {
		for attempt := 0; attempt <= c.cfg.MaxRetriesPerGateway; attempt++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			start := time.Now()
			outcome := c.executor.Do(ctx, url, req)
			elapsed := time.Since(start)
			totalAttempts++

			c.health.RecordAttempt(gatewayIndex, outcome, elapsed)
			metrics.AttemptsTotal.WithLabelValues(url, outcome.Kind.String()).Inc()
			metrics.AttemptLatency.WithLabelValues(url).Observe(elapsed.Seconds())

			if outcome.Kind == OutcomeSuccess {
				c.log.Debug("gateway call succeeded",
					"method", req.Method,
					"gateway", url,
					"attempt", attempt,
					"elapsed", elapsed)
				metrics.CallsTotal.WithLabelValues("success").Inc()
				return outcome.Response, nil
			}

			lastError = outcome.ErrorMessage()

			if outcome.Kind == OutcomeRateLimited {
				// Rate limits are never retried on the same gateway.
				c.log.Warn("gateway rate limited, failing over",
					"gateway", url,
					"retry_after_seconds", outcome.RetryAfterSeconds)
				break
			}

			if attempt < c.cfg.MaxRetriesPerGateway {
				delay := RetryDelay(attempt)
				c.logFailure(outcome, "gateway attempt failed, retrying",
					"gateway", url,
					"attempt", attempt,
					"outcome", outcome.Kind.String(),
					"error", lastError,
					"delay", delay)
				metrics.RetriesTotal.WithLabelValues(url).Inc()
				if err := c.sleep(ctx, delay); err != nil {
					return nil, err
				}
			}
		}

		if gatewayIndex < len(c.order)-1 {
			delay := FailoverDelay(gatewayIndex)
			c.log.Warn("gateway exhausted, advancing to next",
				"gateway", url,
				"next", c.order[gatewayIndex+1],
				"delay", delay)
			metrics.FailoversTotal.WithLabelValues(url).Inc()
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}
	}

	c.log.Error("all gateways failed",
		"method", req.Method,
		"attempts", totalAttempts,
		"last_error", lastError)
	metrics.CallsTotal.WithLabelValues("exhausted").Inc()
	return nil, domain.NewAllGatewaysFailed(totalAttempts, lastError)
}

// HealthStats returns per-gateway health records in priority order.
func (c *Client) HealthStats() []GatewayHealth {
	return c.health.Snapshot()
}

// GatewayConfig returns the immutable config for diagnostics export.
func (c *Client) GatewayConfig() config.GatewayConfig {
	return c.cfg
}

// logFailure logs an absorbed failure at the severity its error kind declares.
func (c *Client) logFailure(outcome Outcome, msg string, args ...any) {
	if apiErr, ok := domain.AsAPIError(outcome.Err()); ok && apiErr.Severity == domain.SeverityError {
		c.log.Error(msg, args...)
		return
	}
	c.log.Warn(msg, args...)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
