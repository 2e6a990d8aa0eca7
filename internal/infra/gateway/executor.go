package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/vietddude/gateway/internal/core/domain"
)

// OutcomeKind classifies the result of a single HTTP attempt.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeRateLimited
	OutcomeTimeout
	OutcomeTransportError
	OutcomeServerError
)

// String returns the metrics/log label for the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeTransportError:
		return "transport_error"
	case OutcomeServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// Outcome is the classified result of exactly one request against one gateway.
type Outcome struct {
	Kind OutcomeKind

	// Response is set when Kind is OutcomeSuccess.
	Response *domain.Response

	// RetryAfterSeconds is set when Kind is OutcomeRateLimited.
	RetryAfterSeconds int

	// Status is the HTTP status for server errors.
	Status int

	// Message is the failure detail for non-success outcomes.
	Message string
}

// Retryable reports whether the same gateway may be tried again.
// Rate limits always fail over instead.
func (o Outcome) Retryable() bool {
	switch o.Kind {
	case OutcomeTimeout, OutcomeTransportError, OutcomeServerError:
		return true
	default:
		return false
	}
}

// ErrorMessage derives the health-record message for a failed outcome.
func (o Outcome) ErrorMessage() string {
	switch o.Kind {
	case OutcomeRateLimited:
		return fmt.Sprintf("rate limited (429), retry after %ds", o.RetryAfterSeconds)
	case OutcomeTimeout:
		if o.Message != "" {
			return o.Message
		}
		return "request timed out"
	case OutcomeServerError:
		return fmt.Sprintf("http %d: %s", o.Status, o.Message)
	default:
		return o.Message
	}
}

// Err converts a failed outcome into the caller-facing error taxonomy.
func (o Outcome) Err() error {
	switch o.Kind {
	case OutcomeSuccess:
		return nil
	case OutcomeRateLimited:
		return domain.NewRateLimitExceeded(o.RetryAfterSeconds)
	case OutcomeTimeout:
		return domain.NewAPITimeout(int(RequestTimeout / time.Second))
	case OutcomeServerError:
		return domain.NewInvalidAPIResponse(o.ErrorMessage())
	default:
		return domain.NewGatewayError(o.Message)
	}
}

// Executor performs exactly one HTTP POST per Do call and classifies the
// result. Retrying is the orchestrator's job, never the executor's.
type Executor struct {
	httpClient *http.Client
}

// NewExecutor creates an executor with the given per-request timeout.
func NewExecutor(timeout time.Duration) *Executor {
	return &Executor{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Do posts the request to one gateway URL and classifies the outcome.
func (e *Executor) Do(ctx context.Context, endpoint string, req domain.Request) Outcome {
	body, err := json.Marshal(req)
	if err != nil {
		return Outcome{Kind: OutcomeTransportError, Message: fmt.Sprintf("marshal request: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Outcome{Kind: OutcomeTransportError, Message: fmt.Sprintf("create request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return Outcome{Kind: OutcomeTimeout, Message: fmt.Sprintf("gateway request timed out: %v", err)}
		}
		return Outcome{Kind: OutcomeTransportError, Message: fmt.Sprintf("gateway request: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return Outcome{
			Kind:              OutcomeRateLimited,
			RetryAfterSeconds: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	if resp.StatusCode == http.StatusRequestTimeout {
		return Outcome{Kind: OutcomeTimeout, Message: "gateway returned 408"}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{Kind: OutcomeTransportError, Message: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Outcome{
			Kind:    OutcomeServerError,
			Status:  resp.StatusCode,
			Message: truncate(string(raw), 200),
		}
	}

	var apiResp domain.Response
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return Outcome{
			Kind:    OutcomeServerError,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("parse response: %v", err),
		}
	}

	if !apiResp.Success {
		msg := apiResp.Error
		if msg == "" {
			msg = "gateway reported failure"
		}
		return Outcome{Kind: OutcomeServerError, Status: resp.StatusCode, Message: msg}
	}

	return Outcome{Kind: OutcomeSuccess, Response: &apiResp}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func parseRetryAfter(header string) int {
	if header == "" {
		return defaultRetryAfterSeconds
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return defaultRetryAfterSeconds
	}
	return secs
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
