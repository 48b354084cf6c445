package llm

import (
	"fmt"
	"time"
)

// FailureKind classifies a model backend failure.
type FailureKind int

const (
	// FailureWarmingUp indicates the backend is loading the model and will accept requests shortly.
	FailureWarmingUp FailureKind = iota
	// FailureRateLimited indicates the backend rejected the request due to rate limiting.
	FailureRateLimited
	// FailureTimeout indicates the request exceeded its deadline.
	FailureTimeout
	// FailureTransport indicates a network-level failure before a status was received.
	FailureTransport
	// FailureBadStatus indicates a non-success status that is not a retry signal.
	FailureBadStatus
	// FailureMalformedResponse indicates a successful status with an unusable payload.
	FailureMalformedResponse
)

func (k FailureKind) String() string {
	switch k {
	case FailureWarmingUp:
		return "warming_up"
	case FailureRateLimited:
		return "rate_limited"
	case FailureTimeout:
		return "timeout"
	case FailureTransport:
		return "transport"
	case FailureBadStatus:
		return "bad_status"
	case FailureMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// ModelError describes a failure reported by the model backend.
type ModelError struct {
	Kind       FailureKind
	StatusCode int
	RetryAfter time.Duration
	Message    string
	Err        error
}

func (e *ModelError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("model api error (%s, status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("model api error (%s): %s", e.Kind, e.Message)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient and worth another attempt.
func (e *ModelError) Retryable() bool {
	switch e.Kind {
	case FailureWarmingUp, FailureRateLimited, FailureTimeout, FailureTransport:
		return true
	default:
		return false
	}
}
