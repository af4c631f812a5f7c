package huddle

import (
	"errors"
	"fmt"
)

// Gateway conditions the lifecycle treats as success rather than failure.
// Gateway implementations wrap their platform errors around these.
var (
	ErrAlreadyInChannel = errors.New("user is already in channel")
	ErrChannelGone      = errors.New("channel is archived or does not exist")
)

// ValidationError rejects input before any side effect happens
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError means the request store was unavailable. It is fatal to
// the operation that triggered it.
type PersistenceError struct {
	RequestID string
	Op        string
	Err       error
}

func (e *PersistenceError) Error() string {
	if e.RequestID == "" {
		return fmt.Sprintf("persistence failure in %s: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("persistence failure in %s for request %s: %s", e.Op, e.RequestID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// GatewayError is a failed messaging platform call. It is logged and never
// returned past the orchestrator.
type GatewayError struct {
	RequestID string
	Op        string
	Err       error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s failed for request %s: %s", e.Op, e.RequestID, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// SchedulingError means an expiry job could not be armed. The request then
// stays open until the stale sweep or an operator closes it.
type SchedulingError struct {
	RequestID string
	JobID     string
	Err       error
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("could not schedule %s for request %s: %s", e.JobID, e.RequestID, e.Err)
}

func (e *SchedulingError) Unwrap() error {
	return e.Err
}
