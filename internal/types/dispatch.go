package types

import "time"

// DispatchStatus is the lifecycle state of a dispatch session
type DispatchStatus string

const (
	// DispatchStatusPending is set before the first attempt is made
	DispatchStatusPending DispatchStatus = "pending"
	// DispatchStatusCompleted is set when an attempt returned a success response
	DispatchStatusCompleted DispatchStatus = "completed"
	// DispatchStatusFailed is set when all attempts were exhausted or aborted
	DispatchStatusFailed DispatchStatus = "failed"
)

func (s DispatchStatus) String() string {
	return string(s)
}

// IsTerminal returns true once a dispatch can no longer change state
func (s DispatchStatus) IsTerminal() bool {
	return s == DispatchStatusCompleted || s == DispatchStatusFailed
}

// DispatchOptions carries optional per-call overrides for a dispatch.
// Zero values fall back to the agent definition and then to the gateway
// dispatch config.
type DispatchOptions struct {
	// Timeout overrides the per attempt HTTP timeout
	Timeout time.Duration `json:"timeout,omitempty"`
	// MaxAttempts overrides the total attempt budget including the first call
	MaxAttempts int `json:"max_attempts,omitempty"`
	// Headers are forwarded on every attempt
	Headers map[string]string `json:"headers,omitempty"`
}
