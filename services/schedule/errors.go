package schedule

import (
	"errors"
	"fmt"
)

// ErrStaleWrite is returned when a writer lost the compare-and-swap on the
// schedule version: a newer replacement landed while its input was computed.
var ErrStaleWrite = errors.New("schedule state changed since read")

// ValidationError reports missing or invalid shift input. It carries the
// offending field so the caller can surface it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid shift input: %s: %s", e.Field, e.Message)
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// SyncError wraps a failed synchronizer operation with its phase.
type SyncError struct {
	Phase string // "fetch", "submit", "persist", "subscribe"
	Err   error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }
