// Package errors defines the error taxonomy shared by the obsflow runtime.
//
// Construction and enqueue failures surface as sentinel errors so callers
// can match them with errors.Is. Delivery failures carry structured detail
// (operation, HTTP status, response body) in typed errors matched with
// errors.As.
package errors

import (
	sterrors "errors"
	"fmt"
)

var (
	// ErrShutdown is the control signal returned by the shutdown command.
	// The worker loop treats it as a clean termination request, never as a
	// delivery failure.
	ErrShutdown = sterrors.New("obsflow: shutdown requested")

	// ErrQueueFull is returned by enqueue when the dispatch queue has no
	// free slot. The caller is never blocked and the item is dropped.
	ErrQueueFull = sterrors.New("obsflow: dispatch queue is full")

	// ErrQueueClosed is returned by enqueue after the worker loop has
	// terminated.
	ErrQueueClosed = sterrors.New("obsflow: dispatch queue is closed")

	ErrConfigRequired = sterrors.New("obsflow: config is required")
	ErrNilClient      = sterrors.New("obsflow: client is nil")
)

// AuthenticationError reports a failed credential activation, project
// binding, verification, or refresh against the identity provider.
type AuthenticationError struct {
	Reason string
	Err    error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("obsflow: authentication error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("obsflow: authentication error: %s", e.Reason)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// APIError reports a submission the remote endpoint rejected after the
// retry budget was exhausted, or an outbound call that could not be
// executed at all (StatusCode 0).
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("obsflow: %s API call failed: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("obsflow: %s API call failed with status %d: %s", e.Operation, e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error { return e.Err }

// SetupError reports prerequisite tooling that is unavailable and could
// not be installed.
type SetupError struct {
	Reason string
	Err    error
}

func (e *SetupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("obsflow: setup error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("obsflow: setup error: %s", e.Reason)
}

func (e *SetupError) Unwrap() error { return e.Err }
