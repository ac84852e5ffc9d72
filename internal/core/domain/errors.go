package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrPollNotActive is returned when a vote is attempted outside the
	// poll's [start, end) window.
	ErrPollNotActive = errors.New("poll is not currently active")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// InvalidArgumentError reports a violated poll construction invariant.
// Validation fails fast: the reason names the first violated rule only.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return e.Reason
}

func NewInvalidArgumentError(format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{Reason: fmt.Sprintf(format, args...)}
}

// SaveFailedError wraps a persistence failure that occurred after
// validation passed. It is surfaced to the caller, never retried.
type SaveFailedError struct {
	Op    string
	Cause error
}

func (e *SaveFailedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *SaveFailedError) Unwrap() error {
	return e.Cause
}

func NewSaveFailedError(op string, cause error) *SaveFailedError {
	return &SaveFailedError{Op: op, Cause: cause}
}
