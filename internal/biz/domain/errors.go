package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the sender is not in the AdminSet
	ErrUnauthorized = errors.New("unauthorized")

	// ErrLogNotFound is returned when the log sink does not exist
	ErrLogNotFound = errors.New("log file not found")

	// ErrLogEmpty is returned when the log sink exists but has no lines
	ErrLogEmpty = errors.New("log file is empty")
)

// ValidationError is a user-visible input error. It is never retried or
// broadcast to admins.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// CollaboratorError reports that the storage or monitor collaborator
// failed or timed out
type CollaboratorError struct {
	Collaborator string // "storage" or "monitor"
	Op           string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Collaborator, e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// DeliveryError reports a failed send to a single chat
type DeliveryError struct {
	ChatID int64
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to %d: %v", e.ChatID, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// PanicError wraps a recovered handler panic together with its stack
type PanicError struct {
	Value interface{}
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
