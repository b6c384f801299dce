// Package errors provides sentinel errors and custom error types for the
// dragsort engine. Use errors.Is() and errors.As() to check for specific
// error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNoContainer indicates a drag was initiated or finished on an
	// element without a managed container
	ErrNoContainer = errors.New("no container found")

	// ErrNotStarted indicates an engine operation before Start was called
	ErrNotStarted = errors.New("engine not started")

	// ErrInvalidOptions indicates the engine was constructed with an
	// unusable option value
	ErrInvalidOptions = errors.New("invalid options")
)

// DetachedElementError reports a drag operation on an element that is not a
// child of the managed container. This signals programmer misuse, not a
// recoverable runtime condition.
type DetachedElementError struct {
	ElementID string
	Op        string
}

func (e *DetachedElementError) Error() string {
	return fmt.Sprintf("%s: element %s has no container", e.Op, e.ElementID)
}

// Is returns true if the target error is ErrNoContainer
func (e *DetachedElementError) Is(target error) bool {
	return target == ErrNoContainer
}

// NewDetachedElementError creates a new DetachedElementError
func NewDetachedElementError(op, elementID string) *DetachedElementError {
	return &DetachedElementError{Op: op, ElementID: elementID}
}

// OptionError reports an option field that failed validation
type OptionError struct {
	Field   string
	Message string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("option %s: %s", e.Field, e.Message)
}

// Is returns true if the target error is ErrInvalidOptions
func (e *OptionError) Is(target error) bool {
	return target == ErrInvalidOptions
}

// NewOptionError creates a new OptionError
func NewOptionError(field, message string) *OptionError {
	return &OptionError{Field: field, Message: message}
}
