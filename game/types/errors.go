package types

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidCommand   = errors.New("invalid command")
	ErrInvalidBounds    = errors.New("invalid grid bounds")
	ErrInvalidConfig    = errors.New("invalid config")
)

// ValidationError rejects malformed input at the command boundary. The
// simulation state is never touched when one is returned.
type ValidationError struct {
	Kind   error
	Detail string
}

func NewValidationError(kind error, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// InvariantViolation reports a broken engine invariant. It means a bug in the
// movement ordering, not a recoverable condition.
type InvariantViolation struct {
	Invariant string
	Detail    string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violated (%s): %s", e.Invariant, e.Detail)
}
