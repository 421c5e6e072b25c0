package stmt

import (
	"errors"
	"fmt"
)

var (
	// ErrSequence is matched by every SequenceError.
	ErrSequence = errors.New("stmt: illegal call sequence")

	// ErrUnsafeQuery is matched by every UnsafeQueryError.
	ErrUnsafeQuery = errors.New("stmt: unsafe query")

	// ErrBackend is matched by every BackendError.
	ErrBackend = errors.New("stmt: backend failure")

	// ErrInvalidArgument is matched by every ArgumentError.
	ErrInvalidArgument = errors.New("stmt: invalid argument")
)

// SequenceError is returned when a builder method is called in a state that
// does not permit it.
type SequenceError struct {
	Op     string
	State  string
	Reason string
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("stmt: %s not allowed in state %s: %s", e.Op, e.State, e.Reason)
}

func (e *SequenceError) Is(err error) bool {
	return err == ErrSequence
}

// UnsafeQueryError is returned when a finished statement violates the Policy.
// Nothing has been sent to the backend when it is returned.
type UnsafeQueryError struct {
	Reason string
}

func (e *UnsafeQueryError) Error() string {
	return "stmt: unsafe query: " + e.Reason
}

func (e *UnsafeQueryError) Is(err error) bool {
	return err == ErrUnsafeQuery
}

// BackendError carries a failure reported by the Executor.
type BackendError struct {
	Statement string
	Err       error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("stmt: executing %q: %v", e.Statement, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func (e *BackendError) Is(err error) bool {
	return err == ErrBackend
}

// ArgumentError reports a malformed argument such as an empty column list.
type ArgumentError struct {
	Op     string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("stmt: %s: %s", e.Op, e.Reason)
}

func (e *ArgumentError) Is(err error) bool {
	return err == ErrInvalidArgument
}

// IsSequence reports whether err is, or wraps, a SequenceError.
func IsSequence(err error) bool {
	var e *SequenceError
	return errors.As(err, &e)
}

// IsUnsafe reports whether err is, or wraps, an UnsafeQueryError.
func IsUnsafe(err error) bool {
	var e *UnsafeQueryError
	return errors.As(err, &e)
}

// IsBackend reports whether err is, or wraps, a BackendError.
func IsBackend(err error) bool {
	var e *BackendError
	return errors.As(err, &e)
}
