package objtrack

import (
	"errors"
	"fmt"
)

// Sentinel errors for common registry failure conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrNilObject indicates a nil object was passed to a registry operation.
	ErrNilObject = errors.New("nil object")

	// ErrZeroID indicates identifier zero was passed where a real identifier
	// is required. Zero is reserved to mean "not registered".
	ErrZeroID = errors.New("identifier zero is reserved")

	// ErrExhausted indicates the registry's monotonic counter has no
	// identifiers left to allocate. Existing bindings remain valid.
	ErrExhausted = errors.New("identifier space exhausted")

	// ErrConflict indicates an identifier is already bound to a different
	// live object. The existing binding is left untouched.
	ErrConflict = errors.New("identifier already bound")
)

// Error kinds categorize errors by their type.
const (
	// KindInvalidArgument represents errors caused by invalid input,
	// such as a nil object or the reserved zero identifier.
	KindInvalidArgument = "invalid_argument"

	// KindExhausted represents errors caused by running out of identifiers.
	KindExhausted = "exhausted"

	// KindConflict represents errors caused by conflicting identifier bindings.
	KindConflict = "conflict"

	// KindOutOfScope represents errors caused by requesting the current
	// registry outside of any active scope.
	KindOutOfScope = "out_of_scope"
)

// Error is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category
// of error.
//
// Error implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
type Error struct {
	// Op is the operation that failed (e.g., "Registry.ID", "Registry.SetID").
	Op string

	// Kind categorizes the error (e.g., KindConflict, KindInvalidArgument).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include identifiers, registry names, or other debugging
	// information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("objtrack: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("objtrack: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("objtrack: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on
// the underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	// Check if target is an Error with matching Kind
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	// Delegate to underlying error
	return errors.Is(e.Err, target)
}

// WithContext returns a new Error with the provided context added.
// This is useful for adding debugging information to errors.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewInvalidArgumentError creates a new Error with KindInvalidArgument.
func NewInvalidArgumentError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindInvalidArgument,
		Err:  err,
	}
}

// NewExhaustedError creates a new Error with KindExhausted.
func NewExhaustedError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindExhausted,
		Err:  err,
	}
}

// NewConflictError creates a new Error with KindConflict.
func NewConflictError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindConflict,
		Err:  err,
	}
}

// NewOutOfScopeError creates a new Error with KindOutOfScope.
func NewOutOfScopeError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindOutOfScope,
		Err:  err,
	}
}
