package arith

import "fmt"

// ErrorKind classifies engine failures.
type ErrorKind string

const (
	// KindDivisionByZero is reported by Divide when the divisor is zero.
	KindDivisionByZero ErrorKind = "division_by_zero"

	// KindInvalidArgument is reported when text cannot be turned into an
	// operand or an operation.
	KindInvalidArgument ErrorKind = "invalid_argument"
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	return string(k)
}

// Error is the typed error returned by the engine.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Op is the operation that failed, if any.
	Op Operation

	// Message is the human-readable description.
	Message string
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, ErrDivisionByZero) holds for every division-by-zero error
// regardless of its operation or message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

var (
	// ErrDivisionByZero matches every error of kind KindDivisionByZero.
	ErrDivisionByZero = &Error{Kind: KindDivisionByZero, Message: "cannot divide by zero"}

	// ErrInvalidArgument matches every error of kind KindInvalidArgument.
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument, Message: "invalid argument"}
)

func invalidArgument(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}
