package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/shinji-kodama/arith/internal/arith"
)

// Calculation is the outcome of evaluating one operation on two operands.
// Exactly one of Result or Error is meaningful: when Error is non-empty the
// operation failed and Result is zero.
type Calculation struct {
	// Op is the evaluated operation.
	Op arith.Operation `json:"op" yaml:"op"`

	// A is the left operand.
	A float64 `json:"a" yaml:"a"`

	// B is the right operand.
	B float64 `json:"b" yaml:"b"`

	// Result is the value produced by the operation.
	Result float64 `json:"result" yaml:"result"`

	// Error is the failure message, if the operation failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Evaluate applies op to a and b and records the outcome. The returned error
// is the engine error, also reflected in the Error field.
func Evaluate(op arith.Operation, a, b float64) (Calculation, error) {
	c := Calculation{Op: op, A: a, B: b}
	result, err := arith.Apply(op, a, b)
	if err != nil {
		c.Error = err.Error()
		return c, err
	}
	c.Result = result
	return c, nil
}

// MarshalJSON encodes the calculation with its numbers as JSON numbers.
// Values JSON cannot represent (an overflow to ±Inf, or NaN) are written as
// the strings "+Inf", "-Inf" and "NaN".
func (c Calculation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Op     arith.Operation `json:"op"`
		A      jsonFloat       `json:"a"`
		B      jsonFloat       `json:"b"`
		Result jsonFloat       `json:"result"`
		Error  string          `json:"error,omitempty"`
	}{c.Op, jsonFloat(c.A), jsonFloat(c.B), jsonFloat(c.Result), c.Error})
}

// jsonFloat is a float64 that encodes non-finite values as strings.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(v)
}

// Failed reports whether the calculation recorded an error.
func (c Calculation) Failed() bool {
	return c.Error != ""
}

// Equation renders the calculation as an infix equation, e.g. "20 / 5 = 4".
// precision is the number of decimal places; a negative precision selects
// the shortest representation that round-trips.
func (c Calculation) Equation(precision int) string {
	lhs := fmt.Sprintf("%s %s %s", FormatNumber(c.A, -1), c.Op.Symbol(), FormatNumber(c.B, -1))
	if c.Failed() {
		return fmt.Sprintf("%s: error: %s", lhs, c.Error)
	}
	return fmt.Sprintf("%s = %s", lhs, FormatNumber(c.Result, precision))
}

// String satisfies fmt.Stringer using the shortest number format.
func (c Calculation) String() string {
	return c.Equation(-1)
}

// FormatNumber formats v with the given number of decimal places, or in the
// shortest round-tripping form when precision is negative.
func FormatNumber(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// ExitCode defines standard CLI exit codes. These codes allow scripts and CI
// systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInvalidArgument indicates an operand or operation could not be
	// parsed.
	ExitInvalidArgument ExitCode = 2

	// ExitDivisionByZero indicates a division with a zero divisor.
	ExitDivisionByZero ExitCode = 3

	// ExitConfigNotFound indicates an explicitly requested config file does
	// not exist.
	ExitConfigNotFound ExitCode = 4

	// ExitCoverageBelowTarget indicates the coverage gate failed.
	ExitCoverageBelowTarget ExitCode = 5

	// ExitInvalidInput indicates an input file (batch file, coverage
	// profile, config) is malformed.
	ExitInvalidInput ExitCode = 6
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ExitCodeFor derives the process exit code for err. A CLIError anywhere in
// the chain wins; engine errors map by kind; nil is success.
func ExitCodeFor(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	switch {
	case errors.Is(err, arith.ErrDivisionByZero):
		return ExitDivisionByZero
	case errors.Is(err, arith.ErrInvalidArgument):
		return ExitInvalidArgument
	default:
		return ExitGeneralError
	}
}
