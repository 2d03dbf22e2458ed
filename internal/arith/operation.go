package arith

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Operation names one of the four engine operations.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

// String returns the string representation of Operation.
func (o Operation) String() string {
	return string(o)
}

// IsValid checks whether the Operation is one of the four known operations.
func (o Operation) IsValid() bool {
	switch o {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	default:
		return false
	}
}

// Symbol returns the infix symbol of the operation, or "?" if unknown.
func (o Operation) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return "?"
	}
}

// Operations returns every operation in display order.
func Operations() []Operation {
	return []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}
}

// operationAliases maps accepted spellings to operations. Names are matched
// after lower-casing.
var operationAliases = map[string]Operation{
	"add":      OpAdd,
	"+":        OpAdd,
	"plus":     OpAdd,
	"subtract": OpSubtract,
	"sub":      OpSubtract,
	"-":        OpSubtract,
	"minus":    OpSubtract,
	"multiply": OpMultiply,
	"mul":      OpMultiply,
	"*":        OpMultiply,
	"x":        OpMultiply,
	"times":    OpMultiply,
	"divide":   OpDivide,
	"div":      OpDivide,
	"/":        OpDivide,
}

// ParseOperation converts a name, alias or symbol to an Operation.
// Matching is case-insensitive.
func ParseOperation(s string) (Operation, error) {
	op, ok := operationAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", invalidArgument("unknown operation %q (valid: add, subtract, multiply, divide)", s)
	}
	return op, nil
}

// Apply evaluates op on float64 operands. Add, Subtract and Multiply never
// fail; Divide fails on a zero divisor.
func Apply(op Operation, a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return Add(a, b), nil
	case OpSubtract:
		return Subtract(a, b), nil
	case OpMultiply:
		return Multiply(a, b), nil
	case OpDivide:
		return Divide(a, b)
	default:
		return 0, invalidArgument("unknown operation %q", string(op))
	}
}

// ParseOperand converts text to a finite float64. Integers, decimals and
// exponent notation are accepted. NaN and infinities are rejected because
// they are not numbers a caller can meaningfully type.
func ParseOperand(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, invalidArgument("operand must not be empty")
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, invalidArgument("operand %q is out of range", s)
	}
	if err != nil {
		return 0, invalidArgument("operand %q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalidArgument("operand %q is not a finite number", s)
	}
	return v, nil
}

// ParseExpression splits a whitespace-separated infix expression such as
// "20 / 5" or "2 add 3" into its operation and operands.
func ParseExpression(expr string) (Operation, float64, float64, error) {
	fields := strings.Fields(expr)
	if len(fields) != 3 {
		return "", 0, 0, invalidArgument("expression %q must have the form \"<a> <op> <b>\"", expr)
	}
	a, err := ParseOperand(fields[0])
	if err != nil {
		return "", 0, 0, err
	}
	op, err := ParseOperation(fields[1])
	if err != nil {
		return "", 0, 0, err
	}
	b, err := ParseOperand(fields[2])
	if err != nil {
		return "", 0, 0, err
	}
	return op, a, b, nil
}
