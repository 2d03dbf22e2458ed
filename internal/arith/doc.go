// Package arith is the arithmetic engine behind the arith CLI.
//
// It exposes four pure operations (Add, Subtract, Multiply, Divide) over any
// built-in numeric type. Add, Subtract and Multiply keep the caller's numeric
// type; Divide always yields a float64 quotient, so Divide(20, 5) is 4.0 even
// for integer operands.
//
// The only failure in the engine is division by zero, reported as an *Error
// of kind KindDivisionByZero. Callers match it with errors.Is against
// ErrDivisionByZero. The engine never logs and holds no state, so every
// function is safe to call from multiple goroutines.
//
// The text helpers in operation.go (ParseOperation, ParseOperand,
// ParseExpression) form the boundary where untyped input enters the engine;
// they reject non-numeric text with KindInvalidArgument.
package arith
