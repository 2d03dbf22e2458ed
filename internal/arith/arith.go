package arith

// Number is the set of built-in numeric types the engine accepts.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Add returns a + b.
func Add[T Number](a, b T) T {
	return a + b
}

// Subtract returns a - b.
func Subtract[T Number](a, b T) T {
	return a - b
}

// Multiply returns a * b.
func Multiply[T Number](a, b T) T {
	return a * b
}

// Divide returns a / b as a float64, whatever the operand type.
//
// A zero divisor yields an error matching ErrDivisionByZero and a zero
// quotient; Divide never returns Inf or NaN for a zero divisor.
func Divide[T Number](a, b T) (float64, error) {
	if b == 0 {
		return 0, &Error{
			Kind:    KindDivisionByZero,
			Op:      OpDivide,
			Message: "cannot divide by zero",
		}
	}
	return float64(a) / float64(b), nil
}
