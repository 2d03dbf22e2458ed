package arith

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperation_Symbol(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpAdd, "+"},
		{OpSubtract, "-"},
		{OpMultiply, "*"},
		{OpDivide, "/"},
		{Operation("modulo"), "?"},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.Symbol())
		})
	}
}

func TestOperation_IsValid(t *testing.T) {
	for _, op := range Operations() {
		assert.True(t, op.IsValid(), op)
	}
	assert.False(t, Operation("").IsValid())
	assert.False(t, Operation("pow").IsValid())
}

// TestParseOperation verifies names, aliases and symbols, including case
// normalization and error cases.
func TestParseOperation(t *testing.T) {
	tests := []struct {
		input    string
		expected Operation
		hasError bool
	}{
		{"add", OpAdd, false},
		{"+", OpAdd, false},
		{"ADD", OpAdd, false},
		{" subtract ", OpSubtract, false},
		{"sub", OpSubtract, false},
		{"-", OpSubtract, false},
		{"mul", OpMultiply, false},
		{"x", OpMultiply, false},
		{"*", OpMultiply, false},
		{"Divide", OpDivide, false},
		{"/", OpDivide, false},
		{"%", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseOperation(tt.input)
			if tt.hasError {
				assert.ErrorIs(t, err, ErrInvalidArgument)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		op      Operation
		a, b    float64
		want    float64
		wantErr error
	}{
		{"add", OpAdd, 2, 3, 5, nil},
		{"subtract", OpSubtract, 10, 4, 6, nil},
		{"multiply", OpMultiply, 3, 7, 21, nil},
		{"divide", OpDivide, 20, 5, 4, nil},
		{"divide by zero", OpDivide, 10, 0, 0, ErrDivisionByZero},
		{"unknown op", Operation("pow"), 2, 3, 0, ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.op, tt.a, tt.b)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOperand(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		hasError bool
	}{
		{"2", 2, false},
		{"-5", -5, false},
		{" 3.25 ", 3.25, false},
		{"1e3", 1000, false},
		{"", 0, true},
		{"   ", 0, true},
		{"two", 0, true},
		{"NaN", 0, true},
		{"+Inf", 0, true},
		{"1e400", 0, true},
		{"-1e400", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOperand(tt.input)
			if tt.hasError {
				assert.ErrorIs(t, err, ErrInvalidArgument)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestParseOperand_Messages(t *testing.T) {
	_, err := ParseOperand("1e400")
	assert.EqualError(t, err, `operand "1e400" is out of range`)

	_, err = ParseOperand("two")
	assert.EqualError(t, err, `operand "two" is not a number`)
}

func TestParseExpression(t *testing.T) {
	op, a, b, err := ParseExpression("20 / 5")
	require.NoError(t, err)
	assert.Equal(t, OpDivide, op)
	assert.Equal(t, 20.0, a)
	assert.Equal(t, 5.0, b)

	op, a, b, err = ParseExpression("  -5   minus -3 ")
	require.NoError(t, err)
	assert.Equal(t, OpSubtract, op)
	assert.Equal(t, -5.0, a)
	assert.Equal(t, -3.0, b)

	for _, bad := range []string{"", "1 +", "1 + 2 + 3", "one + 2", "1 ^ 2", "1 + two"} {
		_, _, _, err := ParseExpression(bad)
		assert.ErrorIs(t, err, ErrInvalidArgument, bad)
	}
}
