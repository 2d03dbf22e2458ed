package batch

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/arith/internal/arith"
	"github.com/shinji-kodama/arith/internal/model"
)

// testdataPath returns the absolute path to a batch fixture file.
func testdataPath(t *testing.T, name string) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed to return file info")

	return filepath.Join(filepath.Dir(filename), "..", "..", "tests", "testdata", "batch", name)
}

// TestLoad_Mixed verifies JSONC parsing (comments, trailing commas) and
// that numeric operands may be numbers or strings.
func TestLoad_Mixed(t *testing.T) {
	f, err := Load(testdataPath(t, "mixed.jsonc"))
	require.NoError(t, err)

	assert.Equal(t, "mixed", f.Name)
	require.Len(t, f.Calculations, 6)
	assert.Equal(t, "add", f.Calculations[0].Op)
	assert.Equal(t, json.Number("2"), f.Calculations[0].A)
	assert.Equal(t, "3", f.Calculations[3].A)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(testdataPath(t, "does-not-exist.jsonc"))
	assert.Equal(t, model.ExitInvalidInput, model.ExitCodeFor(err))

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Contains(t, cliErr.Message, "failed to read batch file")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "calculations: []"},
		{"missing calculations", `{"name": "x"}`},
		{"calculations not an array", `{"calculations": {"op": "add"}}`},
		{"trailing data", `{"calculations": []} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

// TestEvaluate_Mixed verifies that failing entries are recorded without
// stopping the rest of the batch.
func TestEvaluate_Mixed(t *testing.T) {
	f, err := Load(testdataPath(t, "mixed.jsonc"))
	require.NoError(t, err)

	report := Evaluate(f)
	assert.Equal(t, "mixed", report.Name)
	assert.Equal(t, 4, report.Succeeded)
	assert.Equal(t, 2, report.Failed)
	require.Len(t, report.Calculations, 6)

	assert.Equal(t, 5.0, report.Calculations[0].Result)
	assert.Equal(t, 6.0, report.Calculations[1].Result)

	assert.True(t, report.Calculations[2].Failed())
	assert.Equal(t, arith.OpDivide, report.Calculations[2].Op)
	assert.Contains(t, report.Calculations[2].Error, "zero")

	assert.Equal(t, arith.OpMultiply, report.Calculations[3].Op)
	assert.Equal(t, 21.0, report.Calculations[3].Result)

	assert.True(t, report.Calculations[4].Failed())
	assert.Contains(t, report.Calculations[4].Error, `a: operand "two" is not a number`)

	assert.Equal(t, 4.0, report.Calculations[5].Result)
}

func TestEvaluateEntry(t *testing.T) {
	tests := []struct {
		name      string
		entry     Entry
		want      float64
		errSubstr string
	}{
		{"numbers", Entry{Op: "+", A: 1.5, B: 2.5}, 4, ""},
		{"strings", Entry{Op: "x", A: "4", B: " 2.5 "}, 10, ""},
		{"unknown op", Entry{Op: "pow", A: 2.0, B: 3.0}, 0, "unknown operation"},
		{"missing operand", Entry{Op: "add", A: 1.0}, 0, "b: operand is missing"},
		{"bool operand", Entry{Op: "add", A: true, B: 1.0}, 0, `a: operand "true" is not a number`},
		{"zero divisor", Entry{Op: "div", A: 1.0, B: "0"}, 0, "cannot divide by zero"},
		{"json number", Entry{Op: "add", A: json.Number("1.5"), B: json.Number("-2")}, -0.5, ""},
		{"json number out of range", Entry{Op: "add", A: json.Number("1e400"), B: 1.0}, 0, `a: operand "1e400" is out of range`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := evaluateEntry(tt.entry)
			if tt.errSubstr != "" {
				assert.True(t, calc.Failed())
				assert.Contains(t, calc.Error, tt.errSubstr)
				return
			}
			assert.False(t, calc.Failed(), calc.Error)
			assert.Equal(t, tt.want, calc.Result)
		})
	}
}

// TestEvaluate_OutOfRangeOperand verifies that an out-of-range operand fails
// only its own entry, whether written as a JSON number or as a string.
func TestEvaluate_OutOfRangeOperand(t *testing.T) {
	f, err := Parse([]byte(`{"calculations": [
		{"op": "add", "a": 1e400, "b": 1},
		{"op": "add", "a": "1e400", "b": 1},
		{"op": "add", "a": 1, "b": 2},
	]}`))
	require.NoError(t, err)

	report := Evaluate(f)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 2, report.Failed)
	for _, c := range report.Calculations[:2] {
		assert.Equal(t, `a: operand "1e400" is out of range`, c.Error)
	}
	assert.Equal(t, 3.0, report.Calculations[2].Result)
}

// TestEvaluateEntry_KeepsParsedParts verifies that a failed entry still
// carries the operation and operands that did parse.
func TestEvaluateEntry_KeepsParsedParts(t *testing.T) {
	tests := []struct {
		name     string
		entry    Entry
		equation string
	}{
		{
			"bad operation",
			Entry{Op: "pow", A: json.Number("2"), B: json.Number("8")},
			`2 ? 8: error: unknown operation "pow" (valid: add, subtract, multiply, divide)`,
		},
		{
			"bad left operand",
			Entry{Op: "add", A: "two", B: json.Number("3")},
			`0 + 3: error: a: operand "two" is not a number`,
		},
		{
			"bad right operand",
			Entry{Op: "mul", A: json.Number("7"), B: true},
			`7 * 0: error: b: operand "true" is not a number`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := evaluateEntry(tt.entry)
			require.True(t, calc.Failed())
			assert.Equal(t, tt.equation, calc.String())
		})
	}
}

// --- Encode tests ---

func sampleReport() Report {
	return Evaluate(&File{
		Name: "sample",
		Calculations: []Entry{
			{Op: "divide", A: 20.0, B: 5.0},
			{Op: "divide", A: 1.0, B: 3.0},
			{Op: "divide", A: 10.0, B: 0.0},
		},
	})
}

func TestEncode_Text(t *testing.T) {
	out, err := Encode(sampleReport(), "text", 3)
	require.NoError(t, err)

	want := strings.Join([]string{
		"20 / 5 = 4.000",
		"1 / 3 = 0.333",
		"10 / 0: error: divide: cannot divide by zero",
		"2 succeeded, 1 failed",
		"",
	}, "\n")
	assert.Equal(t, want, string(out))
}

func TestEncode_JSON(t *testing.T) {
	out, err := Encode(sampleReport(), "json", -1)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, sampleReport(), decoded)
	assert.True(t, strings.HasSuffix(string(out), "}\n"))
	assert.NotContains(t, string(out), `"error": ""`)
}

// TestEncode_JSONOverflow verifies that an overflowed result does not cost
// the rest of the report.
func TestEncode_JSONOverflow(t *testing.T) {
	report := Evaluate(&File{Calculations: []Entry{
		{Op: "add", A: 1.0, B: 2.0},
		{Op: "multiply", A: 1e308, B: 10.0},
	}})
	require.Equal(t, 0, report.Failed)

	out, err := Encode(report, "json", -1)
	require.NoError(t, err)

	var decoded struct {
		Calculations []map[string]interface{} `json:"calculations"`
		Succeeded    int                      `json:"succeeded"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Calculations, 2)
	assert.Equal(t, float64(3), decoded.Calculations[0]["result"])
	assert.Equal(t, "+Inf", decoded.Calculations[1]["result"])
	assert.Equal(t, 2, decoded.Succeeded)
}

func TestEncode_YAML(t *testing.T) {
	out, err := Encode(sampleReport(), "yaml", -1)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out), "# Batch report for \"sample\"\n"))
	assert.Contains(t, string(out), "failed: 1")

	var decoded Report
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, sampleReport(), decoded)
}

func TestEncode_UnknownFormat(t *testing.T) {
	_, err := Encode(sampleReport(), "xml", -1)
	assert.ErrorContains(t, err, "unsupported output format")
}
