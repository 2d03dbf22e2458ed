package batch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/arith/internal/arith"
	"github.com/shinji-kodama/arith/internal/model"
)

// File is the parsed batch file.
type File struct {
	// Name is an optional label echoed in the report.
	Name string `json:"name,omitempty"`

	// Calculations lists the entries to evaluate, in order.
	Calculations []Entry `json:"calculations"`
}

// Entry is one raw calculation from the batch file.
//
// A and B use interface{} because operands may be written either as JSON
// numbers or as strings; they are normalized by operand. Parse decodes JSON
// numbers as json.Number so that an out-of-range literal fails only its own
// entry.
type Entry struct {
	Op string      `json:"op"`
	A  interface{} `json:"a"`
	B  interface{} `json:"b"`
}

// Load reads a batch file, strips JSONC comments and parses it.
//
// Returns a CLIError with ExitInvalidInput if the file is missing or
// malformed.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitInvalidInput,
			fmt.Sprintf("failed to read batch file %s", path),
			err,
		)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitInvalidInput,
			fmt.Sprintf("failed to parse batch file %s", path),
			err,
		)
	}
	return f, nil
}

// Parse decodes JSONC batch data.
func Parse(data []byte) (*File, error) {
	// Strip comments and trailing commas; encoding/json does the rest.
	cleanJSON := jsonc.ToJSON(data)

	// Keep numeric literals as text; operand range-checks them per entry.
	dec := json.NewDecoder(bytes.NewReader(cleanJSON))
	dec.UseNumber()

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after the top-level object")
	}
	if f.Calculations == nil {
		return nil, fmt.Errorf("batch file has no \"calculations\" array")
	}
	return &f, nil
}

// Report is the outcome of evaluating a batch file.
type Report struct {
	Name         string              `json:"name,omitempty" yaml:"name,omitempty"`
	Calculations []model.Calculation `json:"calculations" yaml:"calculations"`
	Succeeded    int                 `json:"succeeded" yaml:"succeeded"`
	Failed       int                 `json:"failed" yaml:"failed"`
}

// Evaluate runs every entry of f and collects the results in input order.
func Evaluate(f *File) Report {
	report := Report{
		Name:         f.Name,
		Calculations: make([]model.Calculation, 0, len(f.Calculations)),
	}

	for _, entry := range f.Calculations {
		calc := evaluateEntry(entry)
		if calc.Failed() {
			report.Failed++
		} else {
			report.Succeeded++
		}
		report.Calculations = append(report.Calculations, calc)
	}
	return report
}

// evaluateEntry normalizes one entry and evaluates it. Normalization errors
// are recorded on the calculation like engine errors. The operation and
// operands that did parse are kept so the report shows which entry failed.
func evaluateEntry(entry Entry) model.Calculation {
	op, opErr := arith.ParseOperation(entry.Op)
	if opErr != nil {
		op = arith.Operation(entry.Op)
	}
	a, aErr := operand(entry.A)
	b, bErr := operand(entry.B)

	calc := model.Calculation{Op: op, A: a, B: b}
	switch {
	case opErr != nil:
		calc.Error = opErr.Error()
	case aErr != nil:
		calc.Error = fmt.Sprintf("a: %v", aErr)
	case bErr != nil:
		calc.Error = fmt.Sprintf("b: %v", bErr)
	default:
		// The engine error is already recorded on the calculation.
		calc, _ = model.Evaluate(op, a, b)
	}
	return calc
}

// operand converts a decoded JSON value to a float64.
//   - json.Number: what Parse produces for JSON numbers; parsed with
//     arith.ParseOperand, so out-of-range literals are rejected here
//   - float64: entries built in code rather than decoded
//   - string: parsed with arith.ParseOperand
//   - anything else (null, bool, object, array): rejected
func operand(v interface{}) (float64, error) {
	switch x := v.(type) {
	case json.Number:
		return arith.ParseOperand(x.String())
	case float64:
		return x, nil
	case string:
		return arith.ParseOperand(x)
	case nil:
		return 0, &arith.Error{Kind: arith.KindInvalidArgument, Message: "operand is missing"}
	default:
		return 0, &arith.Error{
			Kind:    arith.KindInvalidArgument,
			Message: "operand " + strconv.Quote(fmt.Sprint(x)) + " is not a number",
		}
	}
}
