package batch

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/arith/internal/config"
)

// Encode renders a report in the given format ("text", "json" or "yaml").
// precision only affects text output; JSON and YAML carry full float64
// values.
func Encode(report Report, format string, precision int) ([]byte, error) {
	switch format {
	case config.FormatJSON:
		return encodeJSON(report)
	case config.FormatYAML:
		return encodeYAML(report)
	case config.FormatText:
		return encodeText(report, precision), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (valid: text, json, yaml)", format)
	}
}

// encodeJSON writes the report as indented JSON with a trailing newline.
// Non-finite results are encoded by model.Calculation.MarshalJSON.
func encodeJSON(report Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize batch report: %w", err)
	}
	return append(data, '\n'), nil
}

// encodeYAML writes the report as YAML with 2-space indentation, preceded
// by a header comment naming the batch when it has a name.
func encodeYAML(report Report) ([]byte, error) {
	var buf bytes.Buffer
	if report.Name != "" {
		fmt.Fprintf(&buf, "# Batch report for %q\n", report.Name)
	}

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&report); err != nil {
		return nil, fmt.Errorf("failed to serialize batch report YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to serialize batch report YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeText writes one equation per line followed by a summary line:
//
//	20 / 5 = 4
//	10 / 0: error: divide: cannot divide by zero
//	2 succeeded, 1 failed
func encodeText(report Report, precision int) []byte {
	var buf bytes.Buffer
	for _, c := range report.Calculations {
		buf.WriteString(c.Equation(precision))
		buf.WriteByte('\n')
	}
	fmt.Fprintf(&buf, "%d succeeded, %d failed\n", report.Succeeded, report.Failed)
	return buf.Bytes()
}
