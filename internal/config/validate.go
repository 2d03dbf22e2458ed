// validate.go checks a parsed .arith.yaml for values the CLI cannot honor.
// Validation collects every problem instead of stopping at the first so the
// user can fix the file in one pass.
package config

import (
	"fmt"
	"strings"
)

// maxPrecision is the largest decimal precision accepted for text output.
const maxPrecision = 15

// ValidationError represents a specific validation failure in the config.
type ValidationError struct {
	// Field is the YAML field path that failed validation (e.g., "coverage.target").
	Field string

	// Message describes what's wrong with the field value.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// Validate returns the list of validation errors (empty list = valid).
//
// Checks performed:
//   - precision is -1 or within 0..15
//   - output is text, json or yaml
//   - coverage.target is within 0..100
//   - coverage.ignore entries are not blank
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Precision < -1 || c.Precision > maxPrecision {
		errs = append(errs, ValidationError{
			Field:   "precision",
			Message: fmt.Sprintf("must be -1 (shortest) or between 0 and %d, got %d", maxPrecision, c.Precision),
		})
	}

	if !IsFormat(c.Output) {
		errs = append(errs, ValidationError{
			Field:   "output",
			Message: fmt.Sprintf("invalid format %q (valid: text, json, yaml)", c.Output),
		})
	}

	if c.Coverage.Target < 0 || c.Coverage.Target > 100 {
		errs = append(errs, ValidationError{
			Field:   "coverage.target",
			Message: fmt.Sprintf("must be between 0 and 100, got %g", c.Coverage.Target),
		})
	}

	for i, pattern := range c.Coverage.Ignore {
		if strings.TrimSpace(pattern) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("coverage.ignore[%d]", i),
				Message: "pattern must not be blank",
			})
		}
	}

	return errs
}

// IsFormat reports whether s names a supported output format.
func IsFormat(s string) bool {
	switch s {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// FormatValidationErrors joins validation errors into a single multi-line
// message suitable for CLI output.
func FormatValidationErrors(errs []ValidationError) string {
	lines := make([]string, 0, len(errs))
	for i := range errs {
		lines = append(lines, "  - "+errs[i].Field+": "+errs[i].Message)
	}
	return strings.Join(lines, "\n")
}
