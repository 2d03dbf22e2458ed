// Package batch evaluates many calculations described in a JSONC file.
//
// A batch file lists calculations as {"op", "a", "b"} objects. JSONC (JSON
// with Comments) is supported via github.com/tidwall/jsonc so batch files can
// be annotated. Operands may be JSON numbers or numeric strings.
//
// Every entry is evaluated independently: an entry that fails (unknown
// operation, non-numeric operand, zero divisor) records its error in the
// report and the remaining entries still run. Reports render as text, JSON
// or YAML (gopkg.in/yaml.v3).
package batch
