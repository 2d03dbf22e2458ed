// Package cli: calc.go implements the four operation commands
// ("arith add", "arith subtract", "arith multiply", "arith divide") and the
// "arith eval" command.
//
// Text output prints only the result so that shell scripts can capture it
// with $(...). JSON and YAML output print the full calculation record.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/arith/internal/arith"
	"github.com/shinji-kodama/arith/internal/config"
	"github.com/shinji-kodama/arith/internal/model"
)

// operationHelp holds the per-operation help text of the operation commands.
type operationHelp struct {
	op      arith.Operation
	aliases []string
	short   string
	example string
}

var operationCommands = []operationHelp{
	{arith.OpAdd, []string{"plus"}, "Add two numbers", "arith add 2 3"},
	{arith.OpSubtract, []string{"sub", "minus"}, "Subtract the second number from the first", "arith subtract 10 4"},
	{arith.OpMultiply, []string{"mul", "times"}, "Multiply two numbers", "arith multiply 3 7"},
	{arith.OpDivide, []string{"div"}, "Divide the first number by the second", "arith divide 20 5"},
}

// NewOperationCommands creates one cobra command per engine operation.
// They are called from NewRootCommand to register as subcommands.
func NewOperationCommands() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(operationCommands))
	for _, h := range operationCommands {
		cmds = append(cmds, newOperationCommand(h))
	}
	return cmds
}

// newOperationCommand builds the command for a single operation. The
// operation is captured by value so each RunE evaluates its own op.
func newOperationCommand(h operationHelp) *cobra.Command {
	op := h.op
	return &cobra.Command{
		Use:     fmt.Sprintf("%s <a> <b>", op),
		Aliases: h.aliases,
		Short:   h.short,
		Long: fmt.Sprintf(`%s.

Operands may be integers, decimals or exponent notation. Negative operands
must follow "--" so they are not read as flags.

Examples:
  %s
  arith %s --json 1.5 2
  arith %s -- -5 -3`, h.short, h.example, op, op),

		// Exactly two positional arguments (the operands) are required.
		Args: cobra.ExactArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd.OutOrStdout(), op, args[0], args[1])
		},
	}
}

// runOperation parses the operands, evaluates op, and prints the result.
// Engine errors are returned unchanged so that Execute can map them to
// exit codes.
func runOperation(w io.Writer, op arith.Operation, rawA, rawB string) error {
	a, err := arith.ParseOperand(rawA)
	if err != nil {
		return err
	}
	b, err := arith.ParseOperand(rawB)
	if err != nil {
		return err
	}
	return evaluateAndPrint(w, op, a, b)
}

// evaluateAndPrint evaluates op on already-parsed operands, logs the
// equation at debug level (including failures), and prints successful
// results. The engine error is returned as-is.
func evaluateAndPrint(w io.Writer, op arith.Operation, a, b float64) error {
	calc, err := model.Evaluate(op, a, b)
	VerboseLog("%s", calc.Equation(cfg.Precision))
	if err != nil {
		return err
	}
	return printCalculation(w, calc)
}

// printCalculation outputs a successful calculation in the effective format.
func printCalculation(w io.Writer, calc model.Calculation) error {
	switch outputFormat() {
	case config.FormatJSON:
		return writeJSON(w, calc)
	case config.FormatYAML:
		data, err := yaml.Marshal(&calc)
		if err != nil {
			return fmt.Errorf("failed to serialize output: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		_, err := fmt.Fprintln(w, model.FormatNumber(calc.Result, cfg.Precision))
		return err
	}
}

// NewEvalCommand creates the "eval" cobra command.
func NewEvalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <a> <op> <b>",
		Short: "Evaluate an infix expression",
		Long: `Evaluate a single infix expression of the form "<a> <op> <b>".

The operator may be a symbol (+ - * /) or a name (add, sub, mul, div, ...).
The expression may be passed as one quoted argument or as three arguments.
Quote "*" to keep the shell from expanding it.

Examples:
  arith eval "20 / 5"
  arith eval 2 add 3
  arith eval -- "-5 + -3"`,

		Args: cobra.RangeArgs(1, 3),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}
}

// runEval parses an infix expression and evaluates it like the operation
// commands do. Parse errors are InvalidArgument engine errors (exit 2).
func runEval(w io.Writer, expr string) error {
	op, a, b, err := arith.ParseExpression(expr)
	if err != nil {
		return err
	}
	return evaluateAndPrint(w, op, a, b)
}

// NewOpsCommand creates the "ops" cobra command, which lists the supported
// operations with their symbols.
func NewOpsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List supported operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printOps(cmd.OutOrStdout())
		},
	}
}

// opJSON is the JSON output structure for one operation in "arith ops".
type opJSON struct {
	Name    string   `json:"name"`
	Symbol  string   `json:"symbol"`
	Aliases []string `json:"aliases"`
}

// printOps lists the operations as a NAME/SYMBOL/ALIASES table, or as
// {"operations": [...]} when --json is set.
func printOps(w io.Writer) error {
	ops := make([]opJSON, 0, len(operationCommands))
	for _, h := range operationCommands {
		ops = append(ops, opJSON{
			Name:    h.op.String(),
			Symbol:  h.op.Symbol(),
			Aliases: append([]string{}, h.aliases...),
		})
	}

	if IsJSONOutput() {
		return writeJSON(w, map[string]interface{}{"operations": ops})
	}

	fmt.Fprintf(w, "%-10s %-7s %s\n", "NAME", "SYMBOL", "ALIASES")
	for _, o := range ops {
		fmt.Fprintf(w, "%-10s %-7s %s\n", o.Name, o.Symbol, strings.Join(o.Aliases, ","))
	}
	return nil
}
