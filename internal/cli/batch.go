// Package cli: batch.go implements the "arith batch" command.
//
// The batch command evaluates every calculation in a JSONC file and prints
// a report. Entries fail independently; the command exits non-zero after
// printing the report if any entry failed.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/arith/internal/batch"
	"github.com/shinji-kodama/arith/internal/config"
	"github.com/shinji-kodama/arith/internal/model"
)

// batchFlags holds the flag values for the batch command.
type batchFlags struct {
	// format overrides the output format: text, json or yaml.
	format string
}

// NewBatchCommand creates the "batch" cobra command.
func NewBatchCommand() *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Evaluate calculations from a JSONC file",
		Long: `Evaluate every calculation listed in a JSONC batch file.

The file holds a "calculations" array of {"op", "a", "b"} objects. Comments
and trailing commas are allowed. Operands may be numbers or numeric strings.

Examples:
  arith batch calculations.jsonc
  arith batch --format yaml calculations.jsonc
  arith batch --json calculations.jsonc`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "",
		"Output format: text, json, yaml (default: from config, or json with --json)")

	return cmd
}

// runBatch loads the batch file, evaluates it and prints the report.
func runBatch(w io.Writer, path string, flags *batchFlags) error {
	format := outputFormat()
	if flags.format != "" {
		if !config.IsFormat(flags.format) {
			return model.NewCLIError(model.ExitInvalidArgument,
				fmt.Sprintf("invalid format %q: valid values are text, json, yaml", flags.format))
		}
		format = flags.format
	}

	f, err := batch.Load(path)
	if err != nil {
		return err
	}
	VerboseLog("Loaded %d calculations from %s", len(f.Calculations), path)

	report := batch.Evaluate(f)
	out, err := batch.Encode(report, format, cfg.Precision)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}

	if report.Failed > 0 {
		return model.NewCLIError(model.ExitInvalidArgument,
			fmt.Sprintf("%d of %d calculations failed", report.Failed, len(report.Calculations)))
	}
	return nil
}
