// Package cli implements the cobra-based CLI commands for arith.
//
// Each subcommand (the four operations, eval, ops, batch, coverage) is
// defined in its own file within this package. This file defines the root
// command that serves as the parent for all subcommands and handles global
// flags, configuration loading and error reporting.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/arith/internal/config"
	"github.com/shinji-kodama/arith/internal/model"
	"github.com/shinji-kodama/arith/internal/observability"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput forces JSON output regardless of the configured format.
	jsonOutput bool

	// verbose enables debug logging on stderr.
	verbose bool

	// configPath is an explicit .arith.yaml path; empty means discover.
	configPath string

	// precision overrides the configured decimal places for text output.
	precision int
)

// Per-invocation state set up by the root command's PersistentPreRunE.
var (
	// cfg is the resolved project configuration.
	cfg = config.Default()

	// logger is the CLI logger; a no-op until the root command runs.
	logger = zap.NewNop()
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action. It provides help
// text, global flags, and loads configuration before any subcommand runs.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arith",
		Short: "Arithmetic engine CLI with a coverage gate for CI",
		Long: `arith evaluates add, subtract, multiply and divide on two numbers,
runs batches of calculations from JSONC files, and checks Go coverage
profiles against a target so CI can fail a build on low coverage.

Configuration is read from .arith.yaml in the current directory when present.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: discover .arith.yaml)")
	rootCmd.PersistentFlags().IntVar(&precision, "precision", -1, "Decimal places for text output (-1: shortest)")

	for _, cmd := range NewOperationCommands() {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(NewEvalCommand())
	rootCmd.AddCommand(NewOpsCommand())
	rootCmd.AddCommand(NewBatchCommand())
	rootCmd.AddCommand(NewCoverageCommand())

	return rootCmd
}

// setup builds the logger and resolves configuration. Flags explicitly set
// on the command line take precedence over the config file.
func setup(cmd *cobra.Command, _ []string) error {
	l, err := observability.NewLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	resolved, err := config.Resolve(configPath, dir)
	if err != nil {
		return err
	}
	if resolved.Path != "" {
		VerboseLog("Loaded config from %s", resolved.Path)
	} else {
		VerboseLog("No config file found in %s, using defaults", dir)
	}

	if cmd.Flags().Changed("precision") {
		resolved.Precision = precision
	}
	if errs := resolved.Validate(); len(errs) > 0 {
		return model.NewCLIError(model.ExitInvalidInput,
			"invalid configuration:\n"+config.FormatValidationErrors(errs))
	}

	cfg = resolved
	return nil
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
		os.Exit(int(model.ExitCodeFor(err)))
	}
}

// reportError prints err, unwrapping a CLIError into message and detail.
func reportError(w io.Writer, err error) {
	if cliErr, ok := err.(*model.CLIError); ok {
		printError(w, cliErr.Message, cliErr.Err)
		return
	}
	printError(w, err.Error(), nil)
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// VerboseLog emits a debug message. It is visible only with --verbose or
// LOG_LEVEL=debug.
func VerboseLog(format string, args ...interface{}) {
	logger.Sugar().Debugf(format, args...)
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}

// outputFormat returns the effective output format for result printing.
func outputFormat() string {
	if jsonOutput {
		return config.FormatJSON
	}
	return cfg.Output
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
