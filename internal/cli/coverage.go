// Package cli: coverage.go implements the "arith coverage" command.
//
// The coverage command merges one or more Go coverage profiles, prints
// per-file and total statement coverage, and fails with a dedicated exit
// code when total coverage is below the target. It is meant to run in CI
// right after "go test -coverprofile", before the profile is uploaded to a
// coverage-reporting service.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/arith/internal/coverage"
	"github.com/shinji-kodama/arith/internal/model"
)

// coverageFlags holds the flag values for the coverage command.
type coverageFlags struct {
	// target is the minimum total coverage percentage.
	target float64

	// ignore lists extra file substrings to exclude.
	ignore []string

	// textfile is where Prometheus gauges are written, if set.
	textfile string

	// mergeOut is where the merged profile is written, if set.
	mergeOut string
}

// NewCoverageCommand creates the "coverage" cobra command.
func NewCoverageCommand() *cobra.Command {
	flags := &coverageFlags{}

	cmd := &cobra.Command{
		Use:   "coverage [profile...]",
		Short: "Summarize Go coverage profiles and enforce a target",
		Long: `Summarize statement coverage from one or more "go test -coverprofile"
files and fail when total coverage is below the target.

Profiles default to coverage.profile from .arith.yaml. The target and ignore
patterns also come from the config file; flags override them.

Examples:
  arith coverage coverage.out
  arith coverage --target 80 unit.out integration.out
  arith coverage --ignore cmd/ --textfile build/coverage.prom
  arith coverage --merge-out merged.out go1.24.out go1.25.out`,

		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("target") {
				flags.target = cfg.Coverage.Target
			}
			return runCoverage(cmd.OutOrStdout(), args, flags)
		},
	}

	cmd.Flags().Float64Var(&flags.target, "target", 0, "Minimum total coverage percentage (default: from config)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "Exclude files containing this substring (repeatable)")
	cmd.Flags().StringVar(&flags.textfile, "textfile", "", "Write Prometheus gauges to this file")
	cmd.Flags().StringVar(&flags.mergeOut, "merge-out", "", "Write the merged profile to this file")

	return cmd
}

// runCoverage is the main logic function for the coverage command.
func runCoverage(w io.Writer, paths []string, flags *coverageFlags) error {
	if flags.target < 0 || flags.target > 100 {
		return model.NewCLIError(model.ExitInvalidArgument,
			fmt.Sprintf("invalid target %g: must be between 0 and 100", flags.target))
	}

	// Step 1: Load and merge profiles.
	if len(paths) == 0 {
		paths = []string{cfg.Coverage.Profile}
	}
	profile, err := coverage.Load(paths...)
	if err != nil {
		return model.WrapCLIError(model.ExitInvalidInput, "failed to load coverage profile", err)
	}
	VerboseLog("Loaded %d profile(s), mode %s, %d files", len(paths), profile.Mode, len(profile.Blocks))

	if flags.mergeOut != "" {
		if err := writeMergedProfile(flags.mergeOut, profile); err != nil {
			return err
		}
		VerboseLog("Wrote merged profile to %s", flags.mergeOut)
	}

	// Step 2: Summarize, honoring config and flag ignore patterns.
	ignore := append(append([]string{}, cfg.Coverage.Ignore...), flags.ignore...)
	summary := coverage.Summarize(profile, ignore)

	// Step 3: Export gauges if requested.
	textfile := flags.textfile
	if textfile == "" {
		textfile = cfg.Coverage.Textfile
	}
	if textfile != "" {
		if err := coverage.WriteTextfile(textfile, summary); err != nil {
			return err
		}
		VerboseLog("Wrote coverage metrics to %s", textfile)
	}

	// Step 4: Print, then enforce the target.
	if err := printCoverageResult(w, summary, flags.target); err != nil {
		return err
	}
	if err := coverage.Check(summary, flags.target); err != nil {
		return model.WrapCLIError(model.ExitCoverageBelowTarget, "coverage gate failed", err)
	}
	return nil
}

// writeMergedProfile writes the merged profile to path, creating the parent
// directory first.
func writeMergedProfile(path string, p *coverage.Profile) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory for merged profile: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create merged profile: %w", err)
	}
	if err := coverage.WriteProfile(f, p); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write merged profile: %w", err)
	}
	return f.Close()
}

// coverageJSON is the JSON output structure of the coverage command.
type coverageJSON struct {
	coverage.Summary
	Percent float64 `json:"percent"`
	Target  float64 `json:"target"`
	Passed  bool    `json:"passed"`
}

// printCoverageResult outputs the summary as a text table or JSON.
//
// The table format is:
//
//	FILE                                      COVERED  TOTAL  PERCENT
//	github.com/shinji-kodama/arith/.../a.go   4        6      66.7%
//	total                                     4        6      66.7%
func printCoverageResult(w io.Writer, s coverage.Summary, target float64) error {
	passed := coverage.Check(s, target) == nil

	if IsJSONOutput() {
		return writeJSON(w, coverageJSON{
			Summary: s,
			Percent: s.Percent(),
			Target:  target,
			Passed:  passed,
		})
	}

	width := len("total")
	for _, f := range s.Files {
		if len(f.Name) > width {
			width = len(f.Name)
		}
	}

	fmt.Fprintf(w, "%-*s  %-7s  %-5s  %s\n", width, "FILE", "COVERED", "TOTAL", "PERCENT")
	for _, f := range s.Files {
		fmt.Fprintf(w, "%-*s  %-7d  %-5d  %.1f%%\n", width, f.Name, f.Covered, f.Total, f.Percent())
	}
	fmt.Fprintf(w, "%-*s  %-7d  %-5d  %.1f%%\n", width, "total", s.Covered, s.Total, s.Percent())

	if target > 0 {
		status := "PASS"
		if !passed {
			status = "FAIL"
		}
		fmt.Fprintf(w, "target %.1f%%: %s\n", target, status)
	}
	return nil
}
