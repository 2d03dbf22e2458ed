package coverage

import (
	"fmt"
	"strings"
)

// FileSummary holds statement coverage for one source file.
type FileSummary struct {
	Name    string `json:"name"`
	Covered int    `json:"covered"`
	Total   int    `json:"total"`
}

// Ratio returns the fraction of statements that are covered. A file with no
// statements counts as fully covered.
func (f FileSummary) Ratio() float64 {
	if f.Total == 0 {
		return 1
	}
	return float64(f.Covered) / float64(f.Total)
}

// Percent returns Ratio as a percentage.
func (f FileSummary) Percent() float64 {
	return f.Ratio() * 100
}

// Summary holds per-file and total statement coverage.
type Summary struct {
	Mode    string        `json:"mode"`
	Files   []FileSummary `json:"files"`
	Covered int           `json:"covered"`
	Total   int           `json:"total"`
}

// Ratio returns the fraction of all statements that are covered.
func (s Summary) Ratio() float64 {
	if s.Total == 0 {
		return 1
	}
	return float64(s.Covered) / float64(s.Total)
}

// Percent returns Ratio as a percentage.
func (s Summary) Percent() float64 {
	return s.Ratio() * 100
}

// Summarize computes statement coverage per file. Files whose name contains
// any of the ignore substrings are left out of both the file list and the
// totals.
func Summarize(p *Profile, ignore []string) Summary {
	s := Summary{Mode: p.Mode, Files: make([]FileSummary, 0, len(p.Blocks))}

	for _, name := range p.Files() {
		if ignored(name, ignore) {
			continue
		}
		fs := FileSummary{Name: name}
		for _, b := range p.Blocks[name] {
			fs.Total += b.NumStmt
			if b.Count > 0 {
				fs.Covered += b.NumStmt
			}
		}
		s.Files = append(s.Files, fs)
		s.Covered += fs.Covered
		s.Total += fs.Total
	}
	return s
}

func ignored(name string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(name, p) {
			return true
		}
	}
	return false
}

// ThresholdError is returned by Check when coverage is below target.
type ThresholdError struct {
	Percent float64
	Target  float64
}

// Error implements the error interface for ThresholdError.
func (e *ThresholdError) Error() string {
	return fmt.Sprintf("coverage %.1f%% is below target %.1f%%", e.Percent, e.Target)
}

// Check returns a *ThresholdError if the summary's total coverage is below
// target percent. A zero target always passes.
func Check(s Summary, target float64) error {
	if pct := s.Percent(); pct < target {
		return &ThresholdError{Percent: pct, Target: target}
	}
	return nil
}
