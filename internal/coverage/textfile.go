package coverage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

// newRegistry builds a registry holding the coverage gauges for s. A fresh
// registry is used per call so repeated exports do not collide.
func newRegistry(s Summary) (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()

	statementsTotal := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "arith_coverage_statements_total",
		Help: "Number of statements in the coverage profile",
	})
	statementsCovered := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "arith_coverage_statements_covered",
		Help: "Number of statements executed at least once",
	})
	ratio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "arith_coverage_ratio",
		Help: "Fraction of statements covered (0-1)",
	})
	fileRatio := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "arith_coverage_file_ratio",
			Help: "Fraction of statements covered per source file (0-1)",
		},
		[]string{"file"},
	)

	for _, c := range []prometheus.Collector{statementsTotal, statementsCovered, ratio, fileRatio} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register coverage metric: %w", err)
		}
	}

	statementsTotal.Set(float64(s.Total))
	statementsCovered.Set(float64(s.Covered))
	ratio.Set(s.Ratio())
	for _, f := range s.Files {
		fileRatio.WithLabelValues(f.Name).Set(f.Ratio())
	}
	return registry, nil
}

// WriteTextfile writes the summary as Prometheus gauges in the text
// exposition format, suitable for the node-exporter textfile collector or a
// CI artifact. Parent directories are created as needed.
func WriteTextfile(path string, s Summary) error {
	registry, err := newRegistry(s)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create textfile directory: %w", err)
		}
	}

	// WriteToTextfile writes to a temp file and renames it into place.
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("failed to write coverage textfile: %w", err)
	}
	return nil
}
