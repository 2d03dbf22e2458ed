package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/arith/internal/model"
)

// Output formats understood by the CLI.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the parsed .arith.yaml file.
type Config struct {
	// Precision is the number of decimal places used for text output.
	// -1 selects the shortest representation.
	Precision int `yaml:"precision"`

	// Output is the default output format: text, json or yaml.
	Output string `yaml:"output"`

	// Coverage configures the coverage gate.
	Coverage CoverageConfig `yaml:"coverage"`

	// Path is the file the config was loaded from; empty for defaults.
	Path string `yaml:"-"`
}

// CoverageConfig holds the settings of the "arith coverage" command.
type CoverageConfig struct {
	// Profile is the default coverage profile path.
	Profile string `yaml:"profile"`

	// Target is the minimum total statement coverage, in percent.
	Target float64 `yaml:"target"`

	// Ignore lists substrings; profile files containing any of them are
	// excluded from the summary.
	Ignore []string `yaml:"ignore"`

	// Textfile, when set, is where Prometheus gauges are written.
	Textfile string `yaml:"textfile"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Precision: -1,
		Output:    FormatText,
		Coverage: CoverageConfig{
			Profile: "coverage.out",
			Target:  0,
		},
	}
}

// Load reads a config file and overlays it on Default(). Fields absent from
// the file keep their default values.
//
// Returns a CLIError with ExitConfigNotFound if the file does not exist and
// ExitInvalidInput if it cannot be parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitConfigNotFound,
				fmt.Sprintf("config file not found: %s", path),
				err,
			)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitInvalidInput,
			fmt.Sprintf("failed to parse config file %s", path),
			err,
		)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes YAML config data on top of Default(). Unknown keys are
// rejected so that typos do not silently disable the coverage gate.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// An empty document decodes to io.EOF; defaults apply.
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// candidateNames lists config file locations relative to a project
// directory, in priority order.
var candidateNames = []string{
	".arith.yaml",
	".arith.yml",
	filepath.Join(".github", "arith.yaml"),
}

// Find searches dir for a config file in the standard locations and returns
// the first path found. It returns "" and no error if none exists.
func Find(dir string) (string, error) {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}
	return "", nil
}

// Resolve returns the configuration for a command invocation. An explicit
// path must exist. Otherwise dir is searched, then the root of the Git
// repository containing dir; defaults are used when no file is found.
func Resolve(explicitPath, dir string) (*Config, error) {
	if explicitPath != "" {
		return Load(explicitPath)
	}

	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		// Not being inside a repository (or git being absent) just means
		// there is no second place to look.
		if root, gitErr := RepoRoot(dir); gitErr == nil && root != "" && !samePath(root, dir) {
			if path, err = Find(root); err != nil {
				return nil, err
			}
		}
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// samePath reports whether a and b name the same directory after symlink
// resolution; git reports resolved paths.
func samePath(a, b string) bool {
	ra, errA := filepath.EvalSymlinks(a)
	rb, errB := filepath.EvalSymlinks(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return ra == rb
}
