// Package observability builds the structured logger used by the arith CLI.
//
// Log output always goes to stderr so that stdout stays reserved for command
// results (text, JSON or YAML) that scripts and CI steps consume.
package observability

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a console logger writing to stderr. Verbose selects the
// debug level; otherwise only warnings and errors are shown. A LOG_LEVEL
// environment variable overrides both.
func NewLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.Encoding = "console"
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.DisableStacktrace = true
	config.DisableCaller = true
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.Level = levelFor(verbose, os.Getenv("LOG_LEVEL"))

	return config.Build()
}

func levelFor(verbose bool, env string) zap.AtomicLevel {
	if level, ok := parseLogLevel(env); ok {
		return level
	}
	if verbose {
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zap.NewAtomicLevelAt(zap.WarnLevel)
}

func parseLogLevel(s string) (zap.AtomicLevel, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return zap.NewAtomicLevelAt(zap.DebugLevel), true
	case "INFO":
		return zap.NewAtomicLevelAt(zap.InfoLevel), true
	case "WARN":
		return zap.NewAtomicLevelAt(zap.WarnLevel), true
	case "ERROR":
		return zap.NewAtomicLevelAt(zap.ErrorLevel), true
	default:
		return zap.AtomicLevel{}, false
	}
}
