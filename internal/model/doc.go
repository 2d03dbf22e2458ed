// Package model defines the domain types and value objects shared by the
// arith CLI packages.
//
// Calculation is the record of one evaluated operation. It is produced by
// the single-operation commands and by batch evaluation, and serialized as
// JSON or YAML for machine consumption. Nothing is persisted.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
