// Package config handles discovery, parsing and validation of the arith
// project configuration file (.arith.yaml).
//
// The file carries output defaults for the calculator commands and the
// coverage gate settings used in CI (profile path, target percentage,
// ignore patterns, Prometheus textfile path). It is parsed with
// gopkg.in/yaml.v3. A missing file is not an error: Default() applies.
package config
