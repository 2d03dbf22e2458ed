// Package coverage reads Go coverage profiles and enforces a coverage
// target, the Go side of publishing test coverage from CI.
//
// A profile is the text file written by "go test -coverprofile". Profiles
// from several test runs (one per matrix leg, or one per package) can be
// merged, summarized per source file, checked against a target percentage
// and exported as Prometheus gauges in the node-exporter textfile format.
//
// Usage:
//
//	p, err := coverage.Load("unit.out", "integration.out")
//	if err != nil {
//	    return err
//	}
//	s := coverage.Summarize(p, cfg.Coverage.Ignore)
//	if err := coverage.Check(s, cfg.Coverage.Target); err != nil {
//	    return err
//	}
package coverage
