// Package runner invokes the external scanner binaries and hands their raw
// output to the aggregation core. All parsing happens in pkg/adapters; this
// package owns process spawning, exit-code quirks, and timeouts.
package runner

import (
	"context"
	"os/exec"

	"github.com/user/secureflow/pkg/engine"
	"go.uber.org/zap"
)

// RunFunc executes one external tool against a target and returns its raw
// output bytes.
type RunFunc func(ctx context.Context, target string) ([]byte, error)

// Registry maps each scanner to its runner.
func Registry() map[engine.Scanner]RunFunc {
	return map[engine.Scanner]RunFunc{
		engine.ScannerStaticAnalysis: RunSemgrep,
		engine.ScannerDependency:     RunTrivy,
		engine.ScannerSecret:         RunTruffleHog,
	}
}

// Binary returns the executable name behind a scanner, for install checks.
func Binary(s engine.Scanner) string {
	switch s {
	case engine.ScannerStaticAnalysis:
		return "semgrep"
	case engine.ScannerDependency:
		return "trivy"
	case engine.ScannerSecret:
		return "trufflehog"
	}
	return ""
}

// Installed reports whether the scanner's binary is on PATH.
func Installed(s engine.Scanner) bool {
	_, err := exec.LookPath(Binary(s))
	return err == nil
}

// Collect runs every requested scanner and returns the raw output keyed by
// scanner. A tool that fails to run contributes an empty payload, which the
// aggregator records as a scanner failure; one broken tool never aborts the
// others.
func Collect(ctx context.Context, target string, scanners []engine.Scanner, log *zap.SugaredLogger) map[engine.Scanner][]byte {
	runners := Registry()
	outputs := make(map[engine.Scanner][]byte, len(scanners))

	for _, sc := range scanners {
		run, ok := runners[sc]
		if !ok {
			continue
		}
		log.Infof("Running %s scan on %s", Binary(sc), target)
		raw, err := run(ctx, target)
		if err != nil {
			log.Warnw("Scanner failed", "scanner", Binary(sc), "error", err)
			outputs[sc] = nil
			continue
		}
		outputs[sc] = raw
	}
	return outputs
}
