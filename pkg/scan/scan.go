// Package scan wires the pipeline together: run the external tools, feed
// their raw output through the adapters and aggregator, persist the report.
// The CLI and the dashboard both drive scans through here.
package scan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/user/secureflow/pkg/adapters"
	"github.com/user/secureflow/pkg/engine"
	"github.com/user/secureflow/pkg/runner"
	"github.com/user/secureflow/pkg/store"
	"go.uber.org/zap"
)

// Options selects what to scan and with which tools. Save toggles snapshot
// persistence; presentation flags live with the renderer, not here.
type Options struct {
	Target   string
	Scanners []engine.Scanner
	Save     bool
}

// ParseScanners turns a CLI value like "semgrep,trivy" or "all" into scanner
// enums. Tool names and enum names are both accepted.
func ParseScanners(value string) ([]engine.Scanner, error) {
	if value == "" || strings.EqualFold(value, "all") {
		return engine.AllScanners(), nil
	}

	var out []engine.Scanner
	for _, part := range strings.Split(value, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		switch name {
		case "semgrep", "static", "static_analysis":
			out = append(out, engine.ScannerStaticAnalysis)
		case "trivy", "dependency", "deps":
			out = append(out, engine.ScannerDependency)
		case "trufflehog", "secret", "secrets":
			out = append(out, engine.ScannerSecret)
		case "":
		default:
			return nil, fmt.Errorf("unknown scanner %q", part)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no scanners selected")
	}
	return out, nil
}

// Run executes one complete scan-to-report pass.
func Run(ctx context.Context, opts Options, st *store.Store, log *zap.SugaredLogger) (*engine.ScanReport, error) {
	started := time.Now().UTC()
	outputs := runner.Collect(ctx, opts.Target, opts.Scanners, log)
	finished := time.Now().UTC()

	report, err := engine.Aggregate(opts.Target, started, finished, outputs, adapters.Registry())
	if err != nil {
		return nil, err
	}

	log.Infof("Aggregated %d findings (%d duplicates removed)",
		report.Summary.Total, report.Summary.DuplicatesRemoved)

	if opts.Save {
		path, err := st.Save(report)
		if err != nil {
			return report, fmt.Errorf("report computed but not saved: %w", err)
		}
		log.Infof("Report saved to %s", path)
	}
	return report, nil
}
