// Package adapters converts raw scanner output into canonical findings.
// Each adapter is a pure transformation of already-materialized bytes; the
// process spawning lives in pkg/runner.
package adapters

import (
	"encoding/json"
	"regexp"

	"github.com/user/secureflow/pkg/engine"
)

// Registry maps each scanner to its adapter. The aggregator consumes this
// so the set of wired scanners lives in one place.
func Registry() map[engine.Scanner]engine.AdapterFunc {
	return map[engine.Scanner]engine.AdapterFunc{
		engine.ScannerStaticAnalysis: ParseSemgrep,
		engine.ScannerDependency:     ParseTrivy,
		engine.ScannerSecret:         ParseTruffleHog,
	}
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes terminal color codes. TruffleHog colors its key/value
// output even when piped.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func safeLine(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// rawRecord decodes a record into the opaque map preserved on the finding
// for drill-down display. Decode failure just drops the payload; the typed
// fields have already been extracted.
func rawRecord(b []byte) map[string]interface{} {
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}
