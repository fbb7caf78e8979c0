package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/secureflow/pkg/engine"
)

func TestParseScanners(t *testing.T) {
	tests := []struct {
		value string
		want  []engine.Scanner
	}{
		{"all", engine.AllScanners()},
		{"", engine.AllScanners()},
		{"ALL", engine.AllScanners()},
		{"semgrep", []engine.Scanner{engine.ScannerStaticAnalysis}},
		{"trivy", []engine.Scanner{engine.ScannerDependency}},
		{"trufflehog", []engine.Scanner{engine.ScannerSecret}},
		{"semgrep,trivy", []engine.Scanner{engine.ScannerStaticAnalysis, engine.ScannerDependency}},
		{" secrets , static ", []engine.Scanner{engine.ScannerSecret, engine.ScannerStaticAnalysis}},
		{"deps", []engine.Scanner{engine.ScannerDependency}},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseScanners(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseScannersRejectsUnknown(t *testing.T) {
	_, err := ParseScanners("nmap")
	assert.Error(t, err)

	_, err = ParseScanners("semgrep,bogus")
	assert.Error(t, err)

	_, err = ParseScanners(",")
	assert.Error(t, err)
}
