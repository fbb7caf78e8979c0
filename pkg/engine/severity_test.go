package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSeverity(t *testing.T) {
	tests := []struct {
		scanner Scanner
		label   string
		want    Severity
	}{
		{ScannerStaticAnalysis, "ERROR", SevCritical},
		{ScannerStaticAnalysis, "WARNING", SevMedium},
		{ScannerStaticAnalysis, "INFO", SevLow},
		{ScannerStaticAnalysis, "error", SevCritical},
		{ScannerStaticAnalysis, "  warning ", SevMedium},
		{ScannerDependency, "CRITICAL", SevCritical},
		{ScannerDependency, "HIGH", SevHigh},
		{ScannerDependency, "MODERATE", SevMedium},
		{ScannerDependency, "NEGLIGIBLE", SevLow},
		{ScannerSecret, "HIGH", SevHigh},
		{ScannerSecret, "low", SevLow},
	}
	for _, tt := range tests {
		t.Run(string(tt.scanner)+"/"+tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSeverity(tt.scanner, tt.label))
		})
	}
}

func TestNormalizeSeverityUnknownLabelFallsBackToMedium(t *testing.T) {
	assert.Equal(t, SevMedium, NormalizeSeverity(ScannerStaticAnalysis, "WEIRD"))
	assert.Equal(t, SevMedium, NormalizeSeverity(ScannerDependency, ""))
	assert.Equal(t, SevMedium, NormalizeSeverity(Scanner("UNKNOWN_TOOL"), "HIGH"))
}
