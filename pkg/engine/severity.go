package engine

import "strings"

// Per-scanner severity vocabularies. Semgrep reports ERROR/WARNING/INFO,
// trivy reports the canonical names plus UNKNOWN/NEGLIGIBLE, trufflehog
// rarely labels at all but some versions emit a Severity field.
var severityTables = map[Scanner]map[string]Severity{
	ScannerStaticAnalysis: {
		"ERROR":    SevCritical,
		"WARNING":  SevMedium,
		"INFO":     SevLow,
		"CRITICAL": SevCritical,
		"HIGH":     SevHigh,
		"MEDIUM":   SevMedium,
		"LOW":      SevLow,
	},
	ScannerDependency: {
		"CRITICAL":   SevCritical,
		"HIGH":       SevHigh,
		"MEDIUM":     SevMedium,
		"MODERATE":   SevMedium,
		"LOW":        SevLow,
		"NEGLIGIBLE": SevLow,
	},
	ScannerSecret: {
		"CRITICAL": SevCritical,
		"HIGH":     SevHigh,
		"MEDIUM":   SevMedium,
		"LOW":      SevLow,
	},
}

// NormalizeSeverity maps a tool's native severity label onto the canonical
// scale. Matching is case- and whitespace-insensitive. An unrecognized label
// maps to MEDIUM so no finding is silently dropped or promoted.
func NormalizeSeverity(scanner Scanner, label string) Severity {
	key := strings.ToUpper(strings.TrimSpace(label))
	if table, ok := severityTables[scanner]; ok {
		if sev, ok := table[key]; ok {
			return sev
		}
	}
	return SevMedium
}
