package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Scanner identifies which external tool produced a finding.
type Scanner string

const (
	ScannerStaticAnalysis Scanner = "STATIC_ANALYSIS"
	ScannerDependency     Scanner = "DEPENDENCY"
	ScannerSecret         Scanner = "SECRET"
)

// AllScanners returns every scanner in canonical order. Aggregation iterates
// this slice so output ordering never depends on map iteration.
func AllScanners() []Scanner {
	return []Scanner{ScannerStaticAnalysis, ScannerDependency, ScannerSecret}
}

func (s Scanner) Valid() bool {
	switch s {
	case ScannerStaticAnalysis, ScannerDependency, ScannerSecret:
		return true
	}
	return false
}

// Severity is the canonical 4-level scale all tool severities map onto.
type Severity string

const (
	SevCritical Severity = "CRITICAL"
	SevHigh     Severity = "HIGH"
	SevMedium   Severity = "MEDIUM"
	SevLow      Severity = "LOW"
)

// AllSeverities returns the levels from most to least severe.
func AllSeverities() []Severity {
	return []Severity{SevCritical, SevHigh, SevMedium, SevLow}
}

// Weight returns a numeric weight for comparison (higher = more severe).
func (s Severity) Weight() int {
	switch s {
	case SevCritical:
		return 4
	case SevHigh:
		return 3
	case SevMedium:
		return 2
	case SevLow:
		return 1
	}
	return 0
}

func (s Severity) Valid() bool {
	return s.Weight() > 0
}

// Controlled category vocabulary.
const (
	CategorySQLInjection     = "SQL_INJECTION"
	CategoryXSS              = "XSS"
	CategoryCommandInjection = "COMMAND_INJECTION"
	CategoryHardcodedSecret  = "HARDCODED_SECRET"
	CategoryVulnerableDep    = "VULNERABLE_DEPENDENCY"
	CategoryPathTraversal    = "PATH_TRAVERSAL"
	CategoryMisconfiguration = "MISCONFIGURATION"
	CategoryOther            = "OTHER"
)

var validCategories = map[string]bool{
	CategorySQLInjection:     true,
	CategoryXSS:              true,
	CategoryCommandInjection: true,
	CategoryHardcodedSecret:  true,
	CategoryVulnerableDep:    true,
	CategoryPathTraversal:    true,
	CategoryMisconfiguration: true,
	CategoryOther:            true,
}

func ValidCategory(c string) bool {
	return validCategories[c]
}

// Location points at the file and line a finding was raised on. Dependency
// findings have no single line, so Finding carries *Location and leaves it nil.
type Location struct {
	FilePath string `json:"file_path"`
	Line     int    `json:"line"`
}

// Finding is one normalized security observation from a single scanner.
// Immutable once constructed; use NewFinding so the vocabulary invariants
// hold for everything downstream.
type Finding struct {
	ID          string                 `json:"id"`
	Scanner     Scanner                `json:"scanner"`
	RuleID      string                 `json:"rule_id"`
	Severity    Severity               `json:"severity"`
	Category    string                 `json:"category"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Location    *Location              `json:"location,omitempty"`
	Raw         map[string]interface{} `json:"raw,omitempty"`
}

// NewFinding validates the controlled vocabularies and derives the stable id.
// A violation here is a defect in the adapter that produced the input.
func NewFinding(scanner Scanner, ruleID, title, description string, severity Severity, category string, loc *Location, raw map[string]interface{}) (Finding, error) {
	if !scanner.Valid() {
		return Finding{}, fmt.Errorf("invalid scanner %q", scanner)
	}
	if !severity.Valid() {
		return Finding{}, fmt.Errorf("invalid severity %q", severity)
	}
	if !ValidCategory(category) {
		return Finding{}, fmt.Errorf("invalid category %q", category)
	}
	if strings.TrimSpace(title) == "" {
		return Finding{}, fmt.Errorf("finding title is empty")
	}

	return Finding{
		ID:          findingID(scanner, ruleID, title, loc),
		Scanner:     scanner,
		RuleID:      ruleID,
		Severity:    severity,
		Category:    category,
		Title:       title,
		Description: description,
		Location:    loc,
		Raw:         raw,
	}, nil
}

// findingID derives a deterministic id so the same real-world issue yields
// the same id across runs.
func findingID(scanner Scanner, ruleID, title string, loc *Location) string {
	file := ""
	line := 0
	if loc != nil {
		file = loc.FilePath
		line = loc.Line
	}
	key := fmt.Sprintf("%s|%s|%s|%d|%s", scanner, ruleID, file, line, normalizeTitle(title))
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

// normalizeTitle lowercases and collapses whitespace so cosmetic differences
// in tool output do not change the id.
func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
