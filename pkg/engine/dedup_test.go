package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFinding(t *testing.T, scanner Scanner, ruleID, title string, sev Severity, category string, loc *Location) Finding {
	t.Helper()
	f, err := NewFinding(scanner, ruleID, title, "", sev, category, loc, nil)
	require.NoError(t, err)
	return f
}

func TestDeduplicateCollapsesSameLocationAndCategory(t *testing.T) {
	loc := &Location{FilePath: "app/auth.py", Line: 10}
	findings := []Finding{
		mustFinding(t, ScannerStaticAnalysis, "rule-a", "hardcoded password", SevHigh, CategoryHardcodedSecret, loc),
		mustFinding(t, ScannerSecret, "Generic Secret", "secret detected", SevHigh, CategoryHardcodedSecret, loc),
	}

	out, removed := Deduplicate(findings)
	assert.Len(t, out, 1)
	assert.Equal(t, 1, removed)
	// Severity tie: static analysis outranks the secret scanner.
	assert.Equal(t, ScannerStaticAnalysis, out[0].Scanner)
}

func TestDeduplicateHighestSeverityWins(t *testing.T) {
	loc := &Location{FilePath: "app/db.py", Line: 5}
	findings := []Finding{
		mustFinding(t, ScannerStaticAnalysis, "rule-a", "sql concat", SevMedium, CategorySQLInjection, loc),
		mustFinding(t, ScannerSecret, "rule-b", "sql concat again", SevCritical, CategorySQLInjection, loc),
	}

	out, removed := Deduplicate(findings)
	require.Len(t, out, 1)
	assert.Equal(t, 1, removed)
	assert.Equal(t, SevCritical, out[0].Severity)
	assert.Equal(t, ScannerSecret, out[0].Scanner)
}

func TestDeduplicateDifferentCategorySameLineSurvives(t *testing.T) {
	loc := &Location{FilePath: "app/views.py", Line: 7}
	findings := []Finding{
		mustFinding(t, ScannerStaticAnalysis, "rule-a", "reflected xss", SevHigh, CategoryXSS, loc),
		mustFinding(t, ScannerStaticAnalysis, "rule-b", "shell call", SevHigh, CategoryCommandInjection, loc),
	}

	out, removed := Deduplicate(findings)
	assert.Len(t, out, 2)
	assert.Equal(t, 0, removed)
}

func TestDeduplicateUnlocatedFindingsKeyOnScannerAndID(t *testing.T) {
	a := mustFinding(t, ScannerDependency, "CVE-2023-0001", "requests 2.1.0: CVE-2023-0001", SevHigh, CategoryVulnerableDep, nil)
	b := mustFinding(t, ScannerDependency, "CVE-2023-0002", "flask 1.0.0: CVE-2023-0002", SevHigh, CategoryVulnerableDep, nil)
	dup := mustFinding(t, ScannerDependency, "CVE-2023-0001", "requests 2.1.0: CVE-2023-0001", SevHigh, CategoryVulnerableDep, nil)

	out, removed := Deduplicate([]Finding{a, b, dup})
	assert.Len(t, out, 2)
	assert.Equal(t, 1, removed)
}

func TestDeduplicatePreservesFirstOccurrenceOrder(t *testing.T) {
	f1 := mustFinding(t, ScannerStaticAnalysis, "r1", "first", SevLow, CategoryOther, &Location{FilePath: "a.py", Line: 1})
	f2 := mustFinding(t, ScannerStaticAnalysis, "r2", "second", SevLow, CategoryOther, &Location{FilePath: "b.py", Line: 2})
	f3 := mustFinding(t, ScannerStaticAnalysis, "r3", "third", SevLow, CategoryOther, &Location{FilePath: "c.py", Line: 3})

	out, _ := Deduplicate([]Finding{f1, f2, f3})
	require.Len(t, out, 3)
	assert.Equal(t, "first", out[0].Title)
	assert.Equal(t, "second", out[1].Title)
	assert.Equal(t, "third", out[2].Title)
}

func TestDeduplicateIdempotent(t *testing.T) {
	loc := &Location{FilePath: "app/auth.py", Line: 10}
	findings := []Finding{
		mustFinding(t, ScannerStaticAnalysis, "rule-a", "hardcoded password", SevHigh, CategoryHardcodedSecret, loc),
		mustFinding(t, ScannerSecret, "Generic Secret", "secret detected", SevCritical, CategoryHardcodedSecret, loc),
		mustFinding(t, ScannerDependency, "CVE-2024-1234", "lib: CVE-2024-1234", SevMedium, CategoryVulnerableDep, nil),
	}

	once, removedOnce := Deduplicate(findings)
	twice, removedTwice := Deduplicate(once)

	assert.Equal(t, 1, removedOnce)
	assert.Equal(t, 0, removedTwice)
	assert.Equal(t, once, twice)
}
