package engine

import "fmt"

// scannerPriority orders scanners for duplicate tie-breaking. Code and secret
// findings carry more local context than a dependency advisory, so they win
// when severities tie.
func scannerPriority(s Scanner) int {
	switch s {
	case ScannerStaticAnalysis:
		return 0
	case ScannerSecret:
		return 1
	case ScannerDependency:
		return 2
	}
	return 3
}

// dedupKey identifies the underlying issue a finding describes. Located
// findings collide on file+line+category regardless of which tool raised
// them; unlocated findings (dependency advisories) fall back to the
// scanner-scoped deterministic id.
func dedupKey(f Finding) string {
	if f.Location != nil {
		return fmt.Sprintf("loc|%s|%d|%s", f.Location.FilePath, f.Location.Line, f.Category)
	}
	return fmt.Sprintf("sig|%s|%s", f.Scanner, f.ID)
}

// Deduplicate collapses findings that describe the same underlying issue and
// reports how many were removed. On collision the higher canonical severity
// wins; a severity tie keeps the finding from the higher-priority scanner.
// Output order is the order of first occurrence, so the result is stable and
// running Deduplicate on its own output changes nothing.
func Deduplicate(findings []Finding) ([]Finding, int) {
	out := make([]Finding, 0, len(findings))
	index := make(map[string]int, len(findings))
	removed := 0

	for _, f := range findings {
		key := dedupKey(f)
		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, f)
			continue
		}
		removed++
		kept := out[i]
		if f.Severity.Weight() > kept.Severity.Weight() {
			out[i] = f
		} else if f.Severity.Weight() == kept.Severity.Weight() && scannerPriority(f.Scanner) < scannerPriority(kept.Scanner) {
			out[i] = f
		}
	}
	return out, removed
}
