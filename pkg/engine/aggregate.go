package engine

import (
	"bytes"
	"errors"
	"time"

	"github.com/google/uuid"
)

// AdapterFunc is the contract every scanner adapter honors: raw tool output
// in, ordered findings out, plus a count of malformed records it skipped.
// The error return is reserved for payload-level failure (the whole output
// is unparsable); a single bad record must never abort the adapter.
type AdapterFunc func(raw []byte, target string) ([]Finding, int, error)

// Summary holds the derived statistics for one report. It is computed in one
// pass over the deduplicated findings and never mutated afterwards.
type Summary struct {
	Total             int              `json:"total"`
	BySeverity        map[Severity]int `json:"by_severity"`
	ByCategory        map[string]int   `json:"by_category"`
	ByScanner         map[Scanner]int  `json:"by_scanner"`
	DuplicatesRemoved int              `json:"duplicates_removed"`
	SkippedRecords    int              `json:"skipped_records"`
}

// ScanReport is the immutable aggregate of one scan run. A later scan
// produces a brand-new report; nothing mutates a prior one.
type ScanReport struct {
	ID              string    `json:"id"`
	Target          string    `json:"target"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	ScannersRun     []Scanner `json:"scanners_run"`
	ScannersFailed  []Scanner `json:"scanners_failed,omitempty"`
	Findings        []Finding `json:"findings"`
	Summary         Summary   `json:"summary"`
	Recommendations []string  `json:"recommendations"`
}

// ErrNoInput is returned when there is nothing at all to aggregate. Every
// partial-success path returns a best-effort report instead.
var ErrNoInput = errors.New("no scanner output to aggregate")

// Aggregate runs each adapter that has input, concatenates the results in
// canonical scanner order, deduplicates, and assembles the report.
//
// A scanner whose payload is byte-empty or fails at the payload level is
// marked failed and contributes zero findings; "ran and found nothing" (a
// parseable payload with no records) stays in ScannersRun. Only a total
// absence of input is an error.
func Aggregate(target string, started, finished time.Time, inputs map[Scanner][]byte, adapters map[Scanner]AdapterFunc) (*ScanReport, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}

	var all []Finding
	var run, failed []Scanner
	skipped := 0

	for _, sc := range AllScanners() {
		raw, ok := inputs[sc]
		if !ok {
			continue
		}
		adapter := adapters[sc]
		if adapter == nil || len(bytes.TrimSpace(raw)) == 0 {
			failed = append(failed, sc)
			continue
		}
		findings, skippedHere, err := adapter(raw, target)
		if err != nil {
			failed = append(failed, sc)
			continue
		}
		run = append(run, sc)
		skipped += skippedHere
		all = append(all, findings...)
	}

	deduped, removed := Deduplicate(all)
	summary := Summarize(deduped, removed, skipped)

	return &ScanReport{
		ID:              uuid.NewString(),
		Target:          target,
		StartedAt:       started,
		FinishedAt:      finished,
		ScannersRun:     run,
		ScannersFailed:  failed,
		Findings:        deduped,
		Summary:         summary,
		Recommendations: Recommendations(summary),
	}, nil
}

// Summarize computes the severity/category/scanner histograms in a single
// pass. The severity map always carries all four levels so renderers never
// see a missing key.
func Summarize(findings []Finding, duplicatesRemoved, skippedRecords int) Summary {
	s := Summary{
		Total:             len(findings),
		BySeverity:        make(map[Severity]int, 4),
		ByCategory:        make(map[string]int),
		ByScanner:         make(map[Scanner]int),
		DuplicatesRemoved: duplicatesRemoved,
		SkippedRecords:    skippedRecords,
	}
	for _, sev := range AllSeverities() {
		s.BySeverity[sev] = 0
	}
	for _, f := range findings {
		s.BySeverity[f.Severity]++
		s.ByCategory[f.Category]++
		s.ByScanner[f.Scanner]++
	}
	return s
}
