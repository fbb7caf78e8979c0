// Package render prints a scan report to a terminal. It only reads the
// report; all aggregation decisions happen before it is called.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/user/secureflow/pkg/engine"
)

const (
	colorRed    = "\033[91m"
	colorYellow = "\033[93m"
	colorBlue   = "\033[94m"
	colorGreen  = "\033[92m"
	colorBold   = "\033[1m"
	colorReset  = "\033[0m"
)

// DefaultLimit caps the findings table unless the caller asks for all.
const DefaultLimit = 20

func severityColor(s engine.Severity) string {
	switch s {
	case engine.SevCritical:
		return colorRed
	case engine.SevHigh:
		return colorYellow
	case engine.SevMedium:
		return colorBlue
	default:
		return colorGreen
	}
}

// Report renders the full severity-colored report. showAll lifts the
// DefaultLimit cap on the findings table; it never changes the counts.
func Report(w io.Writer, r *engine.ScanReport, showAll bool) {
	printBanner(w)

	fmt.Fprintf(w, "  Target:     %s\n", r.Target)
	fmt.Fprintf(w, "  Started:    %s\n", r.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Finished:   %s\n", r.FinishedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Scanners:   %s\n", scannerList(r.ScannersRun))
	if len(r.ScannersFailed) > 0 {
		fmt.Fprintf(w, "  %sFailed:     %s%s\n", colorRed, scannerList(r.ScannersFailed), colorReset)
	}
	fmt.Fprintf(w, "\n")

	printSummary(w, r.Summary)
	printFindings(w, r.Findings, showAll)
	printRecommendations(w, r.Recommendations)
}

func printBanner(w io.Writer) {
	fmt.Fprintf(w, "\n%s%s=============================================================\n", colorBold, colorBlue)
	fmt.Fprintf(w, "            SECUREFLOW :: UNIFIED SECURITY REPORT\n")
	fmt.Fprintf(w, "=============================================================%s\n\n", colorReset)
}

func printSummary(w io.Writer, s engine.Summary) {
	fmt.Fprintf(w, "  Total Findings: %d", s.Total)
	if s.DuplicatesRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", s.DuplicatesRemoved)
	}
	if s.SkippedRecords > 0 {
		fmt.Fprintf(w, " (%d unparsable records skipped)", s.SkippedRecords)
	}
	fmt.Fprintf(w, "\n\n  By Severity:\n")
	for _, sev := range engine.AllSeverities() {
		fmt.Fprintf(w, "    %s%-8s%s %d\n", severityColor(sev), sev, colorReset, s.BySeverity[sev])
	}

	if len(s.ByScanner) > 0 {
		fmt.Fprintf(w, "\n  By Scanner:\n")
		for _, sc := range engine.AllScanners() {
			if n, ok := s.ByScanner[sc]; ok {
				fmt.Fprintf(w, "    %-16s %d\n", sc, n)
			}
		}
	}
	fmt.Fprintf(w, "\n")
}

func printFindings(w io.Writer, findings []engine.Finding, showAll bool) {
	if len(findings) == 0 {
		return
	}

	limit := len(findings)
	if !showAll && limit > DefaultLimit {
		limit = DefaultLimit
	}

	fmt.Fprintf(w, "  --- FINDINGS ---\n\n")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  SEVERITY\tSCANNER\tCATEGORY\tLOCATION\tTITLE\n")
	fmt.Fprintf(tw, "  --------\t-------\t--------\t--------\t-----\n")
	for _, f := range findings[:limit] {
		title := f.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(tw, "  %s%s%s\t%s\t%s\t%s\t%s\n",
			severityColor(f.Severity), f.Severity, colorReset,
			f.Scanner, f.Category, locationString(f.Location), title)
	}
	tw.Flush()

	if limit < len(findings) {
		fmt.Fprintf(w, "\n  ... and %d more (use --all to show everything)\n", len(findings)-limit)
	}
	fmt.Fprintf(w, "\n")
}

func printRecommendations(w io.Writer, recs []string) {
	fmt.Fprintf(w, "  --- RECOMMENDATIONS ---\n\n")
	for _, rec := range recs {
		fmt.Fprintf(w, "  * %s\n", rec)
	}
	fmt.Fprintf(w, "\n")
}

func locationString(loc *engine.Location) string {
	if loc == nil {
		return "-"
	}
	if loc.Line > 0 {
		return fmt.Sprintf("%s:%d", loc.FilePath, loc.Line)
	}
	return loc.FilePath
}

func scannerList(scanners []engine.Scanner) string {
	if len(scanners) == 0 {
		return "none"
	}
	parts := make([]string, len(scanners))
	for i, s := range scanners {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
