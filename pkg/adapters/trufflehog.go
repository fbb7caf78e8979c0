package adapters

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/secureflow/pkg/engine"
)

// ParseTruffleHog converts trufflehog's line-oriented text output into
// findings. Records are separated by lines of tildes and carry colored
// "Key: value" pairs (Reason, Filepath, Date, Branch, Commit). Secrets with
// no explicit severity label are HIGH: a leaked credential is exploitable
// regardless of what leaked.
func ParseTruffleHog(raw []byte, target string) ([]engine.Finding, int, error) {
	text := stripANSI(string(raw))

	var out []engine.Finding
	skipped := 0
	for _, record := range splitTruffleRecords(text) {
		reason := record["Reason"]
		if reason == "" {
			skipped++
			continue
		}

		severity := engine.SevHigh
		if label, ok := record["Severity"]; ok {
			severity = engine.NormalizeSeverity(engine.ScannerSecret, label)
		}

		var loc *engine.Location
		if fp := record["Filepath"]; fp != "" {
			loc = &engine.Location{FilePath: filepath.ToSlash(fp)}
		}

		payload := make(map[string]interface{}, len(record))
		for k, v := range record {
			payload[k] = v
		}

		f, err := engine.NewFinding(
			engine.ScannerSecret,
			reason,
			fmt.Sprintf("Potential secret: %s", reason),
			truffleDescription(record),
			severity,
			engine.CategoryHardcodedSecret,
			loc,
			payload,
		)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, f)
	}
	return out, skipped, nil
}

// splitTruffleRecords walks the text once, starting a new record at each
// tilde separator and collecting Key: value lines into it.
func splitTruffleRecords(text string) []map[string]string {
	var records []map[string]string
	current := make(map[string]string)

	flush := func() {
		if len(current) > 0 {
			records = append(records, current)
			current = make(map[string]string)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "~~~~~") {
			flush()
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		current[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	flush()
	return records
}

func truffleDescription(record map[string]string) string {
	var parts []string
	for _, key := range []string{"Commit", "Branch", "Date"} {
		if v := record[key]; v != "" {
			parts = append(parts, fmt.Sprintf("%s %s", strings.ToLower(key), v))
		}
	}
	if len(parts) == 0 {
		return "High-entropy or pattern-matched string detected"
	}
	return "Detected in " + strings.Join(parts, ", ")
}
