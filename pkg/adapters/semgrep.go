package adapters

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/secureflow/pkg/engine"
)

type semgrepEnvelope struct {
	Results []json.RawMessage `json:"results"`
}

type semgrepResult struct {
	CheckID string `json:"check_id"`
	Path    string `json:"path"`
	Start   struct {
		Line int `json:"line"`
	} `json:"start"`
	Extra struct {
		Message  string `json:"message"`
		Severity string `json:"severity"` // ERROR|WARNING|INFO
		Metadata struct {
			Category string `json:"category"`
		} `json:"metadata"`
	} `json:"extra"`
}

// ParseSemgrep converts semgrep --json output into findings. Records are
// decoded one at a time so a single malformed entry is skipped and counted
// instead of losing the whole payload.
func ParseSemgrep(raw []byte, target string) ([]engine.Finding, int, error) {
	var doc semgrepEnvelope
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, 0, fmt.Errorf("semgrep output is not valid JSON: %w", err)
	}

	out := make([]engine.Finding, 0, len(doc.Results))
	skipped := 0
	for _, rec := range doc.Results {
		var r semgrepResult
		if err := json.Unmarshal(rec, &r); err != nil || r.CheckID == "" {
			skipped++
			continue
		}

		var loc *engine.Location
		if r.Path != "" {
			loc = &engine.Location{
				FilePath: filepath.ToSlash(r.Path),
				Line:     safeLine(r.Start.Line),
			}
		}

		title := r.Extra.Message
		if title == "" {
			title = r.CheckID
		}

		f, err := engine.NewFinding(
			engine.ScannerStaticAnalysis,
			r.CheckID,
			title,
			r.Extra.Message,
			engine.NormalizeSeverity(engine.ScannerStaticAnalysis, r.Extra.Severity),
			semgrepCategory(r.CheckID, r.Extra.Metadata.Category),
			loc,
			rawRecord(rec),
		)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, f)
	}
	return out, skipped, nil
}

// semgrepCategory maps a rule id (e.g. python.lang.security.audit.sqli) onto
// the controlled vocabulary by substring. The metadata category is only a
// hint; rule ids are far more specific.
func semgrepCategory(checkID, metaCategory string) string {
	id := strings.ToLower(checkID)
	switch {
	case strings.Contains(id, "sqli"), strings.Contains(id, "sql-injection"), strings.Contains(id, "sql_injection"):
		return engine.CategorySQLInjection
	case strings.Contains(id, "xss"), strings.Contains(id, "cross-site"):
		return engine.CategoryXSS
	case strings.Contains(id, "command"), strings.Contains(id, "subprocess"), strings.Contains(id, "shell"), strings.Contains(id, "exec"):
		return engine.CategoryCommandInjection
	case strings.Contains(id, "traversal"):
		return engine.CategoryPathTraversal
	case strings.Contains(id, "secret"), strings.Contains(id, "hardcoded"), strings.Contains(id, "password"):
		return engine.CategoryHardcodedSecret
	case strings.Contains(id, "config"):
		return engine.CategoryMisconfiguration
	}
	if strings.EqualFold(metaCategory, "misconfiguration") {
		return engine.CategoryMisconfiguration
	}
	return engine.CategoryOther
}
