package adapters

import (
	"encoding/json"
	"fmt"

	"github.com/user/secureflow/pkg/engine"
)

type trivyEnvelope struct {
	Results []struct {
		Target          string            `json:"Target"`
		Vulnerabilities []json.RawMessage `json:"Vulnerabilities"`
	} `json:"Results"`
}

type trivyVulnerability struct {
	VulnerabilityID  string `json:"VulnerabilityID"`
	PkgName          string `json:"PkgName"`
	InstalledVersion string `json:"InstalledVersion"`
	FixedVersion     string `json:"FixedVersion"`
	Severity         string `json:"Severity"`
	Title            string `json:"Title"`
	Description      string `json:"Description"`
	PrimaryURL       string `json:"PrimaryURL"`
}

// ParseTrivy converts trivy --format json vulnerability output into findings.
// Dependency findings have no single line, so Location stays nil and dedup
// falls back to the scanner-scoped id.
func ParseTrivy(raw []byte, target string) ([]engine.Finding, int, error) {
	var doc trivyEnvelope
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, 0, fmt.Errorf("trivy output is not valid JSON: %w", err)
	}

	var out []engine.Finding
	skipped := 0
	for _, res := range doc.Results {
		for _, rec := range res.Vulnerabilities {
			var v trivyVulnerability
			if err := json.Unmarshal(rec, &v); err != nil || v.VulnerabilityID == "" {
				skipped++
				continue
			}

			title := v.Title
			if title == "" {
				title = v.VulnerabilityID
			}
			title = fmt.Sprintf("%s %s: %s", v.PkgName, v.InstalledVersion, title)

			desc := v.Description
			if v.FixedVersion != "" {
				desc = fmt.Sprintf("Fixed in %s. %s", v.FixedVersion, desc)
			}

			f, err := engine.NewFinding(
				engine.ScannerDependency,
				v.VulnerabilityID,
				title,
				desc,
				engine.NormalizeSeverity(engine.ScannerDependency, v.Severity),
				engine.CategoryVulnerableDep,
				nil,
				rawRecord(rec),
			)
			if err != nil {
				skipped++
				continue
			}
			out = append(out, f)
		}
	}
	return out, skipped, nil
}
