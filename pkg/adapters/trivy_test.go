package adapters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/secureflow/pkg/engine"
)

const trivySample = `{
  "Results": [
    {
      "Target": "requirements.txt",
      "Vulnerabilities": [
        {
          "VulnerabilityID": "CVE-2023-32681",
          "PkgName": "requests",
          "InstalledVersion": "2.25.0",
          "FixedVersion": "2.31.0",
          "Severity": "MEDIUM",
          "Title": "Unintended leak of Proxy-Authorization header",
          "Description": "Requests leaks Proxy-Authorization headers to destination servers."
        },
        {
          "VulnerabilityID": "CVE-2022-40897",
          "PkgName": "setuptools",
          "InstalledVersion": "56.0.0",
          "Severity": "HIGH",
          "Title": "ReDoS in package_index",
          "Description": "Regular expression denial of service."
        }
      ]
    },
    {
      "Target": "empty-target",
      "Vulnerabilities": []
    }
  ]
}`

func TestParseTrivy(t *testing.T) {
	findings, skipped, err := ParseTrivy([]byte(trivySample), "proj")
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, findings, 2)

	first := findings[0]
	assert.Equal(t, engine.ScannerDependency, first.Scanner)
	assert.Equal(t, "CVE-2023-32681", first.RuleID)
	assert.Equal(t, engine.SevMedium, first.Severity)
	assert.Equal(t, engine.CategoryVulnerableDep, first.Category)
	assert.Equal(t, "requests 2.25.0: Unintended leak of Proxy-Authorization header", first.Title)
	assert.True(t, strings.HasPrefix(first.Description, "Fixed in 2.31.0."))
	assert.Nil(t, first.Location)

	second := findings[1]
	assert.Equal(t, engine.SevHigh, second.Severity)
	// No FixedVersion, description stays as reported.
	assert.Equal(t, "Regular expression denial of service.", second.Description)
}

func TestParseTrivySkipsRecordsWithoutID(t *testing.T) {
	payload := `{
  "Results": [
    {
      "Target": "requirements.txt",
      "Vulnerabilities": [
        {"PkgName": "mystery", "Severity": "LOW"},
        {"VulnerabilityID": "CVE-2024-0001", "PkgName": "flask", "InstalledVersion": "1.0", "Severity": "CRITICAL"}
      ]
    }
  ]
}`
	findings, skipped, err := ParseTrivy([]byte(payload), "proj")
	require.NoError(t, err)
	assert.Len(t, findings, 1)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, engine.SevCritical, findings[0].Severity)
	// Title falls back to the vulnerability id when trivy supplies none.
	assert.Equal(t, "flask 1.0: CVE-2024-0001", findings[0].Title)
}

func TestParseTrivyInvalidPayload(t *testing.T) {
	_, _, err := ParseTrivy([]byte("FATAL: scan error"), "proj")
	assert.Error(t, err)
}

func TestParseTrivyEmptyResults(t *testing.T) {
	findings, skipped, err := ParseTrivy([]byte(`{"Results": []}`), "proj")
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Equal(t, 0, skipped)
}
