package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/secureflow/pkg/engine"
)

// End-to-end aggregation over real adapter payloads.

func TestAggregateSemgrepAndTruffleHog(t *testing.T) {
	semgrep := `{
  "results": [
    {
      "check_id": "python.lang.security.audit.sqli.formatted-query",
      "path": "app/db.py",
      "start": {"line": 42},
      "extra": {"message": "Possible SQL injection", "severity": "ERROR"}
    }
  ]
}`
	trufflehog := "~~~~~~~~~~~~~~~~~~~~~\n" +
		"Reason: AWS API Key\n" +
		"Filepath: .env\n" +
		"~~~~~~~~~~~~~~~~~~~~~\n"

	inputs := map[engine.Scanner][]byte{
		engine.ScannerStaticAnalysis: []byte(semgrep),
		engine.ScannerSecret:         []byte(trufflehog),
	}

	report, err := engine.Aggregate("proj", time.Now(), time.Now(), inputs, Registry())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.BySeverity[engine.SevCritical])
	assert.Equal(t, 1, report.Summary.BySeverity[engine.SevHigh])
	assert.Equal(t, 1, report.Summary.ByCategory[engine.CategorySQLInjection])
	assert.Equal(t, 1, report.Summary.ByCategory[engine.CategoryHardcodedSecret])
	assert.Equal(t, 0, report.Summary.DuplicatesRemoved)
	assert.Equal(t, []engine.Scanner{engine.ScannerStaticAnalysis, engine.ScannerSecret}, report.ScannersRun)
}

func TestAggregateCollapsesSameLineSameCategory(t *testing.T) {
	// Two rules firing on the same hardcoded credential describe one issue.
	semgrep := `{
  "results": [
    {
      "check_id": "python.lang.security.audit.hardcoded-password",
      "path": "app/auth.py",
      "start": {"line": 10},
      "extra": {"message": "Hardcoded password detected", "severity": "ERROR"}
    },
    {
      "check_id": "generic.secrets.hardcoded-credential",
      "path": "app/auth.py",
      "start": {"line": 10},
      "extra": {"message": "Credential assigned to variable", "severity": "WARNING"}
    }
  ]
}`

	inputs := map[engine.Scanner][]byte{engine.ScannerStaticAnalysis: []byte(semgrep)}

	report, err := engine.Aggregate("proj", time.Now(), time.Now(), inputs, Registry())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.DuplicatesRemoved)
	require.Len(t, report.Findings, 1)
	// The ERROR-severity record wins the collision.
	assert.Equal(t, engine.SevCritical, report.Findings[0].Severity)
}

func TestAggregateFailedScannerDoesNotAbortOthers(t *testing.T) {
	inputs := map[engine.Scanner][]byte{
		engine.ScannerStaticAnalysis: []byte("semgrep crashed: traceback"),
		engine.ScannerDependency:     []byte(`{"Results": []}`),
	}

	report, err := engine.Aggregate("proj", time.Now(), time.Now(), inputs, Registry())
	require.NoError(t, err)

	assert.Equal(t, []engine.Scanner{engine.ScannerStaticAnalysis}, report.ScannersFailed)
	assert.Equal(t, []engine.Scanner{engine.ScannerDependency}, report.ScannersRun)
	assert.Equal(t, 0, report.Summary.Total)
}
