package advisor

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/secureflow/pkg/engine"
)

type fakeProvider struct {
	prompt string
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return "advice", nil
}

func (f *fakeProvider) ListModels(ctx context.Context) ([]string, error) {
	return []string{"fake-model"}, nil
}

func buildReport(t *testing.T, n int) *engine.ScanReport {
	t.Helper()
	var findings []engine.Finding
	for i := 0; i < n; i++ {
		f, err := engine.NewFinding(
			engine.ScannerStaticAnalysis, "rules.sqli", fmt.Sprintf("SQL injection %d", i), "",
			engine.SevCritical, engine.CategorySQLInjection,
			&engine.Location{FilePath: "app/db.py", Line: i + 1},
			map[string]interface{}{"matched_secret": "AKIA-SHOULD-NOT-LEAK"},
		)
		require.NoError(t, err)
		findings = append(findings, f)
	}
	summary := engine.Summarize(findings, 0, 0)
	return &engine.ScanReport{
		Target:   "proj",
		Findings: findings,
		Summary:  summary,
	}
}

func TestBuildPromptContainsCountsAndFindings(t *testing.T) {
	prompt := BuildPrompt(buildReport(t, 2))

	assert.Contains(t, prompt, "proj")
	assert.Contains(t, prompt, "CRITICAL: 2")
	assert.Contains(t, prompt, "SQL injection 0")
	assert.Contains(t, prompt, "app/db.py:1")
}

func TestBuildPromptCapsFindings(t *testing.T) {
	prompt := BuildPrompt(buildReport(t, 30))
	assert.Equal(t, 15, strings.Count(prompt, "- ["))
}

func TestBuildPromptNeverIncludesRawPayload(t *testing.T) {
	prompt := BuildPrompt(buildReport(t, 3))
	assert.NotContains(t, prompt, "AKIA-SHOULD-NOT-LEAK")
}

func TestAdviseUsesProvider(t *testing.T) {
	p := &fakeProvider{}
	advice, err := Advise(context.Background(), p, buildReport(t, 1))
	require.NoError(t, err)
	assert.Equal(t, "advice", advice)
	assert.Contains(t, p.prompt, "security engineer")
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(context.Background(), "cohere", "key", "model")
	assert.Error(t, err)
}
