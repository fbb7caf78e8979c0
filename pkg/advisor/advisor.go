// Package advisor turns a scan report into remediation advice using an LLM
// provider. It is strictly additive: nothing here feeds back into the
// aggregation core, and the report is complete without it.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/secureflow/pkg/engine"
)

// Provider defines the interface for different AI models.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	ListModels(ctx context.Context) ([]string, error)
}

func NewProvider(ctx context.Context, providerName, apiKey, modelName string) (Provider, error) {
	switch providerName {
	case "gemini":
		return NewGeminiProvider(ctx, apiKey, modelName)
	case "openai":
		return NewOpenAIProvider(apiKey, modelName), nil
	case "anthropic":
		return NewAnthropicProvider(apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", providerName)
	}
}

// Advise asks the provider for prioritized remediation guidance.
func Advise(ctx context.Context, p Provider, report *engine.ScanReport) (string, error) {
	return p.Generate(ctx, BuildPrompt(report))
}

// BuildPrompt summarizes the report for the model. Only counts, categories
// and titles go out; raw tool payloads (which may contain matched secrets)
// never leave the machine.
func BuildPrompt(report *engine.ScanReport) string {
	var sb strings.Builder
	sb.WriteString("You are a security engineer. A scan of ")
	sb.WriteString(report.Target)
	sb.WriteString(" produced the following findings. Give prioritized, concrete remediation steps.\n\n")

	for _, sev := range engine.AllSeverities() {
		sb.WriteString(fmt.Sprintf("%s: %d\n", sev, report.Summary.BySeverity[sev]))
	}
	sb.WriteString("\nTop findings:\n")

	limit := len(report.Findings)
	if limit > 15 {
		limit = 15
	}
	for _, f := range report.Findings[:limit] {
		loc := ""
		if f.Location != nil {
			loc = fmt.Sprintf(" (%s:%d)", f.Location.FilePath, f.Location.Line)
		}
		sb.WriteString(fmt.Sprintf("- [%s] %s: %s%s\n", f.Severity, f.Category, f.Title, loc))
	}
	return sb.String()
}
