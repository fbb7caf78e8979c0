package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// RunSemgrep executes semgrep with the automatic ruleset and JSON output.
// Semgrep writes findings to stdout and chatter to stderr; a non-zero exit
// with JSON on stdout still counts as success.
func RunSemgrep(ctx context.Context, target string) ([]byte, error) {
	if _, err := exec.LookPath("semgrep"); err != nil {
		return nil, fmt.Errorf("semgrep binary not found: %w", err)
	}

	cmd := exec.CommandContext(ctx, "semgrep", "scan", "--config=auto", "--json", target)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil && stdout.Len() == 0 {
		return nil, fmt.Errorf("semgrep failed: %w\nstderr: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}
