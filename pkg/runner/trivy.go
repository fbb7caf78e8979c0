package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// RunTrivy executes a filesystem vulnerability scan with JSON output.
func RunTrivy(ctx context.Context, target string) ([]byte, error) {
	if _, err := exec.LookPath("trivy"); err != nil {
		return nil, fmt.Errorf("trivy binary not found: %w", err)
	}

	cmd := exec.CommandContext(ctx, "trivy", "fs", "--format", "json", "--scanners", "vuln", target)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil && stdout.Len() == 0 {
		return nil, fmt.Errorf("trivy failed: %w\nstderr: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}
