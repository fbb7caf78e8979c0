package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// RunTruffleHog executes a secret scan. TruffleHog exits non-zero when it
// finds secrets, so the exit code alone is not a failure signal; only an
// error with no output at all is.
func RunTruffleHog(ctx context.Context, target string) ([]byte, error) {
	if _, err := exec.LookPath("trufflehog"); err != nil {
		return nil, fmt.Errorf("trufflehog binary not found: %w", err)
	}

	cmd := exec.CommandContext(ctx, "trufflehog", "--regex", "--entropy=True", "--max_depth=50", target)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil && stdout.Len() == 0 {
		// Some versions print "No secrets found" on stderr and exit 1. A
		// clean scan still ran, so hand back parseable text rather than an
		// empty payload.
		if strings.Contains(stderr.String(), "No secrets") {
			return []byte("No secrets found.\n"), nil
		}
		return nil, fmt.Errorf("trufflehog failed: %w\nstderr: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}
