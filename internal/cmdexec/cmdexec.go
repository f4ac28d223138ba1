// Package cmdexec abstracts external command execution so callers can be tested
// with testutil.FakeCommander.
package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Commander runs an external program and returns its standard output.
type Commander interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// RealCommander executes actual external commands via os/exec.
type RealCommander struct {
	// Dir is the working directory; empty means the current one.
	Dir string
}

// Run executes the command. A non-zero exit is returned as an error carrying
// the program's trimmed standard error.
func (c *RealCommander) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // callers pass trusted argv
	cmd.Dir = c.Dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return out, fmt.Errorf("%s: %w: %s", name, err, msg)
			}
		}

		return out, fmt.Errorf("%s: %w", name, err)
	}

	return out, nil
}

// Quote returns s single-quoted for POSIX shells, for building command strings
// that another program hands to sh -c.
func Quote(s string) string {
	if s == "" {
		return "''"
	}

	if strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}

	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_./:=@%+,", r):
		return false
	}

	return true
}
