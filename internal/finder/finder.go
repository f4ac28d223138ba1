// Package finder drives an external multi-select fuzzy filter (fzf) and
// interprets its exit status.
package finder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/AntoineGS/shellkit/internal/platform"
)

// ErrFinderFailed is wrapped by every *ExitError.
var ErrFinderFailed = errors.New("fuzzy finder failed")

// Outcome distinguishes a confirmed selection from an explicit cancel.
type Outcome int

const (
	// Confirmed means the user accepted a (possibly empty) selection.
	Confirmed Outcome = iota
	// Cancelled means the user aborted the finder.
	Cancelled
)

func (o Outcome) String() string {
	if o == Cancelled {
		return "cancelled"
	}

	return "confirmed"
}

// Request describes one invocation of the finder.
type Request struct {
	Items   []string
	Prompt  string
	Header  string
	Preview string // shell command; {} is replaced with the focused item
	Multi   bool
}

// Result is what the user chose.
type Result struct {
	Selected []string
	Outcome  Outcome
}

// Finder presents items and returns the user's choice.
type Finder interface {
	Find(ctx context.Context, req Request) (Result, error)
}

// ExitError reports a finder exit status that is neither success nor cancel.
type ExitError struct {
	Stderr string
	Code   int
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%v: exit status %d: %s", ErrFinderFailed, e.Code, e.Stderr)
	}

	return fmt.Sprintf("%v: exit status %d", ErrFinderFailed, e.Code)
}

func (e *ExitError) Unwrap() error {
	return ErrFinderFailed
}

// Key bindings passed to fzf.
const (
	bindings     = "tab:toggle+down,shift-tab:toggle+up,ctrl-a:select-all,ctrl-d:deselect-all,esc:abort"
	layout       = "--layout=reverse"
	height       = "--height=80%"
	previewFrame = "right:50%:wrap"
)

// waitDelay bounds how long Find waits for fzf's output pipes to close after
// the context is done.
const waitDelay = 500 * time.Millisecond

// Exit statuses of fzf.
const (
	exitNoMatch   = 1
	exitInterrupt = 130
)

// Fzf runs the fzf binary.
type Fzf struct {
	logger *slog.Logger
	Binary string
}

// NewFzf returns an Fzf that runs binary, or "fzf" when binary is empty.
func NewFzf(binary string) *Fzf {
	if binary == "" {
		binary = "fzf"
	}

	return &Fzf{Binary: binary, logger: slog.Default()}
}

// WithLogger sets a custom logger
func (f *Fzf) WithLogger(logger *slog.Logger) *Fzf {
	f2 := *f
	f2.logger = logger

	return &f2
}

// Args builds the fzf argv for req, without the binary name.
func (f *Fzf) Args(req Request) []string {
	args := []string{layout, height, "--bind", bindings}

	if req.Multi {
		args = append(args, "--multi")
	}

	if req.Prompt != "" {
		args = append(args, "--prompt", req.Prompt)
	}

	if req.Header != "" {
		args = append(args, "--header", req.Header)
	}

	if req.Preview != "" {
		args = append(args, "--preview", req.Preview, "--preview-window", previewFrame)
	}

	return args
}

// Find pipes the items to fzf and parses the selected lines from its output.
// Exit status 0 is a confirmed selection, 1 and 130 are a cancel, anything
// else is an *ExitError. A context that ends while fzf runs is a cancel too. A missing binary yields a *platform.DependencyError.
func (f *Fzf) Find(ctx context.Context, req Request) (Result, error) {
	if err := platform.Require(f.Binary); err != nil {
		return Result{}, err
	}

	args := f.Args(req)
	f.logger.Debug("running finder",
		slog.String("binary", f.Binary),
		slog.Int("items", len(req.Items)),
		slog.Bool("multi", req.Multi))

	cmd := exec.CommandContext(ctx, f.Binary, args...) //nolint:gosec // binary from user config
	cmd.Stdin = strings.NewReader(strings.Join(req.Items, "\n") + "\n")
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		f.logger.Debug("finder interrupted", slog.String("reason", ctxErr.Error()))
		return Result{Outcome: Cancelled}, nil
	}

	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("running %s: %w", f.Binary, err)
		}

		code = exitErr.ExitCode()
	}

	f.logger.Debug("finder exited", slog.Int("code", code))

	switch code {
	case 0:
		return Result{Outcome: Confirmed, Selected: splitLines(stdout.String())}, nil
	case exitNoMatch, exitInterrupt:
		return Result{Outcome: Cancelled}, nil
	default:
		return Result{}, &ExitError{Code: code, Stderr: strings.TrimSpace(stderr.String())}
	}
}

// splitLines returns the non-empty lines of s.
func splitLines(s string) []string {
	var lines []string

	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
