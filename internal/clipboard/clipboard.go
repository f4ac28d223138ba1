// Package clipboard copies text to the system clipboard, falling back to the
// OSC52 terminal escape sequence when no clipboard program is reachable.
package clipboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/AntoineGS/shellkit/internal/platform"
	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Writer places text on a clipboard.
type Writer interface {
	Copy(text string) error
}

// CommandWriter pipes text to the standard input of a program.
type CommandWriter struct {
	Argv []string
}

// Copy runs the program with text on stdin.
func (w *CommandWriter) Copy(text string) error {
	if len(w.Argv) == 0 {
		return fmt.Errorf("clipboard command is empty")
	}

	if err := platform.Require(w.Argv[0]); err != nil {
		return err
	}

	cmd := exec.CommandContext(context.Background(), w.Argv[0], w.Argv[1:]...) //nolint:gosec // argv from user config
	cmd.Stdin = strings.NewReader(text)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", w.Argv[0], err, msg)
		}

		return fmt.Errorf("%s: %w", w.Argv[0], err)
	}

	return nil
}

func (w *CommandWriter) String() string {
	return strings.Join(w.Argv, " ")
}

// SystemWriter uses the platform clipboard through atotto/clipboard
// (pbcopy, wl-copy, xclip, xsel or the Windows API).
type SystemWriter struct{}

// Copy writes text to the system clipboard.
func (SystemWriter) Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing system clipboard: %w", err)
	}

	return nil
}

func (SystemWriter) String() string {
	return "system"
}

// OSC52Writer asks the terminal emulator to set its clipboard. It works over
// SSH and inside tmux.
type OSC52Writer struct {
	Out  io.Writer
	Tmux bool
}

// Copy emits the OSC52 sequence carrying text.
func (w *OSC52Writer) Copy(text string) error {
	seq := osc52.New(text)
	if w.Tmux {
		seq = seq.Tmux()
	}

	if _, err := seq.WriteTo(w.Out); err != nil {
		return fmt.Errorf("writing osc52 sequence: %w", err)
	}

	return nil
}

func (w *OSC52Writer) String() string {
	return "osc52"
}

// New picks a clipboard writer: the configured command when argv is set,
// clip.exe under WSL, the system clipboard when a display and a clipboard
// program exist, and OSC52 on out otherwise.
func New(argv []string, plat *platform.Platform, out io.Writer) Writer {
	if len(argv) > 0 {
		return &CommandWriter{Argv: argv}
	}

	if plat.IsWSL && platform.IsCommandAvailable("clip.exe") {
		return &CommandWriter{Argv: []string{"clip.exe"}}
	}

	if plat.HasDisplay && !clipboard.Unsupported && !plat.IsSSH {
		return SystemWriter{}
	}

	return &OSC52Writer{Out: out, Tmux: os.Getenv("TMUX") != ""}
}
