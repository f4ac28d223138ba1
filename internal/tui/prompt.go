// Package tui implements the terminal prompts: a text input and a yes/no
// confirmation with a countdown, drawn with bubbletea and lipgloss.
package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user aborts a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the user questions.
type Prompter interface {
	// Input returns the text typed by the user, or "" to accept placeholder.
	Input(ctx context.Context, label, placeholder string) (string, error)
	// Confirm returns the yes/no answer. A positive timeout answers def once
	// it expires; zero waits forever.
	Confirm(ctx context.Context, label string, timeout time.Duration, def bool) (bool, error)
}

// NewPrompter returns a TerminalPrompter when in is a terminal and a
// LinePrompter otherwise. Prompts are drawn on out.
func NewPrompter(in *os.File, out io.Writer) Prompter {
	if IsTerminal(in) {
		return &TerminalPrompter{In: in, Out: out}
	}

	return NewLinePrompter(in, out)
}

// TerminalPrompter runs a small inline bubbletea program per question.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p *TerminalPrompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.In),
		tea.WithOutput(p.Out))

	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("running prompt: %w", err)
	}

	return final, nil
}

// Input asks for one line of text.
func (p *TerminalPrompter) Input(ctx context.Context, label, placeholder string) (string, error) {
	final, err := p.run(ctx, newInputModel(label, placeholder))
	if err != nil {
		return "", err
	}

	m, ok := final.(inputModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type %T", final)
	}

	if m.aborted {
		return "", ErrAborted
	}

	return m.value(), nil
}

// Confirm asks a yes/no question.
func (p *TerminalPrompter) Confirm(ctx context.Context, label string, timeout time.Duration, def bool) (bool, error) {
	final, err := p.run(ctx, newConfirmModel(label, timeout, def))
	if err != nil {
		return false, err
	}

	m, ok := final.(confirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected model type %T", final)
	}

	if m.aborted {
		return false, ErrAborted
	}

	return m.answer, nil
}

// LinePrompter reads answers line by line, for pipes and tests. End of
// input answers every question with its default.
type LinePrompter struct {
	out   io.Writer
	in    io.Reader
	lines chan string
	once  sync.Once
}

// NewLinePrompter creates a LinePrompter reading in and writing prompts to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: in, out: out, lines: make(chan string)}
}

func (p *LinePrompter) start() {
	p.once.Do(func() {
		go func() {
			sc := bufio.NewScanner(p.in)
			for sc.Scan() {
				p.lines <- sc.Text()
			}
			close(p.lines)
		}()
	})
}

// readLine waits for the next line. ok is false on end of input or timeout.
func (p *LinePrompter) readLine(ctx context.Context, timeout time.Duration) (line string, ok bool, err error) {
	p.start()

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case line, ok = <-p.lines:
		return strings.TrimSpace(line), ok, nil
	case <-expired:
		fmt.Fprintln(p.out)
		return "", false, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

// Input prints "label [placeholder]: " and reads one line.
func (p *LinePrompter) Input(ctx context.Context, label, placeholder string) (string, error) {
	if placeholder != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, placeholder)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	line, _, err := p.readLine(ctx, 0)

	return line, err
}

// Confirm prints "label [y/N]: " and reads one line.
func (p *LinePrompter) Confirm(ctx context.Context, label string, timeout time.Duration, def bool) (bool, error) {
	fmt.Fprintf(p.out, "%s %s: ", label, yesNoHint(def))

	line, ok, err := p.readLine(ctx, timeout)
	if err != nil || !ok {
		return def, err
	}

	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return def, nil
	}
}
