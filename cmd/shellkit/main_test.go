package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AntoineGS/shellkit/internal/explorer"
	"github.com/AntoineGS/shellkit/internal/platform"
	"github.com/AntoineGS/shellkit/internal/tui"
)

// execute runs the root command with args against an isolated home directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())

	configPath, verbose, treeDepth = "", false, 0
	initOutput, dryRun, lazyRefresh = "", false, false
	previewDepthFile, previewDir = "", "."
	cfg = nil

	cmd := newRootCmd()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return buf.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestMapExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ExitCode
	}{
		{"nil", nil, ExitSuccess},
		{"cancelled", explorer.ErrCancelled, ExitCancelled},
		{"wrapped cancel", fmt.Errorf("pick: %w", explorer.ErrCancelled), ExitCancelled},
		{"prompt aborted", tui.ErrAborted, ExitCancelled},
		{"context cancelled", context.Canceled, ExitCancelled},
		{"missing fzf", &platform.DependencyError{Name: "fzf"}, ExitMissingDependency},
		{"empty selection", explorer.ErrEmptySelection, ExitGeneral},
		{"other", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapExitCode(tt.err); got != tt.want {
				t.Errorf("mapExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestReported(t *testing.T) {
	if !reported(explorer.ErrEmptySelection) {
		t.Error("empty selection is printed by the explorer")
	}

	if reported(&platform.DependencyError{Name: "fzf"}) {
		t.Error("missing dependency is printed by main")
	}
}

type abortingPrompter struct {
	err error
}

func (p abortingPrompter) Input(context.Context, string, string) (string, error) {
	return "", p.err
}

func (p abortingPrompter) Confirm(context.Context, string, time.Duration, bool) (bool, error) {
	return false, p.err
}

func TestAbortAsCancel(t *testing.T) {
	p := abortAsCancel{abortingPrompter{err: tui.ErrAborted}}

	_, err := p.Input(context.Background(), "Tree depth", "6")
	if !errors.Is(err, explorer.ErrCancelled) || !errors.Is(err, tui.ErrAborted) {
		t.Errorf("Input() error = %v, want ErrCancelled wrapping ErrAborted", err)
	}

	_, err = p.Confirm(context.Background(), "Save to file?", time.Second, false)
	if !errors.Is(err, explorer.ErrCancelled) {
		t.Errorf("Confirm() error = %v, want ErrCancelled", err)
	}

	if !reported(err) || mapExitCode(err) != ExitCancelled {
		t.Errorf("aborted prompt: reported = %v, exit = %d", reported(err), mapExitCode(err))
	}

	other := errors.New("terminal gone")
	if _, err := (abortAsCancel{abortingPrompter{err: other}}).Input(context.Background(), "x", ""); err != other {
		t.Errorf("Input() error = %v, want it unchanged", err)
	}
}

func TestPreviewCommand(t *testing.T) {
	got := previewCommand("/usr/local/bin/shellkit", "/tmp/shellkit-depth.42", "/home/me/my project")
	want := "/usr/local/bin/shellkit preview --depth-file /tmp/shellkit-depth.42 --dir '/home/me/my project' {}"

	if got != want {
		t.Errorf("previewCommand() = %q, want %q", got, want)
	}
}

func TestAliasesCommand(t *testing.T) {
	t.Run("all aliases sorted", func(t *testing.T) {
		out, err := execute(t, "aliases")
		if err != nil {
			t.Fatalf("aliases error = %v", err)
		}

		if !strings.Contains(out, "ll   ls -lah\n") {
			t.Errorf("output missing ll alias:\n%s", out)
		}

		if strings.Index(out, "gd ") > strings.Index(out, "gs ") {
			t.Errorf("aliases not sorted:\n%s", out)
		}
	})

	t.Run("fuzzy query", func(t *testing.T) {
		out, err := execute(t, "aliases", "ll")
		if err != nil {
			t.Fatalf("aliases error = %v", err)
		}

		if out != "ll  ls -lah\n" {
			t.Errorf("aliases ll = %q", out)
		}
	})

	t.Run("no match", func(t *testing.T) {
		_, err := execute(t, "aliases", "zzz")
		if err == nil || !strings.Contains(err.Error(), "no alias matches") {
			t.Errorf("aliases zzz error = %v", err)
		}
	})
}

func TestInitCommand(t *testing.T) {
	t.Run("prints script", func(t *testing.T) {
		out, err := execute(t, "init", "bash")
		if err != nil {
			t.Fatalf("init error = %v", err)
		}

		if !strings.Contains(out, "alias ll='ls -lah'") {
			t.Errorf("script missing alias:\n%s", out)
		}
	})

	t.Run("unsupported shell", func(t *testing.T) {
		if _, err := execute(t, "init", "tcsh"); err == nil {
			t.Error("init tcsh error = nil")
		}
	})

	t.Run("output file is written once", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "init.zsh")

		out, err := execute(t, "init", "zsh", "--output", path)
		if err != nil {
			t.Fatalf("init error = %v", err)
		}

		if !strings.Contains(out, "Wrote "+path) {
			t.Errorf("output = %q", out)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}

		if !strings.Contains(string(data), "alias ll='ls -lah'") {
			t.Errorf("written script missing alias:\n%s", data)
		}

		out, err = execute(t, "init", "zsh", "-o", path)
		if err != nil {
			t.Fatalf("second init error = %v", err)
		}

		if !strings.Contains(out, "is up to date") {
			t.Errorf("second run output = %q", out)
		}
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "init.zsh")

		out, err := execute(t, "init", "zsh", "-o", path, "--dry-run")
		if err != nil {
			t.Fatalf("init error = %v", err)
		}

		if !strings.Contains(out, "+ ") {
			t.Errorf("dry run should show a diff, got %q", out)
		}

		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("dry run created %s", path)
		}
	})
}

func TestInstallCommand(t *testing.T) {
	home := t.TempDir()

	run := func() string {
		t.Helper()

		configPath, verbose, cfg = "", false, nil
		t.Setenv("HOME", home)

		cmd := newRootCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs([]string{"install", "bash"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("install error = %v", err)
		}

		return buf.String()
	}

	if out := run(); !strings.Contains(out, "Added shellkit hook") {
		t.Errorf("first install = %q", out)
	}

	if out := run(); !strings.Contains(out, "already present") {
		t.Errorf("second install = %q", out)
	}

	data, err := os.ReadFile(filepath.Join(home, ".bashrc"))
	if err != nil {
		t.Fatal(err)
	}

	if n := strings.Count(string(data), "# shellkit shell integration"); n != 1 {
		t.Errorf("hook marker appears %d times, want 1", n)
	}
}

func TestTreeCommand_BuiltinDiagram(t *testing.T) {
	configFile := writeConfig(t, "tools:\n  tree: shellkit-test-no-such-tree\n")

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "src", "app"), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module x\n"), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "tree", dir, "-L", "1", "--config", configFile)
	if err != nil {
		t.Fatalf("tree error = %v", err)
	}

	want := dir + "\n├── src/\n└── go.mod\n"
	if out != want {
		t.Errorf("tree = %q, want %q", out, want)
	}
}

func TestPreviewCommand_File(t *testing.T) {
	configFile := writeConfig(t, "tools:\n  bat: shellkit-test-no-such-bat\nexplorer:\n  preview_lines: 1\n")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("first\nsecond\n"), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "preview", "--dir", dir, "--config", configFile, "📄 notes.txt")
	if err != nil {
		t.Fatalf("preview error = %v", err)
	}

	if out != "first\n" {
		t.Errorf("preview = %q", out)
	}
}

func TestLazyCommand_UnknownTool(t *testing.T) {
	_, err := execute(t, "lazy", "rustup")
	if err == nil || !strings.Contains(err.Error(), `unknown lazy tool "rustup"`) {
		t.Errorf("lazy rustup error = %v", err)
	}
}

func TestInvalidConfig(t *testing.T) {
	configFile := writeConfig(t, "shell: tcsh\n")

	if _, err := execute(t, "aliases", "--config", configFile); err == nil {
		t.Error("expected validation error for unsupported shell")
	}
}
