package testutil

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"time"
)

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake programs are POSIX shell scripts")
	}
}

// run executes bin with stdin and returns stdout, stderr and the exit code.
func run(t *testing.T, bin, stdin string, args ...string) (string, string, int) {
	t.Helper()

	cmd := exec.CommandContext(context.Background(), bin, args...)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), stderr.String(), 0
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("running %s: %v", bin, err)
	}

	return stdout.String(), stderr.String(), exitErr.ExitCode()
}

func TestCreateMockBinary_FinderExitStatuses(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	tests := []struct {
		name       string
		code       int
		stdout     string
		stderr     string
		wantStdout string
	}{
		{name: "confirmed selection", code: 0, stdout: "📁 src", wantStdout: "📁 src\n"},
		{name: "no match", code: 1},
		{name: "interrupted", code: 130},
		{name: "fzf error", code: 2, stderr: "unknown option: --bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bin := CreateMockBinary(t, t.TempDir(), "fzf", tt.code, tt.stdout, tt.stderr)

			stdout, stderr, code := run(t, bin, "📁 src\n📄 README.md\n")

			if code != tt.code {
				t.Errorf("exit code = %d, want %d", code, tt.code)
			}

			if stdout != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantStdout)
			}

			if got := strings.TrimSpace(stderr); got != tt.stderr {
				t.Errorf("stderr = %q, want %q", got, tt.stderr)
			}
		})
	}
}

func TestCreateMockBinary_FoundOnPath(t *testing.T) {
	dir := t.TempDir()
	CreateMockBinary(t, dir, "tree", 0, "", "")

	name := "tree"
	if runtime.GOOS == "windows" {
		name = "tree.bat"
	}

	t.Setenv("PATH", PrependPath(t, dir))

	found, err := exec.LookPath(name)
	if err != nil {
		t.Fatalf("LookPath(%q) error = %v", name, err)
	}

	if !strings.HasPrefix(found, dir) {
		t.Errorf("LookPath(%q) = %q, want the fake in %s", name, found, dir)
	}
}

func TestCreateRecordingBinary_Finder(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()
	dir := t.TempDir()

	bin := CreateRecordingBinary(t, dir, "fzf", 0, "📄 README.md")

	stdout, _, code := run(t, bin, "📁 src\n📄 README.md\n", "--multi", "--prompt", "project> ")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}

	if stdout != "📄 README.md\n" {
		t.Errorf("stdout = %q", stdout)
	}

	args := RecordedArgs(t, dir, "fzf")
	if strings.Join(args, "|") != "--multi|--prompt|project> " {
		t.Errorf("RecordedArgs() = %q", args)
	}

	if got := RecordedStdin(t, dir, "fzf"); got != "📁 src\n📄 README.md\n" {
		t.Errorf("RecordedStdin() = %q", got)
	}
}

func TestCreateRecordingBinary_ClipboardReceivesTree(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()
	dir := t.TempDir()

	bin := CreateRecordingBinary(t, dir, "wl-copy", 0, "")
	tree := "project/\n├── 📁 src/\n├── 📄 README.md"

	if _, _, code := run(t, bin, tree); code != 0 {
		t.Fatalf("exit code = %d", code)
	}

	if got := RecordedStdin(t, dir, "wl-copy"); got != tree {
		t.Errorf("RecordedStdin() = %q, want %q", got, tree)
	}

	if args := RecordedArgs(t, dir, "wl-copy"); len(args) != 1 || args[0] != "" {
		t.Errorf("RecordedArgs() = %q, want no arguments", args)
	}
}

func TestCreateSlowBinary(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	bin := CreateSlowBinary(t, t.TempDir(), "fzf", 1)

	start := time.Now()
	if _, _, code := run(t, bin, ""); code != 0 {
		t.Fatalf("exit code = %d", code)
	}

	if elapsed := time.Since(start); elapsed < 900*time.Millisecond {
		t.Errorf("slow binary returned after %v, want about 1s", elapsed)
	}
}
