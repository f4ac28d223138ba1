// Package testutil provides helpers for tests that drive external programs.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// CreateMockBinary creates a fake executable in dir that writes stdout/stderr
// content and exits with the given code.
// On Unix: creates a shell script. On Windows: creates a .bat file.
// Returns the full path to the created binary.
func CreateMockBinary(t *testing.T, dir, name string, exitCode int, stdout, stderr string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		return createWindowsBat(t, dir, name, exitCode, stdout, stderr)
	}

	return writeScript(t, filepath.Join(dir, name), unixBody(exitCode, stdout, stderr, ""))
}

// CreateRecordingBinary is CreateMockBinary for Unix that additionally
// records its argv (one argument per line) to <dir>/<name>.args and its
// standard input to <dir>/<name>.stdin before producing output.
// Returns the path of the binary.
func CreateRecordingBinary(t *testing.T, dir, name string, exitCode int, stdout string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("recording binaries require a POSIX shell")
	}

	record := fmt.Sprintf("for a in \"$@\"; do printf '%%s\\n' \"$a\"; done > '%s'\ncat > '%s'\n",
		filepath.Join(dir, name+".args"), filepath.Join(dir, name+".stdin"))

	return writeScript(t, filepath.Join(dir, name), unixBody(exitCode, stdout, "", record))
}

// CreateSlowBinary creates a Unix fake executable that sleeps for seconds
// before exiting 0. The sleep runs as a child process that inherits the
// output pipes, like a program that leaves helpers behind when killed.
func CreateSlowBinary(t *testing.T, dir, name string, seconds int) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("slow binaries require a POSIX shell")
	}

	return writeScript(t, filepath.Join(dir, name), unixBody(0, "", "", fmt.Sprintf("sleep %d\n", seconds)))
}

// RecordedArgs returns the argv captured by a binary from CreateRecordingBinary.
func RecordedArgs(t *testing.T, dir, name string) []string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, name+".args")) //nolint:gosec // test file path is controlled
	if err != nil {
		t.Fatalf("reading recorded args for %s: %v", name, err)
	}

	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

// RecordedStdin returns the standard input captured by a binary from CreateRecordingBinary.
func RecordedStdin(t *testing.T, dir, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, name+".stdin")) //nolint:gosec // test file path is controlled
	if err != nil {
		t.Fatalf("reading recorded stdin for %s: %v", name, err)
	}

	return string(data)
}

func unixBody(exitCode int, stdout, stderr, prelude string) string {
	script := "#!/bin/sh\n" + prelude

	if stdout != "" {
		script += fmt.Sprintf("echo '%s'\n", stdout)
	}

	if stderr != "" {
		script += fmt.Sprintf("echo '%s' >&2\n", stderr)
	}

	return script + fmt.Sprintf("exit %d\n", exitCode)
}

func writeScript(t *testing.T, path, script string) string {
	t.Helper()

	if err := os.WriteFile(path, []byte(script), 0o755); err != nil { //nolint:gosec // test helper: mock binary must be executable
		t.Fatalf("failed to create mock binary %s: %v", filepath.Base(path), err)
	}

	return path
}

func createWindowsBat(t *testing.T, dir, name string, exitCode int, stdout, stderr string) string {
	t.Helper()

	script := "@echo off\r\n"

	if stdout != "" {
		script += fmt.Sprintf("echo %s\r\n", stdout)
	}

	if stderr != "" {
		script += fmt.Sprintf("echo %s 1>&2\r\n", stderr)
	}

	script += fmt.Sprintf("exit /b %d\r\n", exitCode)

	return writeScript(t, filepath.Join(dir, name+".bat"), script)
}

// SkipIfNoSymlink skips the test if the OS does not support symlink creation
// (e.g., Windows without Developer Mode enabled).
func SkipIfNoSymlink(t *testing.T) {
	t.Helper()

	if runtime.GOOS != "windows" {
		return
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	if err := os.WriteFile(src, []byte("x"), 0o600); err != nil {
		t.Fatalf("cannot create test file: %v", err)
	}

	if err := os.Symlink(src, dst); err != nil {
		t.Skipf("symlinks not available: %v", err)
	}
}

// PrependPath returns the current PATH with dir prepended, using the
// OS-appropriate path list separator.
func PrependPath(t *testing.T, dir string) string {
	t.Helper()

	return dir + string(os.PathListSeparator) + os.Getenv("PATH")
}
