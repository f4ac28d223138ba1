package platform

import (
	"errors"
	"runtime"
	"testing"

	"github.com/AntoineGS/shellkit/internal/testutil"
)

func TestDetectOS(t *testing.T) {
	t.Parallel()
	got := detectOS()

	switch runtime.GOOS {
	case "windows":
		if got != OSWindows {
			t.Errorf("detectOS() = %q, want %q", got, OSWindows)
		}
	case "darwin":
		if got != OSDarwin {
			t.Errorf("detectOS() = %q, want %q", got, OSDarwin)
		}
	}
}

func TestDetect(t *testing.T) {
	p := Detect()

	if p == nil {
		t.Fatal("Detect() returned nil")
	}

	if p.OS != OSLinux && p.OS != OSWindows && p.OS != OSDarwin {
		t.Errorf("OS = %q, want a known OS", p.OS)
	}
}

func TestDetectShell(t *testing.T) {
	tests := []struct {
		name  string
		shell string
		want  string
	}{
		{"zsh", "/bin/zsh", "zsh"},
		{"bash from usr", "/usr/local/bin/bash", "bash"},
		{"fish", "/opt/homebrew/bin/fish", "fish"},
		{"unset", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHELL", tt.shell)

			if got := DetectShell(); got != tt.want {
				t.Errorf("DetectShell() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithOS(t *testing.T) {
	t.Parallel()
	p := &Platform{
		OS:     OSLinux,
		Distro: "arch",
		Shell:  "zsh",
	}

	newP := p.WithOS(OSDarwin)

	if p.OS != OSLinux {
		t.Errorf("Original OS changed to %q", p.OS)
	}

	if newP.OS != OSDarwin {
		t.Errorf("WithOS() OS = %q, want %q", newP.OS, OSDarwin)
	}

	if newP.Distro != "arch" || newP.Shell != "zsh" {
		t.Error("WithOS() did not preserve other fields")
	}
}

func TestWithShell(t *testing.T) {
	t.Parallel()
	p := &Platform{OS: OSLinux, Shell: "bash"}

	newP := p.WithShell("fish")

	if p.Shell != "bash" {
		t.Errorf("Original Shell changed to %q", p.Shell)
	}

	if newP.Shell != "fish" {
		t.Errorf("WithShell() Shell = %q, want fish", newP.Shell)
	}
}

func TestDetectDisplay(t *testing.T) {
	tests := []struct {
		name           string
		osType         string
		display        string
		waylandDisplay string
		want           bool
	}{
		{
			name:   "windows always true",
			osType: OSWindows,
			want:   true,
		},
		{
			name:   "darwin always true",
			osType: OSDarwin,
			want:   true,
		},
		{
			name:    "linux with DISPLAY set",
			osType:  OSLinux,
			display: ":0",
			want:    true,
		},
		{
			name:           "linux with WAYLAND_DISPLAY set",
			osType:         OSLinux,
			waylandDisplay: "wayland-0",
			want:           true,
		},
		{
			name:   "linux with neither set",
			osType: OSLinux,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DISPLAY", tt.display)
			t.Setenv("WAYLAND_DISPLAY", tt.waylandDisplay)

			got := detectDisplay(tt.osType)
			if got != tt.want {
				t.Errorf("detectDisplay(%q) = %v, want %v", tt.osType, got, tt.want)
			}
		})
	}
}

func TestRequire(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("mock binaries are .bat files on Windows")
	}

	dir := t.TempDir()
	testutil.CreateMockBinary(t, dir, "fzf", 0, "", "")
	t.Setenv("PATH", dir)

	if err := Require("fzf"); err != nil {
		t.Fatalf("Require(fzf) error = %v", err)
	}

	err := Require("fzf", "definitely-not-installed-tool")
	if err == nil {
		t.Fatal("Require() expected error for missing tool")
	}

	if !errors.Is(err, ErrMissingDependency) {
		t.Errorf("error %v does not wrap ErrMissingDependency", err)
	}

	var depErr *DependencyError
	if !errors.As(err, &depErr) {
		t.Fatalf("error %v is not a *DependencyError", err)
	}

	if depErr.Name != "definitely-not-installed-tool" {
		t.Errorf("DependencyError.Name = %q", depErr.Name)
	}
}

func TestDetectTools(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("mock binaries are .bat files on Windows")
	}

	dir := t.TempDir()
	testutil.CreateMockBinary(t, dir, "fzf", 0, "", "")
	testutil.CreateMockBinary(t, dir, "tree", 0, "", "")
	t.Setenv("PATH", dir)

	ResetToolsCache()
	t.Cleanup(ResetToolsCache)

	tools := DetectTools()
	if len(tools) != 2 || tools[0] != "fzf" || tools[1] != "tree" {
		t.Errorf("DetectTools() = %v, want [fzf tree]", tools)
	}

	// Cached: a new binary is not picked up until the cache is reset.
	testutil.CreateMockBinary(t, dir, "bat", 0, "", "")
	if got := DetectTools(); len(got) != 2 {
		t.Errorf("DetectTools() after cache = %v, want cached result", got)
	}

	ResetToolsCache()
	if got := DetectTools(); len(got) != 3 {
		t.Errorf("DetectTools() after reset = %v, want 3 tools", got)
	}
}
