// Package platform provides OS, terminal environment and external tool detection.
package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// Supported operating system identifiers.
const (
	// OSLinux represents Linux operating systems
	OSLinux = "linux"
	// OSDarwin represents macOS
	OSDarwin = "darwin"
	// OSWindows represents Windows operating systems
	OSWindows = "windows"
)

// ErrMissingDependency is returned when a required external program is not on PATH.
var ErrMissingDependency = errors.New("missing dependency")

// DependencyError names the external program that could not be found.
type DependencyError struct {
	Name string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %s not found in PATH", ErrMissingDependency, e.Name)
}

func (e *DependencyError) Unwrap() error {
	return ErrMissingDependency
}

// Platform holds detected platform information: the operating system, Linux
// distribution, login shell and whether a display server or WSL is present.
type Platform struct {
	OS         string
	Distro     string
	Shell      string
	HasDisplay bool
	IsWSL      bool
	IsSSH      bool
}

// Detect detects the current platform characteristics.
func Detect() *Platform {
	p := &Platform{
		OS:    detectOS(),
		Shell: DetectShell(),
	}

	p.IsWSL = detectWSL()
	p.IsSSH = os.Getenv("SSH_TTY") != "" || os.Getenv("SSH_CONNECTION") != ""
	p.HasDisplay = detectDisplay(p.OS)

	if p.OS == OSLinux {
		p.Distro = detectDistro()
	}

	return p
}

// DetectShell returns the base name of the user's login shell from $SHELL.
func DetectShell() string {
	sh := os.Getenv("SHELL")
	if sh == "" {
		return ""
	}

	return filepath.Base(sh)
}

// detectDistro returns the Linux distribution ID from /etc/os-release
// Returns values like "arch", "ubuntu", "fedora", "debian", etc.
func detectDistro() string {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		slog.Debug("unable to detect linux distribution",
			slog.String("file", "/etc/os-release"),
			slog.String("error", err.Error()),
			slog.String("fallback", "empty"))
		return ""
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "ID=") {
			return strings.Trim(strings.TrimPrefix(line, "ID="), "\"")
		}
	}

	return ""
}

func detectOS() string {
	switch runtime.GOOS {
	case OSWindows:
		return OSWindows
	case OSDarwin:
		return OSDarwin
	}

	// Also check OS environment variable (for cross-platform scripts)
	if strings.Contains(strings.ToLower(os.Getenv("OS")), "windows") {
		return OSWindows
	}

	return OSLinux
}

// detectDisplay checks whether a display server is available.
// On Linux, it checks for DISPLAY (X11) or WAYLAND_DISPLAY (Wayland).
// On Windows and macOS, it always returns true.
func detectDisplay(osType string) bool {
	if osType == OSWindows || osType == OSDarwin {
		return true
	}

	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// detectWSL checks if running inside Windows Subsystem for Linux.
func detectWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}

	lower := strings.ToLower(string(data))
	return strings.Contains(lower, "microsoft") || strings.Contains(lower, "wsl")
}

// HasWayland reports whether a Wayland compositor is reachable.
func (p *Platform) HasWayland() bool {
	return p.OS == OSLinux && os.Getenv("WAYLAND_DISPLAY") != ""
}

// WithOS returns a copy of the Platform with the OS field overridden.
func (p *Platform) WithOS(osType string) *Platform {
	newP := *p
	newP.OS = osType

	return &newP
}

// WithShell returns a copy of the Platform with the Shell field overridden.
func (p *Platform) WithShell(shell string) *Platform {
	newP := *p
	newP.Shell = shell

	return &newP
}

// IsCommandAvailable checks if a command is available in PATH
func IsCommandAvailable(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// Require returns a *DependencyError for the first command not found in PATH.
func Require(cmds ...string) error {
	for _, cmd := range cmds {
		if !IsCommandAvailable(cmd) {
			return &DependencyError{Name: cmd}
		}
	}

	return nil
}

// KnownTools is the list of external programs the shell environment wraps:
// the fuzzy finder, tree printer and previewer used by the explorer, the
// lazily loaded runtimes, prompt engines and clipboard utilities.
var KnownTools = []string{
	"fzf", "tree", "bat", "git", // explorer and previews
	"node", "npm", "gcloud", // lazily loaded runtimes
	"starship", "oh-my-posh", // prompt theming
	"pbcopy", "wl-copy", "xclip", "xsel", "clip.exe", // clipboard
}

var (
	availableToolsOnce   sync.Once
	availableToolsCached []string
)

// DetectTools returns the subset of KnownTools present in PATH.
// Results are cached after the first call since PATH rarely changes during execution.
func DetectTools() []string {
	availableToolsOnce.Do(func() {
		available := make([]string, 0, len(KnownTools))

		for _, tool := range KnownTools {
			if IsCommandAvailable(tool) {
				available = append(available, tool)
			}
		}

		availableToolsCached = available
	})

	return availableToolsCached
}

// ResetToolsCache clears the cached tool detection results,
// causing the next call to DetectTools to re-scan PATH.
func ResetToolsCache() {
	availableToolsOnce = sync.Once{}
	availableToolsCached = nil
}
