package shellinit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AntoineGS/shellkit/internal/cmdexec"
	"github.com/AntoineGS/shellkit/internal/config"
)

// hookMarker tags the installed hook so it is only added once.
const hookMarker = "# shellkit shell integration"

// HookSnippet returns the rc-file lines that evaluate the init script, or ""
// for an unsupported shell.
func HookSnippet(shell, binary string) string {
	bin := cmdexec.Quote(binary)

	switch shell {
	case config.ShellZsh, config.ShellBash:
		return fmt.Sprintf("%s (%s)\neval \"$(%s init %s)\"\n", hookMarker, shell, bin, shell)
	case config.ShellFish:
		return fmt.Sprintf("%s (fish)\n%s init fish | source\n", hookMarker, bin)
	default:
		return ""
	}
}

// RCPath returns the rc file the hook is installed into, or "" for an
// unsupported shell.
func RCPath(shell string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	switch shell {
	case config.ShellZsh:
		return filepath.Join(home, ".zshrc")
	case config.ShellBash:
		return filepath.Join(home, ".bashrc")
	case config.ShellFish:
		return filepath.Join(home, ".config", "fish", "conf.d", "shellkit.fish")
	default:
		return ""
	}
}

// InstallHook appends the hook to rcPath unless it is already present.
// It reports whether the file was changed.
func InstallHook(shell, rcPath, binary string) (bool, error) {
	snippet := HookSnippet(shell, binary)
	if snippet == "" {
		return false, fmt.Errorf("%w: %q", config.ErrUnsupportedShell, shell)
	}

	existing, err := os.ReadFile(rcPath) //nolint:gosec // rc path chosen by the user
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("reading %s: %w", rcPath, err)
	}

	if strings.Contains(string(existing), hookMarker) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(rcPath), 0750); err != nil {
		return false, fmt.Errorf("creating %s: %w", filepath.Dir(rcPath), err)
	}

	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) //nolint:gosec // rc path chosen by the user
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", rcPath, err)
	}
	defer f.Close()

	prefix := "\n"
	if len(existing) == 0 {
		prefix = ""
	}

	if _, err := fmt.Fprintf(f, "%s%s", prefix, snippet); err != nil {
		return false, fmt.Errorf("writing %s: %w", rcPath, err)
	}

	return true, nil
}
