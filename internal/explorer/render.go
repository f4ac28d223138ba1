package explorer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/AntoineGS/shellkit/internal/icons"
)

// Tree connectors.
const (
	branch   = "├── "
	arrow    = " → "
	brokenTo = "broken"
)

// Render converts sorted relative paths into tree text rooted at root. Each
// selected path becomes one line directly below the root line; nesting is
// not reconstructed. Directories get a trailing slash, files appear only when
// includeFiles is set and symlinks show their target. Paths that no longer
// exist are skipped. ErrRenderFailed is returned when no line is produced.
func Render(paths []string, root string, includeFiles bool) (string, error) {
	lines := []string{filepath.Base(filepath.Clean(root)) + "/"}

	for _, rel := range paths {
		line, ok := renderLine(root, rel, includeFiles)
		if ok {
			lines = append(lines, branch+line)
		}
	}

	if len(lines) == 1 {
		return "", ErrRenderFailed
	}

	return strings.Join(lines, "\n"), nil
}

func renderLine(root, rel string, includeFiles bool) (string, bool) {
	full := filepath.Join(root, rel)
	display := filepath.ToSlash(rel)

	info, err := os.Lstat(full)
	if err != nil {
		return "", false
	}

	mode := info.Mode()

	switch {
	case mode.IsDir():
		return icons.Label(icons.Directory, display+"/"), true
	case mode&os.ModeSymlink != 0:
		return icons.Label(icons.Symlink, display) + arrow + symlinkTarget(full), true
	case includeFiles && mode.IsRegular():
		return icons.Label(icons.ForFile(rel), display), true
	default:
		return "", false
	}
}

// symlinkTarget returns the link target, or "broken" when it cannot be resolved.
func symlinkTarget(path string) string {
	target, err := os.Readlink(path)
	if err != nil {
		return brokenTo
	}

	if _, err := os.Stat(path); err != nil {
		return brokenTo
	}

	return filepath.ToSlash(target)
}
