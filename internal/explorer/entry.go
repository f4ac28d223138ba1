// Package explorer implements the interactive tree explorer: it lists one
// directory level with icons, lets the user pick entries through a fuzzy
// finder, accumulates the picks as paths relative to the root and renders
// them as tree text for the clipboard.
package explorer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AntoineGS/shellkit/internal/config"
	"github.com/AntoineGS/shellkit/internal/icons"
)

// Kind classifies a directory entry.
type Kind int

const (
	KindDirectory Kind = iota
	KindFile
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	case KindSymlink:
		return "symlink"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Entry is one item of a directory listing.
type Entry struct {
	Name      string
	Extension string // lower-cased, without the dot; files only
	Kind      Kind
}

// Glyph returns the icon shown in front of the entry.
func (e Entry) Glyph() string {
	switch e.Kind {
	case KindDirectory:
		return icons.Directory
	case KindSymlink:
		return icons.Symlink
	default:
		return icons.ForExtension(e.Extension)
	}
}

// Label returns the display string handed to the finder.
func (e Entry) Label() string {
	return icons.Label(e.Glyph(), e.Name)
}

// ParentLabel is the pseudo-entry for moving up one level.
var ParentLabel = icons.Label(icons.Parent, "..")

// ignoredNames are never listed, in addition to dotfiles.
var ignoredNames = func() map[string]bool {
	m := make(map[string]bool, len(config.DefaultIgnore))
	for _, name := range config.DefaultIgnore {
		m[name] = true
	}

	return m
}()

// Options controls which entries ListEntries returns.
type Options struct {
	// Gitignore, when set, hides entries matched by the root's .gitignore.
	Gitignore *Gitignore
	// Ignore lists extra names hidden in every directory.
	Ignore       []string
	IncludeFiles bool
}

func (o Options) ignored(name string) bool {
	if strings.HasPrefix(name, ".") || ignoredNames[name] {
		return true
	}

	for _, extra := range o.Ignore {
		if extra == name {
			return true
		}
	}

	return false
}

// ListEntries lists dir one level deep, sorted by display label. Dotfiles and
// the fixed ignore set are always excluded; files are only returned when
// opts.IncludeFiles is set. Symlinks are classified from the link itself and
// never followed. An unreadable directory yields no entries and a *PathError
// wrapping ErrUnreadableDirectory.
func ListEntries(dir string, opts Options) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, NewPathError("list", dir, fmt.Errorf("%w: %w", ErrUnreadableDirectory, err))
	}

	entries := make([]Entry, 0, len(dirEntries))

	for _, de := range dirEntries {
		name := de.Name()
		if opts.ignored(name) {
			continue
		}

		entry, ok := classify(name, de.Type(), opts.IncludeFiles)
		if !ok {
			continue
		}

		if opts.Gitignore != nil && opts.Gitignore.Ignored(filepath.Join(dir, name), entry.Kind == KindDirectory) {
			continue
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Label() < entries[j].Label()
	})

	return entries, nil
}

// classify maps a lstat file mode to an Entry. Directories come first, then
// regular files when includeFiles is set, then symlinks.
func classify(name string, mode fs.FileMode, includeFiles bool) (Entry, bool) {
	switch {
	case mode.IsDir():
		return Entry{Name: name, Kind: KindDirectory}, true
	case includeFiles && mode.IsRegular():
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
		return Entry{Name: name, Kind: KindFile, Extension: ext}, true
	case mode&fs.ModeSymlink != 0:
		return Entry{Name: name, Kind: KindSymlink}, true
	default:
		return Entry{}, false
	}
}

// Labels returns the finder items for a listing of current. The parent
// pseudo-entry comes first whenever current is below root.
func Labels(entries []Entry, current, root string) []string {
	labels := make([]string, 0, len(entries)+1)

	if filepath.Clean(current) != filepath.Clean(root) {
		labels = append(labels, ParentLabel)
	}

	for _, e := range entries {
		labels = append(labels, e.Label())
	}

	return labels
}
