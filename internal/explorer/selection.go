package explorer

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AntoineGS/shellkit/internal/icons"
)

// SelectionSet accumulates chosen paths relative to the session root. Paths
// are de-duplicated on insert and kept in insertion order.
type SelectionSet struct {
	seen  map[string]struct{}
	paths []string
}

// NewSelectionSet returns an empty set.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{seen: make(map[string]struct{})}
}

// Add inserts rel and reports whether it was new.
func (s *SelectionSet) Add(rel string) bool {
	rel = filepath.Clean(rel)
	if _, ok := s.seen[rel]; ok {
		return false
	}

	s.seen[rel] = struct{}{}
	s.paths = append(s.paths, rel)

	return true
}

// Record strips the icon from each selected display item, resolves it
// against current and adds its path relative to root. The parent
// pseudo-entry, the root itself and paths escaping root are never recorded.
// It returns the paths that were newly added.
func (s *SelectionSet) Record(items []string, current, root string) []string {
	var added []string

	for _, item := range items {
		name := icons.Strip(strings.TrimSpace(item))
		if name == "" || name == ".." {
			continue
		}

		rel, err := filepath.Rel(root, filepath.Join(current, name))
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}

		if s.Add(rel) {
			added = append(added, rel)
		}
	}

	return added
}

// Len returns the number of distinct paths.
func (s *SelectionSet) Len() int {
	return len(s.paths)
}

// Values returns the paths sorted.
func (s *SelectionSet) Values() []string {
	values := make([]string, len(s.paths))
	copy(values, s.paths)
	sort.Strings(values)

	return values
}

// Dump writes the paths in insertion order, one per line.
func (s *SelectionSet) Dump(w io.Writer) error {
	for _, p := range s.paths {
		if _, err := fmt.Fprintln(w, filepath.ToSlash(p)); err != nil {
			return err
		}
	}

	return nil
}
