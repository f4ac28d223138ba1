package explorer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Gitignore matches paths below a root against its .gitignore files.
type Gitignore struct {
	matcher gitignore.Matcher
	root    string
}

// LoadGitignore reads the gitignore patterns of root and its subdirectories.
func LoadGitignore(root string) (*Gitignore, error) {
	patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil {
		return nil, fmt.Errorf("reading gitignore patterns: %w", err)
	}

	return &Gitignore{
		matcher: gitignore.NewMatcher(patterns),
		root:    root,
	}, nil
}

// Ignored reports whether path is excluded. Paths outside the root and the
// root itself are never ignored.
func (g *Gitignore) Ignored(path string, isDir bool) bool {
	rel, err := filepath.Rel(g.root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}

	return g.matcher.Match(strings.Split(rel, string(os.PathSeparator)), isDir)
}
