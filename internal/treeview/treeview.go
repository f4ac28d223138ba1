// Package treeview prints directory trees through the external tree program,
// with an in-process fallback, and implements the finder preview pane.
package treeview

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/AntoineGS/shellkit/internal/cmdexec"
	"github.com/AntoineGS/shellkit/internal/config"
	"github.com/AntoineGS/shellkit/internal/icons"
	"github.com/AntoineGS/shellkit/internal/platform"
)

// ErrNotPreviewable is returned for items that are neither files nor directories.
var ErrNotPreviewable = errors.New("item cannot be previewed")

// Printer renders trees and previews.
type Printer struct {
	Runner cmdexec.Commander
	logger *slog.Logger

	// Available reports whether an external program is on PATH.
	Available func(name string) bool

	TreeBinary string
	BatBinary  string
	Ignore     []string
	Lines      int
}

// New creates a Printer from the tool and explorer settings. The ignore set
// is config.DefaultIgnore plus extra.
func New(tools config.Tools, extra []string, lines int, runner cmdexec.Commander) *Printer {
	ignore := make([]string, 0, len(config.DefaultIgnore)+len(extra))
	ignore = append(ignore, config.DefaultIgnore...)
	ignore = append(ignore, extra...)

	return &Printer{
		Runner:     runner,
		logger:     slog.Default(),
		Available:  platform.IsCommandAvailable,
		TreeBinary: tools.Tree,
		BatBinary:  tools.Bat,
		Ignore:     ignore,
		Lines:      lines,
	}
}

// WithLogger sets a custom logger
func (p *Printer) WithLogger(logger *slog.Logger) *Printer {
	p2 := *p
	p2.logger = logger

	return &p2
}

// TreeArgs returns the argv handed to the tree program.
func (p *Printer) TreeArgs(dir string, depth int) []string {
	args := []string{"-L", strconv.Itoa(depth)}
	if len(p.Ignore) > 0 {
		args = append(args, "-I", strings.Join(p.Ignore, "|"))
	}

	return append(args, "--dirsfirst", dir)
}

// Tree writes a depth-limited tree of dir to w.
func (p *Printer) Tree(ctx context.Context, w io.Writer, dir string, depth int) error {
	if p.TreeBinary != "" && p.Available(p.TreeBinary) {
		out, err := p.Runner.Run(ctx, p.TreeBinary, p.TreeArgs(dir, depth)...)
		if err != nil {
			return err
		}

		_, err = w.Write(out)
		return err
	}

	p.logger.Debug("tree program not found, using built-in diagram", slog.String("binary", p.TreeBinary))

	return WriteDiagram(w, dir, depth, p.Ignore)
}

// Preview writes the preview of a finder item listed in dir: a tree for
// directories, the first lines for files.
func (p *Printer) Preview(ctx context.Context, w io.Writer, dir, item string, depth int) error {
	name := icons.Strip(strings.TrimSpace(item))
	path := filepath.Join(dir, name)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("preview %s: %w", path, err)
	}

	switch {
	case info.IsDir():
		return p.Tree(ctx, w, path, depth)
	case info.Mode().IsRegular():
		return p.previewFile(ctx, w, path)
	default:
		return fmt.Errorf("%w: %s", ErrNotPreviewable, path)
	}
}

func (p *Printer) previewFile(ctx context.Context, w io.Writer, path string) error {
	if p.BatBinary != "" && p.Available(p.BatBinary) {
		out, err := p.Runner.Run(ctx, p.BatBinary,
			"--color=always", "--style=numbers", "--line-range", ":"+strconv.Itoa(p.Lines), path)
		if err == nil {
			_, err = w.Write(out)
			return err
		}

		p.logger.Debug("bat failed, falling back to plain preview", slog.String("error", err.Error()))
	}

	return head(w, path, p.Lines)
}

func head(w io.Writer, path string, n int) error {
	f, err := os.Open(path) //nolint:gosec // previewing a user-selected file
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for i := 0; i < n && scanner.Scan(); i++ {
		if _, err := fmt.Fprintln(w, scanner.Text()); err != nil {
			return err
		}
	}

	return scanner.Err()
}

// WriteDiagram writes a tree diagram of dir, depth levels deep, directories
// first. Dotfiles and names in ignore are skipped. Unreadable directories are
// shown without children.
func WriteDiagram(w io.Writer, dir string, depth int, ignore []string) error {
	skip := make(map[string]bool, len(ignore))
	for _, name := range ignore {
		skip[name] = true
	}

	if _, err := fmt.Fprintln(w, dir); err != nil {
		return err
	}

	var walk func(path, prefix string, level int) error
	walk = func(path, prefix string, level int) error {
		if level > depth {
			return nil
		}

		children := readChildren(path, skip)
		for i, child := range children {
			isLast := i == len(children)-1

			connector := "├── "
			if isLast {
				connector = "└── "
			}

			display := child.name
			if child.isDir {
				display += "/"
			}

			if _, err := fmt.Fprintln(w, prefix+connector+display); err != nil {
				return err
			}

			if !child.isDir {
				continue
			}

			childPrefix := prefix + "│   "
			if isLast {
				childPrefix = prefix + "    "
			}

			if err := walk(filepath.Join(path, child.name), childPrefix, level+1); err != nil {
				return err
			}
		}

		return nil
	}

	return walk(dir, "", 1)
}

type node struct {
	name  string
	isDir bool
}

func readChildren(dir string, skip map[string]bool) []node {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	nodes := make([]node, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") || skip[e.Name()] {
			continue
		}

		nodes = append(nodes, node{name: e.Name(), isDir: e.IsDir()})
	}

	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].isDir != nodes[j].isDir {
			return nodes[i].isDir
		}

		return nodes[i].name < nodes[j].name
	})

	return nodes
}
