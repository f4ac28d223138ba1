package explorer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AntoineGS/shellkit/internal/config"
	"github.com/AntoineGS/shellkit/internal/finder"
)

// Display modes offered before navigation starts.
const (
	ModeFoldersOnly     = "📁 Folders only"
	ModeFoldersAndFiles = "📄 Folders and files"
)

const (
	saveTimeout     = 5 * time.Second
	defaultSaveName = "tree.txt"
	selectHeader    = "TAB: toggle | CTRL-A: select all | ESC: abort"
)

// Prompter asks the user questions on the terminal. An implementation reports
// a question the user aborted with an error wrapping ErrCancelled.
type Prompter interface {
	Input(ctx context.Context, label, placeholder string) (string, error)
	Confirm(ctx context.Context, label string, timeout time.Duration, def bool) (bool, error)
}

// Clipboard receives the rendered tree.
type Clipboard interface {
	Copy(text string) error
}

// NavigationState is the mutable state of one session.
type NavigationState struct {
	Root         string
	Current      string
	MaxDepth     int
	IncludeFiles bool
}

// Session runs one interactive explorer session:
// ChooseDisplayMode, ChooseDepth, Navigate, Summarize, Render, Deliver and
// Cleanup, the last of which runs on every exit path.
type Session struct {
	Finder    finder.Finder
	Prompter  Prompter
	Clipboard Clipboard
	Out       io.Writer // progress messages
	Err       io.Writer // failures and warnings
	logger    *slog.Logger

	// PreviewCommand builds the finder preview command from the depth file
	// and the directory being listed. Nil disables the preview pane.
	PreviewCommand func(depthFile, dir string) string

	Root         string
	ScratchDir   string
	Ignore       []string
	DefaultDepth int
	PID          int

	RespectGitignore bool
}

// NewSession creates a session rooted at root.
func NewSession(root string, f finder.Finder, p Prompter, c Clipboard) *Session {
	return &Session{
		Root:         root,
		Finder:       f,
		Prompter:     p,
		Clipboard:    c,
		Out:          os.Stdout,
		Err:          os.Stderr,
		logger:       slog.Default(),
		ScratchDir:   os.TempDir(),
		DefaultDepth: config.DefaultDepth,
		PID:          os.Getpid(),
	}
}

// WithLogger sets a custom logger
func (s *Session) WithLogger(logger *slog.Logger) *Session {
	s2 := *s
	s2.logger = logger

	return &s2
}

// WithConfig applies the explorer settings of cfg.
func (s *Session) WithConfig(cfg config.Explorer) *Session {
	s2 := *s
	s2.DefaultDepth = cfg.DefaultDepth
	s2.Ignore = cfg.Ignore
	s2.RespectGitignore = cfg.RespectGitignore

	return &s2
}

// Run executes the session and returns the rendered tree. The scratch files
// are removed however Run returns.
func (s *Session) Run(ctx context.Context) (tree string, err error) {
	root, err := filepath.Abs(s.Root)
	if err != nil {
		return "", NewPathError("resolve", s.Root, err)
	}

	scratch := NewScratch(s.ScratchDir, s.PID)
	defer func() {
		if rmErr := scratch.Remove(); rmErr != nil {
			s.logger.Warn("failed to remove scratch files", slog.String("error", rmErr.Error()))
		}
	}()

	state := NavigationState{Root: root, Current: root}

	state.IncludeFiles, err = s.chooseDisplayMode(ctx)
	if err != nil {
		return "", s.fail(err)
	}

	state.MaxDepth, err = s.chooseDepth(ctx, scratch)
	if err != nil {
		return "", s.fail(err)
	}

	s.logger.Debug("navigation started",
		slog.String("root", root),
		slog.Bool("include_files", state.IncludeFiles),
		slog.Int("depth", state.MaxDepth))

	selection := NewSelectionSet()
	if err := s.navigate(ctx, state, selection, scratch); err != nil {
		return "", s.fail(err)
	}

	if selection.Len() == 0 {
		return "", s.fail(ErrEmptySelection)
	}

	fmt.Fprintf(s.Out, "Selected %d item(s)\n", selection.Len())

	tree, err = Render(selection.Values(), root, state.IncludeFiles)
	if err != nil {
		return "", s.fail(err)
	}

	if err := s.deliver(ctx, tree, root); err != nil {
		return tree, s.fail(err)
	}

	return tree, nil
}

func (s *Session) chooseDisplayMode(ctx context.Context) (bool, error) {
	res, err := s.Finder.Find(ctx, finder.Request{
		Items:  []string{ModeFoldersOnly, ModeFoldersAndFiles},
		Prompt: "Display mode> ",
	})
	if err != nil {
		return false, err
	}

	if res.Outcome == finder.Cancelled || len(res.Selected) == 0 {
		return false, ErrCancelled
	}

	return res.Selected[0] == ModeFoldersAndFiles, nil
}

func (s *Session) chooseDepth(ctx context.Context, scratch *Scratch) (int, error) {
	input, err := s.Prompter.Input(ctx, fmt.Sprintf("Tree depth (%d-%d)", config.MinDepth, config.MaxDepth),
		fmt.Sprint(ParseDepth("", s.DefaultDepth)))
	if err != nil {
		return 0, err
	}

	depth := ParseDepth(input, s.DefaultDepth)
	if err := scratch.WriteDepth(depth); err != nil {
		return 0, err
	}

	return depth, nil
}

// navigate performs a single navigation step: scan, present, interpret.
func (s *Session) navigate(ctx context.Context, state NavigationState, selection *SelectionSet, scratch *Scratch) error {
	opts := Options{IncludeFiles: state.IncludeFiles, Ignore: s.Ignore}

	if s.RespectGitignore {
		gi, err := LoadGitignore(state.Root)
		if err != nil {
			s.logger.Warn("ignoring .gitignore", slog.String("error", err.Error()))
		} else {
			opts.Gitignore = gi
		}
	}

	entries, err := ListEntries(state.Current, opts)
	if err != nil || len(entries) == 0 {
		return s.handleEmptyListing(ctx, state.Current, err)
	}

	req := finder.Request{
		Items:  Labels(entries, state.Current, state.Root),
		Prompt: filepath.Base(state.Current) + "> ",
		Header: selectHeader,
		Multi:  true,
	}
	if s.PreviewCommand != nil {
		req.Preview = s.PreviewCommand(scratch.DepthPath, state.Current)
	}

	res, err := s.Finder.Find(ctx, req)
	if err != nil {
		return err
	}

	if res.Outcome == finder.Cancelled {
		return ErrCancelled
	}

	added := selection.Record(res.Selected, state.Current, state.Root)
	s.logger.Debug("selection recorded", slog.Int("added", len(added)), slog.Int("total", selection.Len()))

	if err := scratch.AppendSelection(added); err != nil {
		s.logger.Warn("failed to write selection dump", slog.String("error", err.Error()))
	}

	return nil
}

// handleEmptyListing reports an unreadable or empty directory and asks
// whether to go on with what has been selected so far.
func (s *Session) handleEmptyListing(ctx context.Context, dir string, listErr error) error {
	if listErr != nil {
		fmt.Fprintf(s.Err, "Cannot read directory: %v\n", listErr)
	} else {
		fmt.Fprintf(s.Err, "No entries to show in %s\n", dir)
	}

	proceed, err := s.Prompter.Confirm(ctx, "Continue?", 0, false)
	if err != nil {
		return err
	}

	if proceed {
		return nil
	}

	if listErr != nil {
		return listErr
	}

	return NewPathError("list", dir, ErrUnreadableDirectory)
}

func (s *Session) deliver(ctx context.Context, tree, root string) error {
	fmt.Fprintln(s.Out, tree)

	if err := s.Clipboard.Copy(tree); err != nil {
		fmt.Fprintf(s.Err, "Could not copy to clipboard: %v\n", err)
	} else {
		fmt.Fprintln(s.Out, "Tree copied to clipboard")
	}

	save, err := s.Prompter.Confirm(ctx, "Save to file?", saveTimeout, false)
	if err != nil || !save {
		return err
	}

	name, err := s.Prompter.Input(ctx, "File name", defaultSaveName)
	if err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultSaveName
	}

	path := config.ExpandPath(name, nil)
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	if err := os.WriteFile(path, []byte(tree+"\n"), scratchPerms); err != nil {
		return NewPathError("save", path, err)
	}

	fmt.Fprintf(s.Out, "Saved to %s\n", path)

	return nil
}

// fail prints the user-facing message for err and returns it.
func (s *Session) fail(err error) error {
	switch {
	case errors.Is(err, ErrCancelled), errors.Is(err, context.Canceled):
		fmt.Fprintln(s.Out, "Selection cancelled")
	case errors.Is(err, ErrEmptySelection):
		fmt.Fprintln(s.Err, "No items selected")
	case errors.Is(err, ErrRenderFailed):
		fmt.Fprintln(s.Err, "Failed to render tree: none of the selected paths exist")
	}

	return err
}
