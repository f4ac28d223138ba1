package explorer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// File permissions for scratch files (rw-------)
const scratchPerms os.FileMode = 0600

// Scratch is the pair of process-scoped temporary files of one session: the
// selection dump and the depth read by the preview command.
type Scratch struct {
	SelectionPath string
	DepthPath     string
}

// NewScratch names the scratch files in dir, suffixed with pid.
func NewScratch(dir string, pid int) *Scratch {
	suffix := "." + strconv.Itoa(pid)

	return &Scratch{
		SelectionPath: filepath.Join(dir, "shellkit-selection"+suffix),
		DepthPath:     filepath.Join(dir, "shellkit-depth"+suffix),
	}
}

// WriteDepth stores depth for the preview command.
func (s *Scratch) WriteDepth(depth int) error {
	if err := os.WriteFile(s.DepthPath, []byte(strconv.Itoa(depth)+"\n"), scratchPerms); err != nil {
		return NewPathError("write depth", s.DepthPath, err)
	}

	return nil
}

// AppendSelection appends paths to the selection dump, one per line.
func (s *Scratch) AppendSelection(paths []string) error {
	f, err := os.OpenFile(s.SelectionPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, scratchPerms)
	if err != nil {
		return NewPathError("append selection", s.SelectionPath, err)
	}

	for _, p := range paths {
		if _, err := fmt.Fprintln(f, filepath.ToSlash(p)); err != nil {
			_ = f.Close()
			return NewPathError("append selection", s.SelectionPath, err)
		}
	}

	if err := f.Close(); err != nil {
		return NewPathError("append selection", s.SelectionPath, err)
	}

	return nil
}

// Remove deletes both files. Files that do not exist are not an error.
func (s *Scratch) Remove() error {
	var errs []error

	for _, path := range []string{s.SelectionPath, s.DepthPath} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, NewPathError("remove", path, err))
		}
	}

	return errors.Join(errs...)
}

// ReadDepth returns the depth stored at path, or fallback when the file is
// missing or does not hold a valid depth.
func ReadDepth(path string, fallback int) int {
	if path == "" {
		return ParseDepth("", fallback)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is our own scratch file
	if err != nil {
		return ParseDepth("", fallback)
	}

	return ParseDepth(strings.TrimSpace(string(data)), fallback)
}
