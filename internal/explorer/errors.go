package explorer

import (
	"errors"
	"fmt"

	"github.com/AntoineGS/shellkit/internal/platform"
)

// Sentinel errors for explorer sessions
var (
	ErrMissingDependency   = platform.ErrMissingDependency
	ErrUnreadableDirectory = errors.New("unreadable directory")
	ErrCancelled           = errors.New("cancelled")
	ErrEmptySelection      = errors.New("no items selected")
	ErrRenderFailed        = errors.New("tree rendering produced no output")
)

// PathError records an error and the operation and path that caused it.
type PathError struct {
	Err  error
	Op   string
	Path string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// NewPathError creates a new PathError
func NewPathError(op, path string, err error) *PathError {
	return &PathError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
