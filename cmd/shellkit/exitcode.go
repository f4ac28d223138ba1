package main

import (
	"context"
	"errors"

	"github.com/AntoineGS/shellkit/internal/explorer"
	"github.com/AntoineGS/shellkit/internal/platform"
	"github.com/AntoineGS/shellkit/internal/tui"
)

// ExitCode is the process exit status of shellkit.
type ExitCode int

const (
	// ExitSuccess is a normal exit.
	ExitSuccess ExitCode = 0
	// ExitGeneral is any failure without a more specific code.
	ExitGeneral ExitCode = 1
	// ExitMissingDependency means a required external program is not on PATH.
	ExitMissingDependency ExitCode = 127
	// ExitCancelled means the user aborted.
	ExitCancelled ExitCode = 130
)

// mapExitCode returns the exit code for err.
func mapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, explorer.ErrCancelled),
		errors.Is(err, tui.ErrAborted),
		errors.Is(err, context.Canceled):
		return ExitCancelled
	case errors.Is(err, platform.ErrMissingDependency):
		return ExitMissingDependency
	default:
		return ExitGeneral
	}
}

// reported reports whether the explorer already printed a message for err.
func reported(err error) bool {
	return errors.Is(err, explorer.ErrCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, explorer.ErrEmptySelection) ||
		errors.Is(err, explorer.ErrRenderFailed)
}
