package project

import (
	"errors"

	"github.com/raivivek/makebio/internal/config"
	"github.com/raivivek/makebio/internal/fsops"
	"github.com/raivivek/makebio/internal/snapshot"
)

// Sentinel errors for the failure classes project operations can report.
// Lower layers own the sentinels for their own failures; they are re-exported
// here so callers only need errors.Is against this package.
var (
	ErrNotInitialized = errors.New("not a makebio project (makebio.toml not found)")
	ErrDuplicateName  = errors.New("name already in use")
	ErrNotFound       = errors.New("no such analysis, data, or path")

	ErrAlreadyExists = fsops.ErrAlreadyExists
	ErrBrokenLink    = fsops.ErrBrokenLink
	ErrPermission    = fsops.ErrPermission
	ErrCorruptConfig = config.ErrCorruptConfig
	ErrSnapshot      = snapshot.ErrSnapshot
)

// ExitCode maps an operation error to the process exit status. Code 1 is the
// generic failure; 2 stays reserved for usage errors.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNotInitialized):
		return 3
	case errors.Is(err, ErrAlreadyExists):
		return 4
	case errors.Is(err, ErrDuplicateName):
		return 5
	case errors.Is(err, ErrNotFound), errors.Is(err, config.ErrNotFound):
		return 6
	case errors.Is(err, ErrCorruptConfig):
		return 7
	case errors.Is(err, ErrBrokenLink):
		return 8
	case errors.Is(err, ErrSnapshot):
		return 9
	case errors.Is(err, ErrPermission):
		return 10
	default:
		return 1
	}
}
