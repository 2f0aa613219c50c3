package shell

import (
	"errors"
	"fmt"
)

// Command-level failures. They're reported on stderr and end only the
// command that caused them.
var (
	ErrHistoryEmpty          = errors.New("no previous arguments in history")
	ErrNotInHistory          = errors.New("not in history")
	ErrDirectoryChange       = errors.New("directory change failed")
	ErrRecallLoop            = errors.New("history recall loop detected")
	ErrCommandNotFound       = errors.New("Command not found")
	ErrMultiplePipes         = errors.New("only one pipe is supported")
	ErrPipeWithRedirect      = errors.New("pipes cannot be combined with redirection")
	ErrEmptyPipeSide         = errors.New("missing command next to pipe")
	ErrMissingRedirectTarget = errors.New("missing redirection target")
	ErrMissingCommand        = errors.New("missing command before redirection")
)

type historyIndexError struct {
	index string
}

func (e *historyIndexError) Error() string {
	return fmt.Sprintf("%s is not in history", e.index)
}

func (e *historyIndexError) Is(target error) bool {
	return target == ErrNotInHistory
}

type chdirError struct {
	path string
	err  error
}

func (e *chdirError) Error() string {
	return fmt.Sprintf("The filepath %s may be incorrect, please try again", e.path)
}

func (e *chdirError) Is(target error) bool {
	return target == ErrDirectoryChange
}

func (e *chdirError) Unwrap() error {
	return e.err
}

type redirectError struct {
	path string
	err  error
}

func (e *redirectError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.path, e.err)
}

func (e *redirectError) Unwrap() error {
	return e.err
}
