package proc

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// NotFoundStatus is the exit status of a command that could not be resolved
// or launched.
const NotFoundStatus = 63

// ErrSpawn marks a failure to create a child process at all, such as running
// out of process slots or memory.
var ErrSpawn = errors.New("spawn failure")

// LaunchError is returned when a child could be created but the program
// image could not be started in it.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Command describes a program invocation.
type Command struct {
	// Path is the resolved executable.
	Path string
	// Args holds the arguments, including the command name as Args[0].
	Args []string
	// Dir is the child's working directory.
	Dir string
	// Env holds the child's environment, nil inherits the shell's.
	Env []string

	Stdio Stdio
}

// Start launches the command and returns once the child is running.
//
// Errors that mean no process could be made at all wrap ErrSpawn, anything
// else is a *LaunchError.
func Start(c Command) (*exec.Cmd, error) {
	stdio := c.Stdio.orDiscard()
	cmd := &exec.Cmd{
		Path:   c.Path,
		Args:   c.Args,
		Dir:    c.Dir,
		Env:    c.Env,
		Stdin:  stdio.Stdin,
		Stdout: stdio.Stdout,
		Stderr: stdio.Stderr,
	}
	if len(cmd.Args) == 0 {
		cmd.Args = []string{c.Path}
	}

	if err := cmd.Start(); err != nil {
		if isSpawnFailure(err) {
			return nil, fmt.Errorf("%w: %v", ErrSpawn, err)
		}
		return nil, &LaunchError{Path: c.Path, Err: err}
	}
	return cmd, nil
}

func isSpawnFailure(err error) bool {
	for _, errno := range []error{unix.EAGAIN, unix.ENOMEM, unix.EMFILE, unix.ENFILE} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}

// Wait blocks until cmd exits and returns its exit status.
//
// A child that was already collected isn't an error: if it was waited on
// before its recorded status is returned, if the OS reports it gone it
// reports status 0.
func Wait(cmd *exec.Cmd) (int, error) {
	if cmd.ProcessState != nil {
		return stateStatus(cmd.ProcessState), nil
	}

	err := cmd.Wait()
	if AlreadyCollected(err) {
		return 0, nil
	}
	return ExitStatus(err)
}

// ExitStatus converts the result of waiting on a child into a shell status.
// Children killed by a signal report 128 plus the signal number.
func ExitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 1, err
	}
	return stateStatus(exitErr.ProcessState), nil
}

func stateStatus(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return state.ExitCode()
}

// AlreadyCollected reports whether err means another waiter reaped the child
// first.
func AlreadyCollected(err error) bool {
	return errors.Is(err, unix.ECHILD)
}
