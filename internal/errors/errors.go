package errors

import (
	"errors"
	"fmt"
	"strings"
)

// SubprocError is the base interface for all library errors.
type SubprocError interface {
	error
	IsSubprocError() bool
}

// Compile-time verification that all error types implement SubprocError.
var (
	_ SubprocError = (*LaunchError)(nil)
	_ SubprocError = (*ExitError)(nil)
	_ SubprocError = (*StreamError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrEmptyCommand indicates a command resolved to zero tokens.
	// An empty argument vector is never passed to the OS.
	ErrEmptyCommand = errors.New("empty command: no tokens to execute")

	// ErrExitTimeout indicates a bounded exit-code wait expired before the
	// process terminated. The process is unaffected; callers may poll again.
	ErrExitTimeout = errors.New("exit wait timed out")

	// ErrTooFewProcesses indicates a pipeline was built from fewer than
	// two processes.
	ErrTooFewProcesses = errors.New("pipeline requires at least two processes")
)

// LaunchError indicates the OS could not create the process
// (bad executable, permissions, missing directory).
type LaunchError struct {
	Command []string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %q: %v", strings.Join(e.Command, " "), e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// IsSubprocError implements SubprocError.
func (e *LaunchError) IsSubprocError() bool { return true }

// ExitError indicates a process exited with a non-zero code under Run.
// It carries the full captured output so callers can log or re-present
// the failure without re-running the process.
//
// Err, when set, is a stream failure that occurred while collecting the
// output; Stdout and Stderr then hold whatever was read before it.
type ExitError struct {
	Command  []string
	Pid      int
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%q exited with code %d: %s",
			strings.Join(e.Command, " "), e.ExitCode, e.Stderr)
	}

	return fmt.Sprintf("%q exited with code %d", strings.Join(e.Command, " "), e.ExitCode)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// IsSubprocError implements SubprocError.
func (e *ExitError) IsSubprocError() bool { return true }

// StreamError indicates an I/O failure while pulling the next line from a
// process stream. Lines produced before the failure remain valid.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream read failed: %v", e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// IsSubprocError implements SubprocError.
func (e *StreamError) IsSubprocError() bool { return true }
