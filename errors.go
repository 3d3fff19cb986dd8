package subproc

import "github.com/wagiedev/subproc-go/internal/errors"

// Re-export error types from internal package

// LaunchError indicates the OS could not create the process.
type LaunchError = errors.LaunchError

// ExitError indicates a process exited with a non-zero code under Run.
// It carries the command, pid, exit code, and full stdout/stderr text.
type ExitError = errors.ExitError

// StreamError indicates an I/O failure while reading a process stream.
type StreamError = errors.StreamError

// SubprocError is the base interface for all library errors.
type SubprocError = errors.SubprocError

// Re-export sentinel errors from internal package.
var (
	// ErrEmptyCommand indicates a command resolved to zero tokens.
	ErrEmptyCommand = errors.ErrEmptyCommand

	// ErrExitTimeout indicates a bounded exit-code wait expired before
	// the process terminated. The process is unaffected.
	ErrExitTimeout = errors.ErrExitTimeout

	// ErrTooFewProcesses indicates a pipeline was built from fewer than
	// two processes.
	ErrTooFewProcesses = errors.ErrTooFewProcesses
)
