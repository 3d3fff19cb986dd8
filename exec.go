package subproc

import (
	"context"
	"io"

	"github.com/wagiedev/subproc-go/internal/launch"
	"github.com/wagiedev/subproc-go/internal/token"
)

// Process is the handle for one launched OS process and its streams.
type Process = launch.Process

// LineSeq is a lazy, pull-based, line-oriented view over a process stream.
type LineSeq = launch.LineSeq

// Exec resolves the command into an argument vector and launches it,
// returning immediately with the Process handle. The caller owns the
// handle's streams and uses ExitCode to observe termination.
//
// Launch failures (executable not found, bad directory) surface
// synchronously as a LaunchError; they are never masked as a process
// with empty output. A command resolving to zero tokens fails with
// ErrEmptyCommand before any OS call is made.
//
// Cancelling ctx kills the process.
func Exec(ctx context.Context, cmd Command, opts ...Option) (*Process, error) {
	options := applyOptions(opts)

	argv, err := token.Resolve(cmd, options.Shell)
	if err != nil {
		return nil, err
	}

	return launch.Launch(ctx, argv, options)
}

// Kill forcefully terminates the process. Equivalent to p.Kill.
func Kill(p *Process) error {
	return p.Kill()
}

// Lines wraps a readable stream as a lazy line sequence. This is the same
// adapter backing StdoutLines and StderrLines, exposed for streams the
// handle does not wrap itself, such as a pipeline's boundary stdout.
// A nil stream yields a nil sequence.
func Lines(rc io.ReadCloser) *LineSeq {
	return launch.NewLineSeq(rc)
}
