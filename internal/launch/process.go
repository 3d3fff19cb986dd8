package launch

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/subproc-go/internal/errors"
)

// Process is the handle for one launched OS process.
//
// The three standard streams are captured at launch time and stay valid
// for the whole handle lifetime; in particular, buffered stdout/stderr
// remains readable after the process has exited. Each stream is a
// single-consumer resource: two concurrent readers of the same stream
// see undefined interleaving.
type Process struct {
	log    *slog.Logger
	id     ulid.ULID
	argv   []string
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser // nil when stderr is redirected into stdout

	// waitDone is closed by the reaper goroutine once the process has
	// been waited on; exitCode is only valid after that.
	waitDone chan struct{}
	exitCode int

	closeOnce sync.Once
	closeErr  error
}

func newProcess(
	log *slog.Logger,
	id ulid.ULID,
	argv []string,
	cmd *exec.Cmd,
	stdin io.WriteCloser,
	stdout io.ReadCloser,
	stderr io.ReadCloser,
) *Process {
	p := &Process{
		log:      log,
		id:       id,
		argv:     argv,
		cmd:      cmd,
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		waitDone: make(chan struct{}),
	}

	// Reap exactly once, in the background. Publishing the exit code
	// through the closed channel is what makes exit-code retrieval
	// idempotent and safe to call from multiple goroutines.
	go func() {
		err := cmd.Wait()

		code := 0

		if err != nil {
			if exitErr, ok := stderrors.AsType[*exec.ExitError](err); ok {
				code = exitErr.ExitCode()
			} else {
				// Wait itself failed; there is no meaningful code.
				code = -1

				p.log.Warn("Process wait failed", "error", err)
			}
		}

		p.exitCode = code
		close(p.waitDone)

		p.log.Debug("Process exited", "exit_code", code)
	}()

	return p
}

// ID returns the unique launch id assigned to this process.
func (p *Process) ID() string { return p.id.String() }

// Pid returns the OS process id.
func (p *Process) Pid() int { return p.cmd.Process.Pid }

// Command returns the argument vector the process was launched with.
func (p *Process) Command() []string { return p.argv }

// Stdin returns the writable stdin stream of the process.
func (p *Process) Stdin() io.WriteCloser { return p.stdin }

// Stdout returns the readable stdout stream of the process.
func (p *Process) Stdout() io.ReadCloser { return p.stdout }

// Stderr returns the readable stderr stream, or nil when the process was
// launched with stderr redirected into stdout. Nil here means "merged",
// never "empty".
func (p *Process) Stderr() io.ReadCloser { return p.stderr }

// StdoutLines returns a lazy line sequence over stdout.
func (p *Process) StdoutLines() *LineSeq { return NewLineSeq(p.stdout) }

// StderrLines returns a lazy line sequence over stderr, or nil when
// stderr is redirected into stdout.
func (p *Process) StderrLines() *LineSeq { return NewLineSeq(p.stderr) }

// ExitCode blocks until the process terminates and returns its exit code.
// The wait is bounded by ctx: on cancellation the context error is
// returned and the process is unaffected.
//
// Calling ExitCode again after the process has exited returns the same
// code immediately.
func (p *Process) ExitCode(ctx context.Context) (int, error) {
	select {
	case <-p.waitDone:
		return p.exitCode, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// ExitCodeTimeout blocks up to the given duration for the process to
// terminate. If it has not exited by then, ErrExitTimeout is returned;
// the process is not killed or otherwise affected, and the caller may
// poll again.
func (p *Process) ExitCodeTimeout(timeout time.Duration) (int, error) {
	select {
	case <-p.waitDone:
		return p.exitCode, nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-p.waitDone:
		return p.exitCode, nil
	case <-timer.C:
		return 0, errors.ErrExitTimeout
	}
}

// Kill forcefully terminates the process with SIGKILL. It is safe to call
// on an already-terminated process.
func (p *Process) Kill() error {
	p.log.Debug("Killing process", "pid", p.cmd.Process.Pid)

	if err := p.cmd.Process.Kill(); err != nil && !stderrors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill process (pid %d): %w", p.cmd.Process.Pid, err)
	}

	return nil
}

// Close releases all three streams. Streams already closed elsewhere
// (e.g. a fully-consumed line sequence, or a pipeline segment) report
// harmless double-close errors, which are ignored. Close is idempotent.
func (p *Process) Close() error {
	p.closeOnce.Do(func() {
		p.log.Debug("Closing process streams")

		for _, c := range []io.Closer{p.stdin, p.stdout, p.stderr} {
			if c == nil {
				continue
			}

			if err := c.Close(); err != nil && !stderrors.Is(err, os.ErrClosed) {
				p.closeErr = stderrors.Join(p.closeErr, err)
			}
		}
	})

	return p.closeErr
}
