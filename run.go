package subproc

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/subproc-go/internal/errors"
)

// Result is the deferred outcome of a Run call. It completes when the
// process has exited and its output has been fully collected.
type Result struct {
	done chan struct{}

	mu   sync.Mutex // protects proc, which is published before done closes
	proc *Process

	// Written by the run goroutine before done is closed; read only
	// after done is closed.
	out string
	err error
}

// Run launches the command and captures its complete stdout on a
// background goroutine, returning the in-flight Result immediately.
//
// On exit code 0 the result's value is stdout with lines joined by "\n".
// On a non-zero exit the result fails with an ExitError carrying the
// command, pid, exit code, and the full stdout and stderr text, so the
// failure can be logged or re-presented without re-running the process.
//
// Stdin is closed immediately; Run is for commands that take no input.
// All output is buffered in memory, so Run is not suitable for processes
// producing unbounded output - use Exec and the line sequences for those.
func Run(ctx context.Context, cmd Command, opts ...Option) *Result {
	r := &Result{done: make(chan struct{})}

	go func() {
		defer close(r.done)

		r.out, r.err = r.capture(ctx, cmd, opts)
	}()

	return r
}

// Wait blocks until the run completes and returns its captured stdout or
// failure. The wait is bounded by ctx; cancellation abandons the wait
// only, not the run itself.
func (r *Result) Wait(ctx context.Context) (string, error) {
	select {
	case <-r.done:
		return r.out, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Done returns a channel closed when the run has completed.
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Process returns the handle of the launched process, or nil before the
// launch has happened (or if it failed).
func (r *Result) Process() *Process {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.proc
}

func (r *Result) capture(ctx context.Context, cmd Command, opts []Option) (string, error) {
	p, err := Exec(ctx, cmd, opts...)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.proc = p
	r.mu.Unlock()

	// One-shot mode sends no input; closing stdin lets filters like
	// cat terminate instead of waiting forever.
	_ = p.Stdin().Close()

	stdoutSeq := p.StdoutLines()
	stderrSeq := p.StderrLines() // nil under stderr redirection

	// Drain concurrently with the exit wait. Waiting first and draining
	// after would deadlock once the child fills an OS pipe buffer.
	var (
		g          errgroup.Group
		stdoutText string
		stderrText string
	)

	g.Go(func() error {
		var err error

		stdoutText, err = collectLines(stdoutSeq)

		return err
	})

	if stderrSeq != nil {
		g.Go(func() error {
			var err error

			stderrText, err = collectLines(stderrSeq)

			return err
		})
	}

	code, waitErr := p.ExitCode(ctx)
	drainErr := g.Wait()

	if waitErr != nil {
		return "", waitErr
	}

	// A non-zero exit is the richer diagnostic: report it even when a
	// drain failed mid-collection, carrying the partial output and the
	// stream failure for unwrapping.
	if code != 0 {
		return "", &errors.ExitError{
			Command:  p.Command(),
			Pid:      p.Pid(),
			ExitCode: code,
			Stdout:   stdoutText,
			Stderr:   stderrText,
			Err:      drainErr,
		}
	}

	if drainErr != nil {
		return "", drainErr
	}

	return stdoutText, nil
}

// collectLines fully drains a line sequence and joins the lines with a
// newline separator. On a read failure it returns the lines collected
// so far along with the error.
func collectLines(seq *LineSeq) (string, error) {
	var lines []string

	for line := range seq.All() {
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n"), seq.Err()
}
