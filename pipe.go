package subproc

import (
	stderrors "errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/subproc-go/internal/errors"
)

// Pipeline is a chain of processes connected stdout-to-stdin. Only its
// boundary streams are exposed: the stdin of the first process and the
// stdout of the last. Every intermediate stream is owned by the pipeline
// and closed once its segment's copy completes.
type Pipeline struct {
	procs []*Process
}

// Pipe chains already-launched processes by copying each one's stdout
// into the next one's stdin.
//
// All segment copies run concurrently, one goroutine per adjacent pair;
// running them sequentially could deadlock with an early process blocked
// on a full pipe buffer while a later process's stdin waits to be fed.
// Pipe blocks until every segment has reached end-of-stream and both of
// its ends are closed, then returns with the boundary streams still open
// for the caller.
//
// On a segment failure (e.g. a broken pipe) the streams of every process
// in the chain are closed best-effort and the error is returned.
func Pipe(procs ...*Process) (*Pipeline, error) {
	if len(procs) < 2 {
		return nil, errors.ErrTooFewProcesses
	}

	var g errgroup.Group

	for i := range procs[:len(procs)-1] {
		src, dst := procs[i], procs[i+1]

		g.Go(func() error {
			_, copyErr := io.Copy(dst.Stdin(), src.Stdout())

			closeErr := stderrors.Join(src.Stdout().Close(), dst.Stdin().Close())

			if copyErr != nil {
				return fmt.Errorf("pipe segment %d -> %d: %w", i, i+1, copyErr)
			}

			return closeErr
		})
	}

	if err := g.Wait(); err != nil {
		for _, p := range procs {
			_ = p.Close()
		}

		return nil, err
	}

	return &Pipeline{procs: procs}, nil
}

// Stdin returns the writable stdin of the first process in the chain.
func (pl *Pipeline) Stdin() io.WriteCloser {
	return pl.procs[0].Stdin()
}

// Stdout returns the readable stdout of the last process in the chain.
func (pl *Pipeline) Stdout() io.ReadCloser {
	return pl.procs[len(pl.procs)-1].Stdout()
}

// Procs returns the handles of the chained processes, in order.
func (pl *Pipeline) Procs() []*Process {
	return pl.procs
}
