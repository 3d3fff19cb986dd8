// Package subproc launches external programs and orchestrates their
// standard streams.
//
// Commands are given either as a single string, tokenized with
// quote-aware whitespace splitting, or as a pre-split argument list.
// A launched process is represented by a Process handle exposing its
// stdin, stdout, and stderr, lazy line sequences over the output
// streams, kill, and blocking or timeout-bounded exit-code retrieval.
//
// # One-shot capture
//
// Run launches a process on a background goroutine and captures its
// complete stdout:
//
//	result := subproc.Run(ctx, subproc.Line(`echo "hello world"`))
//
//	out, err := result.Wait(ctx)
//	if err != nil {
//	    var exitErr *subproc.ExitError
//	    if errors.As(err, &exitErr) {
//	        log.Printf("exit %d: %s", exitErr.ExitCode, exitErr.Stderr)
//	    }
//	    return err
//	}
//	fmt.Println(out) // "hello world"
//
// Run buffers all output in memory; for processes producing unbounded
// output, use the streaming surface instead.
//
// # Streaming
//
// Exec launches a process without blocking and hands back its handle.
// Lines are pulled on demand while the process runs:
//
//	p, err := subproc.Exec(ctx, subproc.Line("tail -f /var/log/syslog"))
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	for line := range p.StdoutLines().All() {
//	    fmt.Println(line)
//	}
//
// # Pipelines
//
// Pipe wires already-launched processes stdout-to-stdin, copying each
// segment concurrently so no process deadlocks on backpressure:
//
//	gen, _ := subproc.Exec(ctx, subproc.Line("seq 1 100000"))
//	rev, _ := subproc.Exec(ctx, subproc.Line("rev"))
//
//	pl, err := subproc.Pipe(gen, rev)
//
// Tokenization is not a shell: no globbing, redirection, expansion, or
// subshells. WithShell opts into a real `sh -c` wrapper for callers that
// need those, at the cost of the tokenizer's quoting protections.
package subproc
