package launch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/subproc-go/internal/config"
	"github.com/wagiedev/subproc-go/internal/errors"
)

// Launch starts a child process for the given argument vector.
//
// This is the sole point of OS-level process creation. The child's three
// standard streams are captured eagerly through dedicated pipes at start
// time, so buffered output stays readable after the process exits. Launch
// is synchronous: if the OS cannot create the process (executable not
// found, bad directory, permissions) it returns a LaunchError immediately
// rather than masking the failure as empty output.
//
// The context covers the whole process lifetime: cancelling it kills the
// child.
func Launch(ctx context.Context, argv []string, opts *config.Options) (*Process, error) {
	if opts == nil {
		opts = &config.Options{}
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	id := ulid.Make()
	log = log.With("component", "launcher", "process_id", id.String())

	log.Info("Starting process", "argv", argv)

	//nolint:gosec // G204: launching caller-supplied commands is this library's purpose
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	cmd.Env = BuildEnvironment(opts)

	log.Debug("Resolved launch configuration",
		"dir", cmd.Dir,
		"clear_env", opts.ClearEnv,
		"env_overlays", len(opts.Env),
		"redirect_stderr", opts.RedirectStderr,
	)

	// Hand the child raw pipe ends instead of using exec.Cmd's StdoutPipe
	// helpers: those are closed by Wait, which would discard buffered
	// output still unread when the process exits.
	stdinRead, stdinWrite, err := os.Pipe()
	if err != nil {
		return nil, &errors.LaunchError{Command: argv, Err: fmt.Errorf("stdin pipe: %w", err)}
	}

	stdoutRead, stdoutWrite, err := os.Pipe()
	if err != nil {
		closeAll(stdinRead, stdinWrite)

		return nil, &errors.LaunchError{Command: argv, Err: fmt.Errorf("stdout pipe: %w", err)}
	}

	cmd.Stdin = stdinRead
	cmd.Stdout = stdoutWrite

	var stderrRead, stderrWrite *os.File

	if opts.RedirectStderr {
		cmd.Stderr = stdoutWrite
	} else {
		stderrRead, stderrWrite, err = os.Pipe()
		if err != nil {
			closeAll(stdinRead, stdinWrite, stdoutRead, stdoutWrite)

			return nil, &errors.LaunchError{Command: argv, Err: fmt.Errorf("stderr pipe: %w", err)}
		}

		cmd.Stderr = stderrWrite
	}

	if err := cmd.Start(); err != nil {
		closeAll(stdinRead, stdinWrite, stdoutRead, stdoutWrite, stderrRead, stderrWrite)

		log.Error("Failed to start process", "error", err)

		return nil, &errors.LaunchError{Command: argv, Err: err}
	}

	// The child holds its own copies of these ends now. Closing ours is
	// what lets the parent-side reads see end-of-stream when it exits.
	closeAll(stdinRead, stdoutWrite, stderrWrite)

	log.Info("Process started", "pid", cmd.Process.Pid)

	// A nil *os.File must not reach the handle's io.ReadCloser field as
	// a typed-nil interface, or every stderr == nil check downstream
	// would pass a live value wrapping a nil pointer.
	var stderrStream io.ReadCloser
	if stderrRead != nil {
		stderrStream = stderrRead
	}

	p := newProcess(log, id, argv, cmd, stdinWrite, stdoutRead, stderrStream)

	return p, nil
}

// BuildEnvironment resolves the child's environment from the options.
//
// The inherited environment is the base unless ClearEnv is set, in which
// case the overlay is the entire environment. Overlay entries are appended
// last; os/exec keeps the last value for a duplicated key, so an overlay
// replaces an inherited variable of the same name.
func BuildEnvironment(opts *config.Options) []string {
	env := []string{}
	if !opts.ClearEnv {
		env = os.Environ()
	}

	for key, value := range opts.Env {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}

	return env
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		if f != nil {
			_ = f.Close()
		}
	}
}
