package subproc

import (
	"log/slog"

	"github.com/wagiedev/subproc-go/internal/config"
)

// Options configures how a child process is launched.
type Options = config.Options

// Option configures launch behavior using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithEnv merges the given variables into the child's inherited
// environment. An entry replaces an inherited variable of the same name.
// Combine with WithClearEnv to make these the entire environment.
func WithEnv(env map[string]string) Option {
	return func(o *Options) {
		o.Env = env
	}
}

// WithClearEnv drops the inherited environment, so the child sees only
// the variables given via WithEnv.
func WithClearEnv() Option {
	return func(o *Options) {
		o.ClearEnv = true
	}
}

// WithDir sets the child's working directory.
// If not set, the child inherits the caller's current directory.
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}

// WithRedirectStderr merges the child's stderr into its stdout stream.
// The handle's Stderr and StderrLines accessors then return nil so
// callers can tell merged-output mode apart from an empty stream.
func WithRedirectStderr() Option {
	return func(o *Options) {
		o.RedirectStderr = true
	}
}

// WithShell wraps the command as `sh -c "<command>"` so pipes, globbing,
// and redirection are handled by an actual shell.
//
// This opts out of the tokenizer's quoting protections entirely: the
// command string reaches the shell verbatim, including anything an
// untrusted input may have injected into it.
func WithShell() Option {
	return func(o *Options) {
		o.Shell = true
	}
}
