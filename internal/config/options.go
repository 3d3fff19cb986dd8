// Package config holds the launch configuration shared between the public
// API surface and the internal launch machinery.
package config

import "log/slog"

// Options configures how a child process is launched.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Env holds environment variables merged into the inherited
	// environment (or forming the entire environment when ClearEnv
	// is set). Overlays replace inherited values of the same name.
	Env map[string]string

	// ClearEnv drops the inherited environment so the child sees only
	// the variables in Env.
	ClearEnv bool

	// Dir sets the working directory for the child process.
	// Empty means the child inherits the caller's current directory.
	Dir string

	// RedirectStderr merges the child's stderr into its stdout stream.
	// The handle's stderr accessors then report the stream as absent,
	// not empty, so callers can distinguish merged-output mode.
	RedirectStderr bool

	// Shell wraps the tokenized command as `sh -c "<command>"` so shell
	// metacharacters are honored by an actual shell. This opts out of
	// the tokenizer's quoting protections entirely.
	Shell bool
}
