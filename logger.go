package subproc

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that drops every record. Launches are
// silent by default; pass this via WithLogger when an explicit logger
// value is required but no output is wanted.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
