// Package errors defines error types for the subproc library.
//
// This package provides structured error types that wrap the failure
// scenarios of launching and supervising child processes. All error types
// support error unwrapping and can be checked using errors.Is, errors.As,
// and errors.AsType.
package errors
