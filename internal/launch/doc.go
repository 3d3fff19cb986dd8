// Package launch creates and supervises child processes.
//
// It owns the single point of OS process creation, the Process handle
// with its eagerly captured standard streams, and the lazy line-sequence
// adapter over those streams.
package launch
