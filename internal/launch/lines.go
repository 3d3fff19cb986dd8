package launch

import (
	"bufio"
	"io"
	"iter"
	"strings"

	"github.com/wagiedev/subproc-go/internal/errors"
)

// LineSeq is a lazy, pull-based, forward-only view of a byte stream as
// text lines. Each call to Next performs exactly one blocking line read;
// nothing is read ahead beyond the internal buffering of bufio.Reader,
// and no background goroutine is involved.
//
// Reaching end-of-stream closes the underlying stream as a side effect of
// exhaustion. A consumer that abandons the sequence early must call Close
// itself (or close the stream through the Process handle) to avoid a
// resource leak.
//
// A LineSeq is a single-consumer resource and is not safe for concurrent
// use.
type LineSeq struct {
	reader *bufio.Reader
	closer io.Closer
	err    error // sticky read error, nil on clean exhaustion
	done   bool
}

// NewLineSeq wraps a readable stream as a line sequence. A nil stream
// (an absent stderr under redirection) yields a nil sequence.
func NewLineSeq(rc io.ReadCloser) *LineSeq {
	if rc == nil {
		return nil
	}

	return &LineSeq{
		reader: bufio.NewReader(rc),
		closer: rc,
	}
}

// Next returns the next line with its trailing newline removed.
//
// At end-of-stream it closes the underlying stream and returns io.EOF.
// An I/O failure is returned as a StreamError and is sticky: every
// subsequent call returns the same error. Lines delivered before a
// failure remain valid.
func (s *LineSeq) Next() (string, error) {
	if s.done {
		if s.err != nil {
			return "", s.err
		}

		return "", io.EOF
	}

	line, err := s.reader.ReadString('\n')

	switch {
	case err == nil:
		return trimEOL(line), nil

	case err == io.EOF:
		s.done = true
		_ = s.closer.Close()

		// A final line without a trailing newline is still a line.
		if line != "" {
			return trimEOL(line), nil
		}

		return "", io.EOF

	default:
		s.done = true
		s.err = &errors.StreamError{Err: err}
		_ = s.closer.Close()

		return "", s.err
	}
}

// All exposes the remaining lines as a range-over-func iterator. The
// iterator stops at end-of-stream or on the first read error; check Err
// afterwards to distinguish the two.
func (s *LineSeq) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			line, err := s.Next()
			if err != nil {
				return
			}

			if !yield(line) {
				return
			}
		}
	}
}

// Err returns the read error that terminated the sequence, or nil if the
// sequence is still live or was exhausted cleanly.
func (s *LineSeq) Err() error {
	return s.err
}

// Close releases the underlying stream for consumers that abandon the
// sequence before exhaustion. Closing an exhausted sequence is a no-op.
func (s *LineSeq) Close() error {
	if s.done {
		return nil
	}

	s.done = true

	return s.closer.Close()
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")

	return strings.TrimSuffix(line, "\r")
}
