package token

import (
	"strings"
	"unicode"

	"github.com/wagiedev/subproc-go/internal/errors"
)

// Command is a launchable command in one of two shapes.
// Implementations: Line, Argv.
type Command interface {
	command() // marker method
}

// Line is a single command string. It is split on runs of whitespace with
// paired quote handling, so `echo "a b" c` yields the tokens
// ["echo", "a b", "c"].
type Line string

func (Line) command() {}

// Argv is an ordered list of arguments, each either a Word or a Joined.
type Argv []Arg

func (Argv) command() {}

// Arg is one element of an Argv.
// Implementations: Word, Joined.
type Arg interface {
	arg() // marker method
}

// Word is split the same way as a Line and its pieces spliced into the
// argument vector in place.
type Word string

func (Word) arg() {}

// Joined is joined with a single interior space into one atomic token that
// is never re-split. This is the escape mechanism for arguments containing
// literal whitespace.
type Joined []string

func (Joined) arg() {}

// Split breaks a command string into tokens on runs of whitespace.
// Whitespace inside a span delimited by paired `"` or `'` characters does
// not split the token, and the delimiting quote characters are stripped.
// A quote character of the other kind inside a quoted span is literal.
// An unterminated quote extends the token to the end of the string.
// Empty tokens are dropped.
func Split(s string) []string {
	var (
		tokens []string
		cur    strings.Builder
		quote  rune
	)

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}

	flush()

	return tokens
}

// Resolve flattens a Command into the argument vector handed to the OS.
// The first token is the executable name or path.
//
// When shell is true the tokens are collapsed back into a single string
// and wrapped as `sh -c "<command>"`, delegating metacharacter handling
// to an actual shell.
//
// Returns ErrEmptyCommand if the command resolves to zero tokens; an
// empty vector is never passed to the OS launcher.
func Resolve(cmd Command, shell bool) ([]string, error) {
	var tokens []string

	switch c := cmd.(type) {
	case Line:
		tokens = Split(string(c))
	case Argv:
		for _, a := range c {
			switch a := a.(type) {
			case Word:
				tokens = append(tokens, Split(string(a))...)
			case Joined:
				if joined := strings.Join(a, " "); joined != "" {
					tokens = append(tokens, joined)
				}
			}
		}
	}

	if len(tokens) == 0 {
		return nil, errors.ErrEmptyCommand
	}

	if shell {
		tokens = []string{"sh", "-c", strings.Join(tokens, " ")}
	}

	return tokens, nil
}
