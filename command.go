package subproc

import "github.com/wagiedev/subproc-go/internal/token"

// Re-export command types from the internal token package.

// Command is a launchable command: either a Line or an Argv.
type Command = token.Command

// Line is a single command string, split on whitespace with paired-quote
// handling. `Line(`echo "a b" c`)` resolves to ["echo", "a b", "c"].
type Line = token.Line

// Argv is an ordered argument list whose elements are Words or Joineds.
type Argv = token.Argv

// Arg is one element of an Argv.
type Arg = token.Arg

// Word is split like a Line and spliced into the argument vector.
type Word = token.Word

// Joined is joined with single spaces into one atomic token that is never
// re-split, for arguments containing literal whitespace.
type Joined = token.Joined

// Words builds an Argv from plain words, one token each after splitting.
func Words(words ...string) Argv {
	argv := make(Argv, 0, len(words))
	for _, w := range words {
		argv = append(argv, Word(w))
	}

	return argv
}
