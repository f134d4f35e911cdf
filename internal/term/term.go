package term

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether the shell talks to a person: both its
// input and its output must be terminals. Scripts piped into the shell
// get plain output.
func IsInteractive(in, out *os.File) bool {
	if in == nil || out == nil {
		return false
	}
	return term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd()))
}
