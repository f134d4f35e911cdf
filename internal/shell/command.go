package shell

import (
	"strings"
)

const (
	opInput      = "<"
	opOutput     = ">"
	opBackground = "&"
	commentMark  = "#"
)

// Command is one parsed input line.
type Command struct {
	Program string
	// Args holds the full argument vector; Args[0] == Program.
	Args           []string
	InputRedirect  string
	OutputRedirect string
	Background     bool
}

// Parse splits line on whitespace, expands PIDMarker in every token using
// pid and classifies the tokens. Blank lines and comments yield a nil
// Command and a nil error.
//
// The first token is always the program. "<" and ">" take the following
// token as their file name; "&" requests background execution only when
// it is the last token and is an ordinary argument anywhere else.
func Parse(line string, pid int) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], commentMark) {
		return nil, nil
	}

	program := Expand(fields[0], pid)
	cmd := &Command{
		Program: program,
		Args:    []string{program},
	}

	for i := 1; i < len(fields); i++ {
		tok := fields[i]
		switch {
		case tok == opInput || tok == opOutput:
			if i+1 >= len(fields) {
				return nil, &ParseError{Operator: tok, Err: ErrDanglingRedirect}
			}
			i++
			target := Expand(fields[i], pid)
			if tok == opInput {
				cmd.InputRedirect = target
			} else {
				cmd.OutputRedirect = target
			}
		case tok == opBackground && i == len(fields)-1:
			cmd.Background = true
		default:
			cmd.Args = append(cmd.Args, Expand(tok, pid))
		}
	}

	return cmd, nil
}
