package shell

import (
	"errors"
	"fmt"
)

// General exit codes of the shell process.
const (
	CodeOk      int = iota // Normal shutdown
	CodeFailure            // Background jobs could not be terminated on exit
)

// Exit codes recorded for commands that never reached their program.
const (
	CodeRedirectFailed = 1
	CodeExecFailed     = 2
)

// ErrDanglingRedirect is returned when < or > ends the line.
var ErrDanglingRedirect = errors.New("missing file name after redirection operator")

// ExitCoder is implemented by errors that stand in for a command's exit
// status.
type ExitCoder interface {
	error
	Code() int
}

// ParseError rejects an input line before anything is executed.
type ParseError struct {
	Operator string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error near %q: %v", e.Operator, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RedirectError means a redirection target could not be opened.
type RedirectError struct {
	Path  string
	Input bool
	Err   error
}

func (e *RedirectError) Error() string {
	if e.Input {
		return fmt.Sprintf("cannot open %s for input", e.Path)
	}
	return fmt.Sprintf("cannot open %s for output", e.Path)
}

func (e *RedirectError) Unwrap() error { return e.Err }
func (e *RedirectError) Code() int     { return CodeRedirectFailed }

// ExecError means the program could not be found or executed.
type ExecError struct {
	Program string
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: %v", e.Program, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }
func (e *ExecError) Code() int     { return CodeExecFailed }

// SpawnError means no process could be created at all.
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("%s: cannot create process: %v", e.Program, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// DirectoryError is returned by cd when the target cannot be entered.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return "Directory not found."
}

func (e *DirectoryError) Unwrap() error { return e.Err }
