package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// ChildCommand is the hidden first argument that makes the smallsh binary
// act as the child side of a launch: it applies redirections and then
// replaces itself with the requested program.
const ChildCommand = "__exec-child"

// childArgs builds the helper argument list for cmd. An empty redirect
// argument means the stream is inherited.
func childArgs(cmd *Command) []string {
	args := []string{ChildCommand, cmd.InputRedirect, cmd.OutputRedirect}
	return append(args, cmd.Args...)
}

// ExecChild runs in the freshly started child. args are the input target,
// the output target and the argument vector. It only returns when the
// program could not be started, with the exit code the child must end with.
func ExecChild(args []string, stderr io.Writer) int {
	if len(args) < 3 {
		fmt.Fprintf(stderr, "smallsh: %s: missing arguments\n", ChildCommand)
		return CodeExecFailed
	}
	input, output, argv := args[0], args[1], args[2:]

	// The shell catches the interrupt, so it is already back to SIG_DFL
	// here; the stop request stays ignored across the exec.
	signal.Ignore(StopRequestSignal)

	if err := applyRedirects(input, output); err != nil {
		fmt.Fprintln(stderr, err)
		return exitCode(err)
	}
	err := execProgram(argv)
	fmt.Fprintln(stderr, err)
	return exitCode(err)
}

func exitCode(err error) int {
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.Code()
	}
	return CodeExecFailed
}

// applyRedirects opens each target once and installs it as the standard
// stream. Input is opened first so a missing input file never truncates
// the output file.
func applyRedirects(input, output string) error {
	if input != "" {
		if err := redirect(input, unix.O_RDONLY, 0, true); err != nil {
			return err
		}
	}
	if output != "" {
		if err := redirect(output, unix.O_WRONLY|unix.O_CREAT|unix.O_TRUNC, outputFileMode, false); err != nil {
			return err
		}
	}
	return nil
}

func redirect(path string, flags int, mode uint32, input bool) error {
	target := 1
	if input {
		target = 0
	}

	fd, err := unix.Open(path, flags|unix.O_CLOEXEC, mode)
	if err != nil {
		return &RedirectError{Path: path, Input: input, Err: err}
	}
	if err := dupTo(fd, target); err != nil {
		return &RedirectError{Path: path, Input: input, Err: err}
	}
	_ = unix.Close(fd)
	return nil
}

// execProgram replaces the process image. It only returns on failure.
func execProgram(argv []string) error {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			err = execErr.Err
		}
		return &ExecError{Program: argv[0], Err: err}
	}
	err = syscall.Exec(path, argv, os.Environ())
	return &ExecError{Program: argv[0], Err: err}
}
