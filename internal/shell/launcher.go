package shell

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/kballard/go-shellquote"

	"smallsh/internal/logger"
)

// Redirected output files are created with rw-r--r--.
const outputFileMode = 0o644

// helperPath is the binary re-executed as the child side of a launch.
func helperPath() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}
	return "/proc/self/exe"
}

// runExternal starts cmd as a child process. The child applies the
// redirections and replaces itself with the program (see ExecChild), so
// redirect and exec failures end that child with their own exit code.
// Foreground commands are waited for and recorded as the last result;
// background commands are added to the job table and left running.
func (s *Shell) runExternal(cmd *Command) error {
	c := exec.Command(s.helper, childArgs(cmd)...)
	c.Stdin = s.stdin
	c.Stdout = s.log.Stdout
	c.Stderr = s.log.Stderr
	if cmd.Background {
		// Keep terminal-generated signals away from background jobs and
		// never let them read from the terminal.
		c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
		c.Stdin = nil
	}

	if err := s.signals.spawn(c.Start); err != nil {
		return &SpawnError{Program: cmd.Program, Err: err}
	}
	s.log.VerboseErrf(logger.Magenta, "smallsh: started %s (pid %d)", shellquote.Join(cmd.Args...), c.Process.Pid)

	if cmd.Background {
		job := s.jobs.Add(c.Process, cmd.Args)
		s.log.Outf(logger.Default, "background pid is %d", job.Pid)
		return nil
	}
	return s.waitForeground(c)
}

// waitForeground blocks until the child started by c terminates.
func (s *Shell) waitForeground(c *exec.Cmd) error {
	err := c.Wait()
	if c.ProcessState == nil {
		return fmt.Errorf("wait for pid %d: %w", c.Process.Pid, err)
	}

	if ws, ok := c.ProcessState.Sys().(syscall.WaitStatus); ok {
		s.last = resultFromWaitStatus(ws)
	} else {
		s.last = Exited(c.ProcessState.ExitCode())
	}
	if s.last.Signaled {
		s.log.Outf(logger.Default, "%s", s.last)
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return err
	}
	return nil
}
