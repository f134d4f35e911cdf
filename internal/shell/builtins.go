package shell

import (
	"context"
	"os"

	"smallsh/internal/logger"
)

// executeBuiltin runs cmd if it names a built-in. Built-ins run inside the
// shell, ignore redirection and & and never change the last result.
func (s *Shell) executeBuiltin(cmd *Command) (bool, error) {
	switch cmd.Program {
	case "exit":
		s.exit()
		return true, nil
	case "status":
		s.log.Outf(logger.Default, "%s", s.last)
		return true, nil
	case "cd":
		return true, s.changeDirectory(cmd.Args[1:])
	default:
		return false, nil
	}
}

// changeDirectory moves to the first argument, or to the home directory
// when there is none. Extra arguments are ignored.
func (s *Shell) changeDirectory(args []string) error {
	var dir string
	if len(args) == 0 {
		dir = s.homeDir()
	} else {
		dir = args[0]
	}

	if err := os.Chdir(dir); err != nil {
		return &DirectoryError{Path: dir, Err: err}
	}
	return nil
}

// homeDir prefers $HOME and falls back to the configured directory.
func (s *Shell) homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	return s.config.HomeDir
}

// exit terminates every background job and ends the main loop.
func (s *Shell) exit() {
	s.exiting = true
	s.exitCode = CodeOk
	if s.jobs.Len() == 0 {
		return
	}

	s.log.VerboseErrf(logger.Magenta, "smallsh: terminating %d background job(s)", s.jobs.Len())
	if err := s.jobs.Terminate(context.Background(), s.config.KillGrace); err != nil {
		s.log.Errf(logger.Red, "smallsh: %v", err)
		s.exitCode = CodeFailure
	}
}
