package shell

import (
	"errors"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"

	"smallsh/internal/config"
	"smallsh/internal/history"
	"smallsh/internal/logger"
)

type Shell struct {
	config  *config.Config
	history *history.History
	log     *logger.Logger
	reader  LineReader
	signals *Signals
	jobs    *JobTable

	// last is the result of the most recent foreground command.
	last   Result
	pid    int
	stdin  io.Reader
	helper string
	// foregroundOnly is the mode as last seen by the main loop.
	foregroundOnly bool
	exiting        bool
	exitCode       int
}

// New builds a shell reading lines from reader. Foreground-only notices go
// to the reader's own output when it has one, so they do not garble a
// prompt being edited.
func New(cfg *config.Config, hist *history.History, log *logger.Logger, reader LineReader) *Shell {
	var notices io.Writer = log.Stdout
	if nw, ok := reader.(noticeWriter); ok {
		notices = nw.Stdout()
	}

	return &Shell{
		config:  cfg,
		history: hist,
		log:     log,
		reader:  reader,
		signals: NewSignals(notices),
		jobs:    NewJobTable(),
		pid:     os.Getpid(),
		stdin:   os.Stdin,
		helper:  helperPath(),
	}
}

// Run is the read-parse-execute loop. It returns the exit code for the
// process once exit is run or the input ends.
func (s *Shell) Run() int {
	s.signals.Start()
	defer s.signals.Stop()
	defer s.reader.Close()

	for !s.exiting {
		s.reapJobs()
		s.traceMode()

		line, err := s.reader.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			s.exit()
		case err != nil:
			s.log.Errf(logger.Red, "smallsh: error reading input: %v", err)
			s.exit()
			s.exitCode = CodeFailure
		default:
			s.Execute(line)
		}
	}
	return s.exitCode
}

// Execute parses and runs a single line.
func (s *Shell) Execute(line string) {
	cmd, err := Parse(line, s.pid)
	if cmd == nil && err == nil {
		return
	}
	s.remember(line)
	if err != nil {
		s.log.Errf(logger.Red, "smallsh: %v", err)
		return
	}

	s.traceMode()
	if cmd.Background && s.foregroundOnly {
		cmd.Background = false
	}

	if ok, err := s.executeBuiltin(cmd); ok {
		if err != nil {
			s.reportBuiltinError(err)
		}
		return
	}

	if err := s.runExternal(cmd); err != nil {
		s.reportLaunchError(cmd, err)
	}
}

// reapJobs reports every background job that finished since the last call.
func (s *Shell) reapJobs() {
	done, err := s.jobs.Reap()
	for _, job := range done {
		s.log.Outf(logger.Default, "background pid %d is done: %s", job.Pid, job.Result)
		s.log.VerboseErrf(logger.Magenta, "smallsh: reaped %s (pid %d)", shellquote.Join(job.Args...), job.Pid)
	}
	if err != nil {
		s.log.VerboseErrf(logger.Yellow, "smallsh: %v", err)
	}
}

func (s *Shell) reportBuiltinError(err error) {
	var dirErr *DirectoryError
	if errors.As(err, &dirErr) {
		s.log.Outf(logger.Default, "%s", dirErr)
		s.log.VerboseErrf(logger.Yellow, "smallsh: cd: %v", dirErr.Err)
		return
	}
	s.log.Errf(logger.Red, "smallsh: %v", err)
}

// traceMode picks up a foreground-only toggle made by the signal goroutine.
func (s *Shell) traceMode() {
	mode := s.signals.ForegroundOnly()
	if mode == s.foregroundOnly {
		return
	}
	s.foregroundOnly = mode
	if mode {
		s.log.VerboseErrf(logger.Yellow, "smallsh: foreground-only mode on")
	} else {
		s.log.VerboseErrf(logger.Yellow, "smallsh: foreground-only mode off")
	}
}

// reportLaunchError prints a failure to create the child. Redirect and
// exec failures happen inside the child and surface as its exit status,
// so the last result is left alone here.
func (s *Shell) reportLaunchError(cmd *Command, err error) {
	s.log.Errf(logger.Red, "smallsh: %v", err)
	s.log.VerboseErrf(logger.Yellow, "smallsh: %s was not run", shellquote.Join(cmd.Args...))
}

// remember records line in the persistent history and, when supported, in
// the line editor.
func (s *Shell) remember(line string) {
	if s.history == nil {
		return
	}
	if err := s.history.Add(line); err != nil {
		s.log.VerboseErrf(logger.Yellow, "smallsh: error saving history: %v", err)
	}
	if hs, ok := s.reader.(historySaver); ok {
		_ = hs.SaveHistory(line)
	}
}
