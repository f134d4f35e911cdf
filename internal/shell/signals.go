package shell

import (
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/unix"
)

// Signals that drive the shell: an interrupt only ever kills the foreground
// child, a stop request toggles foreground-only mode.
const (
	InterruptSignal   = syscall.SIGINT
	StopRequestSignal = syscall.SIGTSTP
)

var (
	enterForegroundOnly = []byte("Entering foreground-only mode (& is now ignored)\n")
	exitForegroundOnly  = []byte("Exiting foreground-only mode\n")
)

// Signals receives the interrupt and stop-request signals. The goroutine
// draining them only flips foregroundOnly and writes constant notices; all
// other shell state belongs to the main loop.
type Signals struct {
	ch             chan os.Signal
	notices        io.Writer
	foregroundOnly atomic.Bool
	started        atomic.Bool
	quit           chan struct{}
	done           chan struct{}
}

func NewSignals(notices io.Writer) *Signals {
	return &Signals{
		ch:      make(chan os.Signal, 1),
		notices: notices,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start installs the handlers. From then on an interrupt no longer
// terminates the shell itself.
func (s *Signals) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	signal.Notify(s.ch, InterruptSignal, StopRequestSignal)
	go s.handleSignals()
}

// Stop restores default signal handling.
func (s *Signals) Stop() {
	if !s.started.CompareAndSwap(true, false) {
		return
	}
	signal.Stop(s.ch)
	close(s.quit)
	<-s.done
}

func (s *Signals) handleSignals() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case sig := <-s.ch:
			switch sig {
			case InterruptSignal:
				// The foreground child, if any, got the same signal from the
				// terminal and dies with the default disposition.
			case StopRequestSignal:
				s.ToggleForegroundOnly()
			}
		}
	}
}

// ForegroundOnly reports whether a trailing & is currently ignored.
func (s *Signals) ForegroundOnly() bool {
	return s.foregroundOnly.Load()
}

// ToggleForegroundOnly flips the mode, writes the matching notice and
// returns the new mode.
func (s *Signals) ToggleForegroundOnly() bool {
	for {
		old := s.foregroundOnly.Load()
		if !s.foregroundOnly.CompareAndSwap(old, !old) {
			continue
		}
		if old {
			_, _ = s.notices.Write(exitForegroundOnly)
		} else {
			_, _ = s.notices.Write(enterForegroundOnly)
		}
		return !old
	}
}

// spawn runs start with the stop-request signal ignored, so the process it
// creates inherits SIG_IGN for it. The interrupt signal is caught by the
// shell and therefore reset to its default disposition in the child.
func (s *Signals) spawn(start func() error) error {
	if !s.started.Load() {
		return start()
	}
	signal.Ignore(StopRequestSignal)
	defer signal.Notify(s.ch, StopRequestSignal)
	return start()
}

// RaiseStopRequest sends the stop-request signal to the shell itself.
func RaiseStopRequest() error {
	return unix.Kill(os.Getpid(), StopRequestSignal)
}
