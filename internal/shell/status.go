package shell

import (
	"fmt"
	"syscall"
)

// Result is how a command finished: with an exit code or killed by a signal.
// The zero value is "exit value 0".
type Result struct {
	Signaled bool
	Code     int // exit code, or signal number when Signaled
}

// Exited returns the Result of a normal exit.
func Exited(code int) Result {
	return Result{Code: code}
}

// KilledBy returns the Result of a signal termination.
func KilledBy(sig syscall.Signal) Result {
	return Result{Signaled: true, Code: int(sig)}
}

// waitStatus is satisfied by both syscall.WaitStatus and unix.WaitStatus.
type waitStatus interface {
	Signaled() bool
	Signal() syscall.Signal
	ExitStatus() int
}

// resultFromWaitStatus converts the status reported by wait(2).
func resultFromWaitStatus(ws waitStatus) Result {
	if ws.Signaled() {
		return KilledBy(ws.Signal())
	}
	return Exited(ws.ExitStatus())
}

func (r Result) String() string {
	if r.Signaled {
		return fmt.Sprintf("terminated by signal %d", r.Code)
	}
	return fmt.Sprintf("exit value %d", r.Code)
}
