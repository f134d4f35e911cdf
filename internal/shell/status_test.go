package shell

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultString(t *testing.T) {
	assert.Equal(t, "exit value 0", Result{}.String())
	assert.Equal(t, "exit value 1", Exited(1).String())
	assert.Equal(t, "terminated by signal 2", KilledBy(syscall.SIGINT).String())
}

func TestResultFromWaitStatus(t *testing.T) {
	// Linux encoding: exit code in bits 8-15, terminating signal in bits 0-6.
	assert.Equal(t, Exited(3), resultFromWaitStatus(syscall.WaitStatus(3<<8)))
	assert.Equal(t, KilledBy(syscall.SIGTERM), resultFromWaitStatus(syscall.WaitStatus(syscall.SIGTERM)))
}
