package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/elliotchance/orderedmap/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

const pollInterval = 10 * time.Millisecond

// Job is a background process and, once it has finished, how it ended.
type Job struct {
	Pid    int
	Args   []string
	Result Result
	Done   bool

	process *os.Process
}

// poll waits for the job with the given wait4 options. It reports whether
// the process has terminated.
func (j *Job) poll(options int) (bool, error) {
	var ws unix.WaitStatus
	for {
		pid, err := unix.Wait4(j.Pid, &ws, options, nil)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case err != nil:
			return true, fmt.Errorf("wait for pid %d: %w", j.Pid, err)
		case pid == 0:
			return false, nil
		}
		j.Result = resultFromWaitStatus(ws)
		j.Done = true
		if j.process != nil {
			_ = j.process.Release()
		}
		return true, nil
	}
}

// signal delivers sig to the job's process group, falling back to the
// process itself. A job that no longer exists is not an error.
func (j *Job) signal(sig syscall.Signal) error {
	err := unix.Kill(-j.Pid, sig)
	if errors.Is(err, unix.ESRCH) {
		err = unix.Kill(j.Pid, sig)
	}
	if err != nil && !errors.Is(err, unix.ESRCH) {
		return fmt.Errorf("signal pid %d: %w", j.Pid, err)
	}
	return nil
}

// JobTable tracks background jobs in the order they were started. It is
// only used from the goroutine running the main loop.
type JobTable struct {
	jobs *orderedmap.OrderedMap[int, *Job]
}

func NewJobTable() *JobTable {
	return &JobTable{
		jobs: orderedmap.NewOrderedMap[int, *Job](),
	}
}

// Add registers a started process as a running job.
func (t *JobTable) Add(process *os.Process, args []string) *Job {
	job := &Job{
		Pid:     process.Pid,
		Args:    args,
		process: process,
	}
	t.jobs.Set(job.Pid, job)
	return job
}

func (t *JobTable) Len() int {
	return t.jobs.Len()
}

// Jobs returns the tracked jobs in start order.
func (t *JobTable) Jobs() []*Job {
	jobs := make([]*Job, 0, t.jobs.Len())
	for job := range t.jobs.Values() {
		jobs = append(jobs, job)
	}
	return jobs
}

// Reap polls every job without blocking and removes the ones that have
// terminated, returning them in start order. A removed job is never
// polled again, so each one is returned exactly once.
func (t *JobTable) Reap() ([]*Job, error) {
	var (
		done []*Job
		errs []error
	)
	for _, job := range t.Jobs() {
		finished, err := job.poll(unix.WNOHANG)
		if err != nil {
			errs = append(errs, err)
		}
		if !finished {
			continue
		}
		t.jobs.Delete(job.Pid)
		if err == nil {
			done = append(done, job)
		}
	}
	return done, errors.Join(errs...)
}

// Terminate asks every running job to stop with SIGTERM, escalates to
// SIGKILL for jobs still alive after grace, and reaps all of them. The
// table is empty afterwards.
func (t *JobTable) Terminate(ctx context.Context, grace time.Duration) error {
	var g errgroup.Group
	for _, job := range t.Jobs() {
		g.Go(func() error {
			return terminate(ctx, job, grace)
		})
	}
	err := g.Wait()
	t.jobs = orderedmap.NewOrderedMap[int, *Job]()
	return err
}

func terminate(ctx context.Context, job *Job, grace time.Duration) error {
	if err := job.signal(unix.SIGTERM); err != nil {
		return err
	}

	deadline := time.NewTimer(grace)
	defer deadline.Stop()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		finished, err := job.poll(unix.WNOHANG)
		if finished {
			return err
		}
		select {
		case <-ticker.C:
			continue
		case <-deadline.C:
		case <-ctx.Done():
		}
		if err := job.signal(unix.SIGKILL); err != nil {
			return err
		}
		_, err = job.poll(0)
		return err
	}
}
