package orchestrator

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Run is one captured child process. Its log and status are safe to read
// while the child is still running.
type Run struct {
	id      string
	command string
	argv    []string

	mu        sync.Mutex
	logged    *sync.Cond
	status    Status
	log       []Line
	logClosed bool
	result    Result

	lines chan Line
	done  chan struct{}
}

func newRun(command string, argv []string, buffer int) *Run {
	if buffer < 1 {
		buffer = 1
	}
	r := &Run{
		id:      uuid.NewString(),
		command: command,
		argv:    argv,
		lines:   make(chan Line, buffer),
		done:    make(chan struct{}),
	}
	r.logged = sync.NewCond(&r.mu)
	return r
}

// ID returns the run identifier.
func (r *Run) ID() string { return r.id }

// Command returns the shell command of the run.
func (r *Run) Command() string { return r.command }

// Argv returns the full process argv.
func (r *Run) Argv() []string { return append([]string(nil), r.argv...) }

// Lines delivers output in log order and is closed after the last logged
// line. Delivery is fed from the log, so a slow or absent reader never holds
// back the child or Done. Lines not received before Wait are discarded by
// Wait; the log keeps them.
func (r *Run) Lines() <-chan Line { return r.lines }

// Done is closed when the run reaches a terminal status.
func (r *Run) Done() <-chan struct{} { return r.done }

// Log returns a snapshot of the lines collected so far.
func (r *Run) Log() []Line {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Line(nil), r.log...)
}

// Status returns the current status.
func (r *Run) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Result returns the outcome; it is zero-valued until the run is done.
func (r *Run) Result() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// Wait drains undelivered lines and blocks until the run finishes or ctx is
// done. Cancelling ctx stops the wait only; the child keeps running.
// The returned error is ctx.Err() or the run's failure.
func (r *Run) Wait(ctx context.Context) (Result, error) {
	lines := r.lines
	for {
		select {
		case <-ctx.Done():
			return r.Result(), ctx.Err()
		case _, ok := <-lines:
			if !ok {
				lines = nil
			}
		case <-r.done:
			if lines != nil {
				for range lines {
				}
			}
			result := r.Result()
			return result, result.Err
		}
	}
}

func (r *Run) append(line Line) {
	r.mu.Lock()
	r.log = append(r.log, line)
	r.mu.Unlock()
	r.logged.Broadcast()
}

// closeLog marks the log complete so deliver can close Lines.
func (r *Run) closeLog() {
	r.mu.Lock()
	r.logClosed = true
	r.mu.Unlock()
	r.logged.Broadcast()
}

// deliver copies the log to Lines in order and closes it once the log is
// complete and fully sent.
func (r *Run) deliver() {
	defer close(r.lines)
	for next := 0; ; next++ {
		r.mu.Lock()
		for next >= len(r.log) && !r.logClosed {
			r.logged.Wait()
		}
		if next >= len(r.log) {
			r.mu.Unlock()
			return
		}
		line := r.log[next]
		r.mu.Unlock()
		r.lines <- line
	}
}

// advance moves the status forward; backward or repeated transitions are ignored.
func (r *Run) advance(next Status) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if next <= r.status || r.status.Terminal() {
		return false
	}
	r.status = next
	return true
}

func (r *Run) finish(result Result) {
	r.mu.Lock()
	if !r.status.Terminal() {
		r.status = result.Status
		r.result = result
	}
	r.mu.Unlock()
	close(r.done)
}
