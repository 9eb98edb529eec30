package orchestrator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/surface"
)

const (
	// DefaultLineBuffer is the capacity of a run's Lines channel.
	DefaultLineBuffer = 256

	scanInitialBuffer = 64 * 1024
	scanMaxLine       = 1024 * 1024
)

// Options configures an Orchestrator. Zero values select the defaults.
type Options struct {
	Shell      string
	LineBuffer int
}

// Orchestrator starts child processes. It allows one captured run at a time.
type Orchestrator struct {
	shell      string
	lineBuffer int

	mu     sync.Mutex
	active *Run
}

// New returns an orchestrator for opts.
func New(opts Options) *Orchestrator {
	o := &Orchestrator{shell: opts.Shell, lineBuffer: opts.LineBuffer}
	if o.shell == "" {
		o.shell = surface.DefaultShell
	}
	if o.lineBuffer <= 0 {
		o.lineBuffer = DefaultLineBuffer
	}
	return o
}

// Start spawns `[broker...] shell -c command` and returns immediately.
// Output is collected in the background. When the process cannot be started
// the returned run is already Failed, its log ends with a StreamSpawnError
// line and the error is a *SpawnError.
func (o *Orchestrator) Start(req Request) (*Run, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.active != nil && !o.active.Status().Terminal() {
		return nil, ErrRunInProgress
	}

	argv := append(append([]string(nil), req.Broker...), o.shell, "-c", req.Command)
	run := newRun(req.Command, argv, o.lineBuffer)
	o.active = run
	run.advance(Running)
	go run.deliver()

	cmd := exec.Command(argv[0], argv[1:]...)
	if req.Env != nil {
		cmd.Env = req.Env
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return run, run.spawnFailed(err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return run, run.spawnFailed(err)
	}
	if err := cmd.Start(); err != nil {
		return run, run.spawnFailed(err)
	}

	merged := make(chan Line, o.lineBuffer)
	var readers sync.WaitGroup
	readers.Add(2)
	go readStream(&readers, stdout, StreamStdout, merged)
	go readStream(&readers, stderr, StreamStderr, merged)

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for line := range merged {
			run.append(line)
		}
		run.closeLog()
	}()

	go func() {
		readers.Wait()
		close(merged)
		<-collected
		run.finish(exitResult(cmd.Wait()))
	}()
	return run, nil
}

// Active returns the most recent run, or nil.
func (o *Orchestrator) Active() *Run {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

// LaunchInteractive starts command inside term and reports only whether the
// terminal started. The terminal process is reaped in the background.
func (o *Orchestrator) LaunchInteractive(term surface.Terminal, command string) error {
	argv := term.ArgsWithShell(o.shell, command)
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return &SpawnError{Argv: argv, Err: err}
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func (r *Run) spawnFailed(err error) error {
	spawnErr := &SpawnError{Argv: r.argv, Err: err}
	line := Line{Stream: StreamSpawnError, Text: err.Error()}
	r.append(line)
	r.closeLog()
	r.finish(Result{Status: Failed, ExitCode: -1, Err: spawnErr})
	return spawnErr
}

// readStream forwards lines from r in order. After a scan error the rest of
// the stream is discarded so the child never blocks on a full pipe.
func readStream(wg *sync.WaitGroup, r io.Reader, stream Stream, out chan<- Line) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, scanInitialBuffer), scanMaxLine)
	for scanner.Scan() {
		out <- Line{Stream: stream, Text: scanner.Text()}
	}
	if err := scanner.Err(); err != nil {
		out <- Line{Stream: stream, Text: fmt.Sprintf(messages.OrchestratorStreamReadFmt, stream, err)}
		_, _ = io.Copy(io.Discard, r)
	}
}

func exitResult(err error) Result {
	if err == nil {
		return Result{Status: Succeeded}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		return Result{Status: Failed, ExitCode: code, Err: &ExitError{Code: code}}
	}
	return Result{Status: Failed, ExitCode: -1, Err: err}
}
