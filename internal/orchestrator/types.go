// Package orchestrator runs installation commands, either captured through a
// privilege broker with streamed output or handed to a terminal emulator.
package orchestrator

import (
	"errors"
	"fmt"

	"github.com/winapps-org/winapps-setup/internal/messages"
)

// ErrRunInProgress is returned by Start while a previous run is still Running.
var ErrRunInProgress = errors.New(messages.OrchestratorRunInProgress)

// Status is the lifecycle state of a run. Transitions only move forward.
type Status int

// Run states.
const (
	NotStarted Status = iota
	Running
	Succeeded
	Failed
)

// String returns the lowercase state name.
func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Terminal reports whether s is Succeeded or Failed.
func (s Status) Terminal() bool {
	return s == Succeeded || s == Failed
}

// Stream identifies where a line came from.
type Stream int

// Line sources.
const (
	StreamStdout Stream = iota
	StreamStderr
	StreamSpawnError
)

// String returns the stream name.
func (s Stream) String() string {
	switch s {
	case StreamStdout:
		return "stdout"
	case StreamStderr:
		return "stderr"
	case StreamSpawnError:
		return "spawn-error"
	default:
		return fmt.Sprintf("stream(%d)", int(s))
	}
}

// Line is one line of child output.
type Line struct {
	Stream Stream
	Text   string
}

// SpawnError reports a child process that could not be started.
type SpawnError struct {
	Argv []string
	Err  error
}

func (e *SpawnError) Error() string {
	name := ""
	if len(e.Argv) > 0 {
		name = e.Argv[0]
	}
	return fmt.Sprintf(messages.OrchestratorSpawnFailedFmt, name, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// ExitError reports a child that ran and exited non-zero.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf(messages.OrchestratorExitCodeFmt, e.Code)
}

// Result is the terminal outcome of a run.
type Result struct {
	Status   Status
	ExitCode int
	Err      error
}

// Request describes a captured run.
type Request struct {
	// Command is passed to the shell with -c.
	Command string
	// Broker is prepended to the shell invocation, e.g. ["/usr/bin/pkexec"].
	Broker []string
	// Env overrides the child environment when non-nil.
	Env []string
}
