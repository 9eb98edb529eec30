// Package setup drives detection, planning and execution for the CLI and
// reports every result as an Outcome.
package setup

import (
	"errors"
	"fmt"

	"github.com/winapps-org/winapps-setup/internal/hostid"
	"github.com/winapps-org/winapps-setup/internal/lock"
	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/orchestrator"
	"github.com/winapps-org/winapps-setup/internal/plan"
	"github.com/winapps-org/winapps-setup/internal/surface"
)

// Kind classifies an Outcome.
type Kind int

// Outcome kinds.
const (
	Succeeded Kind = iota
	Launched
	Failed
	IdentityNotFound
	UnclassifiedFamily
	NoPlanForFamily
	NoSurfaceAvailable
	SpawnError
	Busy
)

var kindNames = map[Kind]string{
	Succeeded:          "succeeded",
	Launched:           "launched",
	Failed:             "failed",
	IdentityNotFound:   "identity-not-found",
	UnclassifiedFamily: "unclassified-family",
	NoPlanForFamily:    "no-plan-for-family",
	NoSurfaceAvailable: "no-surface-available",
	SpawnError:         "spawn-error",
	Busy:               "busy",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ExitCode maps the kind to a process exit status.
func (k Kind) ExitCode() int {
	switch k {
	case Succeeded, Launched:
		return 0
	case IdentityNotFound, UnclassifiedFamily, NoPlanForFamily:
		return 2
	case NoSurfaceAvailable:
		return 3
	case SpawnError:
		return 4
	case Busy:
		return 5
	default:
		return 1
	}
}

// Outcome is the operator-facing result of a pipeline step.
type Outcome struct {
	Kind    Kind
	Message string
	Err     error
}

// OK reports whether the step succeeded or launched.
func (o Outcome) OK() bool {
	return o.Kind == Succeeded || o.Kind == Launched
}

// Error implements error so a failed Outcome can be returned from commands.
func (o Outcome) Error() string {
	return o.Message
}

// Unwrap returns the underlying error.
func (o Outcome) Unwrap() error {
	return o.Err
}

func succeeded(message string) Outcome {
	return Outcome{Kind: Succeeded, Message: message}
}

// Classify converts an error from any pipeline stage into an Outcome.
func Classify(err error) Outcome {
	if err == nil {
		return succeeded("")
	}
	var unclassified *plan.UnclassifiedError
	var spawnErr *orchestrator.SpawnError
	switch {
	case errors.Is(err, hostid.ErrNotFound):
		return Outcome{Kind: IdentityNotFound, Message: messages.SetupIdentityNotFound, Err: err}
	case errors.As(err, &unclassified):
		return Outcome{Kind: UnclassifiedFamily, Message: fmt.Sprintf(messages.SetupUnclassifiedFmt, unclassified.Raw), Err: err}
	case errors.Is(err, plan.ErrNoPlanForFamily):
		return Outcome{Kind: NoPlanForFamily, Message: fmt.Sprintf(messages.SetupNoPlanFmt, err), Err: err}
	case errors.As(err, &spawnErr):
		return Outcome{Kind: SpawnError, Message: fmt.Sprintf(messages.SetupSpawnFailedFmt, spawnErr.Err), Err: err}
	case errors.Is(err, surface.ErrNoSurfaceAvailable):
		return Outcome{Kind: NoSurfaceAvailable, Message: err.Error(), Err: err}
	case errors.Is(err, lock.ErrBusy), errors.Is(err, orchestrator.ErrRunInProgress):
		return Outcome{Kind: Busy, Message: messages.SetupBusy, Err: err}
	default:
		return Outcome{Kind: Failed, Message: fmt.Sprintf(messages.SetupUnknownErrorFmt, err), Err: err}
	}
}
