package setup

import (
	"context"
	"errors"
	"fmt"

	"github.com/winapps-org/winapps-setup/internal/config"
	"github.com/winapps-org/winapps-setup/internal/hostid"
	"github.com/winapps-org/winapps-setup/internal/lock"
	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/orchestrator"
	"github.com/winapps-org/winapps-setup/internal/plan"
	"github.com/winapps-org/winapps-setup/internal/runlog"
	"github.com/winapps-org/winapps-setup/internal/session"
	"github.com/winapps-org/winapps-setup/internal/surface"
	"github.com/winapps-org/winapps-setup/internal/terminal"
)

// Deps overrides the collaborators built from the config. Nil fields use
// the real implementations.
type Deps struct {
	Identity     hostid.System
	PlanSystem   plan.System
	Surface      surface.System
	Orchestrator *orchestrator.Orchestrator
	IsRoot       func() bool
}

// Pipeline runs the installer steps for one invocation.
type Pipeline struct {
	cfg      *config.Config
	identity hostid.System
	resolver *plan.Resolver
	locator  *surface.Locator
	orch     *orchestrator.Orchestrator
	isRoot   func() bool
}

// New builds a pipeline from cfg.
func New(cfg *config.Config, deps Deps) (*Pipeline, error) {
	resolver, err := plan.NewResolver(plan.Options{
		System:     deps.PlanSystem,
		SourcesDir: cfg.Apt.SourcesDir,
		Mirror:     cfg.Apt.Mirror,
	})
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:      cfg,
		identity: deps.Identity,
		resolver: resolver,
		locator: surface.NewLocator(surface.Options{
			Terminals:  cfg.Terminals(),
			SearchDirs: cfg.Surface.SearchDirs,
			Broker:     cfg.Surface.Broker,
			Shell:      cfg.Run.Shell,
			System:     deps.Surface,
		}),
		orch:   deps.Orchestrator,
		isRoot: deps.IsRoot,
	}
	if p.identity == nil {
		p.identity = hostid.RealSystem{}
	}
	if p.orch == nil {
		p.orch = orchestrator.New(orchestrator.Options{Shell: cfg.Run.Shell, LineBuffer: cfg.Run.LineBuffer})
	}
	if p.isRoot == nil {
		p.isRoot = terminal.IsRoot
	}
	return p, nil
}

// Resolver returns the plan resolver.
func (p *Pipeline) Resolver() *plan.Resolver { return p.resolver }

// Locator returns the surface locator.
func (p *Pipeline) Locator() *surface.Locator { return p.locator }

// Detect reads the host identity into a new session.
func (p *Pipeline) Detect() (*session.Session, Outcome) {
	identity, err := hostid.Read(p.identity, p.cfg.Host.Descriptor)
	if err != nil {
		return nil, Classify(err)
	}
	sess := session.New()
	if err := sess.Set(identity); err != nil {
		return nil, Classify(err)
	}
	return sess, succeeded(fmt.Sprintf(messages.SetupDetectedFmt, identity.Name(), plan.Classify(identity)))
}

// Plan resolves the install plan for the session.
func (p *Pipeline) Plan(sess *session.Session) (plan.Plan, Outcome) {
	identity, err := sess.Identity()
	if err != nil {
		return plan.Plan{}, Classify(err)
	}
	if _, err := plan.ClassifyStrict(identity); err != nil {
		return plan.Plan{}, Classify(err)
	}
	resolved, err := p.resolver.ForSession(sess)
	if err != nil {
		return plan.Plan{}, Classify(err)
	}
	return resolved, succeeded("")
}

// CheckBroker reports whether the privilege broker is installed.
func (p *Pipeline) CheckBroker(ctx context.Context) (surface.Broker, Outcome) {
	broker, err := p.locator.FindPrivilegeBroker(ctx)
	if err != nil {
		if errors.Is(err, surface.ErrNoSurfaceAvailable) {
			return surface.Broker{}, Outcome{Kind: NoSurfaceAvailable, Message: messages.SetupNoBroker, Err: err}
		}
		return surface.Broker{}, Classify(err)
	}
	return broker, succeeded(fmt.Sprintf(messages.SetupBrokerPresentFmt, broker.Path))
}

// BrokerCommand returns the command that installs the privilege broker,
// prefixed with sudo unless running as root.
func (p *Pipeline) BrokerCommand(sess *session.Session) (string, Outcome) {
	identity, err := sess.Identity()
	if err != nil {
		return "", Classify(err)
	}
	family, err := plan.ClassifyStrict(identity)
	if err != nil {
		return "", Classify(err)
	}
	command, err := p.resolver.ResolveDependency(family, plan.PrivilegeBroker)
	if err != nil {
		return "", Classify(err)
	}
	if !p.isRoot() {
		command = messages.SetupSudoPrefix + command
	}
	return command, succeeded("")
}

// InstallBroker opens a terminal that installs the privilege broker. It
// returns Succeeded without launching anything when the broker is present,
// and Launched once the terminal has started.
func (p *Pipeline) InstallBroker(ctx context.Context, sess *session.Session) Outcome {
	if _, outcome := p.CheckBroker(ctx); outcome.Kind != NoSurfaceAvailable {
		return outcome
	}
	command, outcome := p.BrokerCommand(sess)
	if !outcome.OK() {
		return outcome
	}
	term, err := p.locator.ForSession(sess).FindTerminal()
	if err != nil {
		if errors.Is(err, surface.ErrNoSurfaceAvailable) {
			return Outcome{Kind: NoSurfaceAvailable, Message: messages.SetupNoTerminal, Err: err}
		}
		return Classify(err)
	}
	if err := p.orch.LaunchInteractive(term, command); err != nil {
		return Classify(err)
	}
	return Outcome{Kind: Launched, Message: fmt.Sprintf(messages.SetupBrokerLaunchedFmt, term.Name)}
}

// RecheckBroker is run after the operator finishes the terminal install.
func (p *Pipeline) RecheckBroker(ctx context.Context) Outcome {
	_, outcome := p.CheckBroker(ctx)
	if outcome.Kind == NoSurfaceAvailable {
		outcome.Kind = Failed
		outcome.Message = messages.SetupBrokerStillMissing
	}
	return outcome
}

// StartInstall runs the session plan as one script through the privilege
// broker (directly when root) and returns the live run. The install lock is
// held until the run finishes. On spawn failure the returned run holds the
// failure log.
func (p *Pipeline) StartInstall(ctx context.Context, sess *session.Session) (*orchestrator.Run, Outcome) {
	resolved, outcome := p.Plan(sess)
	if !outcome.OK() {
		return nil, outcome
	}
	var brokerArgv []string
	if !p.isRoot() {
		broker, outcome := p.CheckBroker(ctx)
		if !outcome.OK() {
			return nil, outcome
		}
		brokerArgv = broker.Argv()
	}

	held, err := lock.Acquire(lock.DefaultPath(p.cfg.Run.LogDir))
	if err != nil {
		return nil, Classify(err)
	}
	run, err := p.orch.Start(orchestrator.Request{Command: resolved.Script(), Broker: brokerArgv})
	if run == nil {
		_ = held.Release()
		return nil, Classify(err)
	}
	go func() {
		<-run.Done()
		_ = held.Release()
	}()
	if err != nil {
		return run, Classify(err)
	}
	return run, Outcome{Kind: Launched}
}

// Complete turns the finished run into an Outcome and writes its transcript.
// waitErr is the error returned while waiting for the run.
func (p *Pipeline) Complete(run *orchestrator.Run, waitErr error) Outcome {
	path, logErr := runlog.Write(p.cfg.Run.LogDir, run)
	result := run.Result()
	var outcome Outcome
	switch {
	case result.Status == orchestrator.Succeeded:
		outcome = succeeded(messages.SetupRunSucceeded)
	case result.Err != nil:
		outcome = Classify(result.Err)
		if outcome.Kind == Failed {
			outcome.Message = fmt.Sprintf(messages.SetupRunFailedFmt, result.Err)
		}
	default:
		outcome = Classify(waitErr)
		if outcome.Kind == Succeeded {
			outcome = Outcome{Kind: Failed, Message: fmt.Sprintf(messages.SetupRunFailedFmt, result.Status)}
		}
	}
	if logErr != nil {
		outcome.Message += fmt.Sprintf(messages.SetupTranscriptFailedFmt, logErr)
	} else {
		outcome.Message += fmt.Sprintf(messages.SetupTranscriptFmt, path)
	}
	return outcome
}
