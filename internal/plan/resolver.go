package plan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/winapps-org/winapps-setup/internal/hostid"
	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/session"
)

// ErrNoPlanForFamily is returned for Unsupported or unknown families.
var ErrNoPlanForFamily = errors.New(messages.PlanNoPlanForFamily)

const (
	// DefaultSourcesDir holds apt source lists, including the backports marker.
	DefaultSourcesDir = "/etc/apt/sources.list.d"
	// DefaultMirror is the Debian archive used for the backports line.
	DefaultMirror = "http://deb.debian.org/debian"
)

// StepKind classifies a plan step.
type StepKind int

// Step kinds in the order they appear in a plan.
const (
	StepBackports StepKind = iota
	StepRefresh
	StepInstall
)

// String returns a short label for the step kind.
func (k StepKind) String() string {
	switch k {
	case StepBackports:
		return messages.PlanStepBackportsLabel
	case StepRefresh:
		return messages.PlanStepRefreshLabel
	default:
		return messages.PlanStepInstallLabel
	}
}

// Step is one shell command of a plan.
type Step struct {
	Kind    StepKind
	Command string
}

// Plan is the ordered command list for one family.
type Plan struct {
	Family  Family
	Manager string
	Steps   []Step
}

// Commands returns the step commands in order.
func (p Plan) Commands() []string {
	commands := make([]string, 0, len(p.Steps))
	for _, step := range p.Steps {
		commands = append(commands, step.Command)
	}
	return commands
}

// Script joins the commands into one shell script that stops at the first failure.
func (p Plan) Script() string {
	return messages.PlanScriptHeader + "\n" + strings.Join(p.Commands(), "\n")
}

// HasBackports reports whether the plan enables Debian backports.
func (p Plan) HasBackports() bool {
	for _, step := range p.Steps {
		if step.Kind == StepBackports {
			return true
		}
	}
	return false
}

// System abstracts the filesystem checks needed by the resolver.
type System interface {
	Stat(name string) (os.FileInfo, error)
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Options configures a Resolver. Zero values select the defaults.
type Options struct {
	Table      Table
	System     System
	SourcesDir string
	Mirror     string
}

// Resolver maps families to plans using a static table.
type Resolver struct {
	table      Table
	sys        System
	sourcesDir string
	mirror     string
}

// NewResolver validates the table and returns a resolver.
func NewResolver(opts Options) (*Resolver, error) {
	table := opts.Table
	if table == nil {
		loaded, err := DefaultTable()
		if err != nil {
			return nil, err
		}
		table = loaded
	} else if err := table.Validate(); err != nil {
		return nil, err
	}
	r := &Resolver{
		table:      table,
		sys:        opts.System,
		sourcesDir: opts.SourcesDir,
		mirror:     opts.Mirror,
	}
	if r.sys == nil {
		r.sys = RealSystem{}
	}
	if r.sourcesDir == "" {
		r.sourcesDir = DefaultSourcesDir
	}
	if r.mirror == "" {
		r.mirror = DefaultMirror
	}
	return r, nil
}

// Resolve returns the plan for family without host-specific steps.
func (r *Resolver) Resolve(family Family) (Plan, error) {
	entry, ok := r.entry(family)
	if !ok {
		return Plan{}, fmt.Errorf(messages.PlanNoPlanForFamilyFmt, ErrNoPlanForFamily, family)
	}
	steps := make([]Step, 0, len(entry.Refresh)+1)
	for _, command := range entry.Refresh {
		steps = append(steps, Step{Kind: StepRefresh, Command: command})
	}
	steps = append(steps, Step{
		Kind:    StepInstall,
		Command: entry.Install + " " + strings.Join(entry.Packages, " "),
	})
	return Plan{Family: family, Manager: entry.Manager, Steps: steps}, nil
}

// ResolveDependency returns the command that installs a single dependency.
func (r *Resolver) ResolveDependency(family Family, dep Dependency) (string, error) {
	entry, ok := r.entry(family)
	if !ok {
		return "", fmt.Errorf(messages.PlanNoPlanForFamilyFmt, ErrNoPlanForFamily, family)
	}
	pkg, ok := entry.Dependencies[dep]
	if !ok {
		return "", fmt.Errorf(messages.PlanUnknownDependencyArg, ErrUnknownDependency, dep)
	}
	return entry.Install + " " + pkg, nil
}

// ForSession resolves the plan for the session identity, including the
// backports step on Debian hosts that do not have it configured yet.
func (r *Resolver) ForSession(sess *session.Session) (Plan, error) {
	identity, err := sess.Identity()
	if err != nil {
		return Plan{}, err
	}
	family := Classify(identity)
	p, err := r.Resolve(family)
	if err != nil {
		return Plan{}, err
	}
	step, needed, err := r.backportsStep(family, identity)
	if err != nil {
		return Plan{}, err
	}
	if needed {
		p.Steps = append([]Step{step}, p.Steps...)
	}
	return p, nil
}

// MarkerPath returns the source list whose presence means backports are enabled.
func (r *Resolver) MarkerPath(codename string) string {
	return filepath.Join(r.sourcesDir, fmt.Sprintf(messages.PlanBackportsMarkerFmt, codename))
}

// backportsLine returns the apt source line for codename.
func (r *Resolver) backportsLine(codename string) string {
	return fmt.Sprintf(messages.PlanBackportsLineFmt, r.mirror, codename)
}

// backportsStep decides whether the backports step applies.
// It applies only to Debian itself (ID=debian), with a known codename and no marker file.
func (r *Resolver) backportsStep(family Family, identity hostid.Identity) (Step, bool, error) {
	entry, ok := r.entry(family)
	if !ok || !entry.Backports || family != Debian {
		return Step{}, false, nil
	}
	if !strings.EqualFold(strings.TrimSpace(identity.ID), string(Debian)) {
		return Step{}, false, nil
	}
	codename := strings.TrimSpace(identity.VersionCodename)
	if codename == "" {
		return Step{}, false, nil
	}
	marker := r.MarkerPath(codename)
	if _, err := r.sys.Stat(marker); err == nil {
		return Step{}, false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Step{}, false, fmt.Errorf(messages.PlanCheckMarkerFmt, marker, err)
	}
	return Step{
		Kind:    StepBackports,
		Command: fmt.Sprintf(messages.PlanBackportsCommandFmt, r.backportsLine(codename), marker),
	}, true, nil
}

func (r *Resolver) entry(family Family) (Entry, bool) {
	if !family.Supported() {
		return Entry{}, false
	}
	entry, ok := r.table[family]
	return entry, ok
}
