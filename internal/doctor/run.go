package doctor

import (
	"context"

	"github.com/winapps-org/winapps-setup/internal/hostid"
	"github.com/winapps-org/winapps-setup/internal/plan"
	"github.com/winapps-org/winapps-setup/internal/surface"
)

// Options carries the dependencies of a full doctor run.
type Options struct {
	ConfigSource string
	ConfigErr    error
	Descriptor   string
	Identity     hostid.System
	Resolver     *plan.Resolver
	Locator      *surface.Locator
	LookPath     func(string) (string, error)
	HasDisplay   bool
	Version      string

	// CheckUpdate is nil when release checks are disabled.
	CheckUpdate UpdateFunc
}

// Run executes every check in order. Checks that need the host identity are
// skipped when it cannot be read.
func Run(ctx context.Context, opts Options) []Result {
	results := []Result{CheckConfig(opts.ConfigSource, opts.ConfigErr)}

	identityResult, sess := CheckIdentity(opts.Identity, opts.Descriptor)
	results = append(results, identityResult)
	locator := opts.Locator
	if sess != nil {
		family := CheckFamily(sess)
		results = append(results, family)
		if family.Status == StatusOK {
			results = append(results, CheckPlan(opts.Resolver, sess))
		}
		locator = locator.ForSession(sess)
	}

	results = append(results,
		CheckBroker(ctx, locator),
		CheckTerminal(locator, opts.HasDisplay),
		CheckFreeRDP(opts.LookPath),
		CheckUpdate(ctx, opts.Version, opts.CheckUpdate),
	)
	return results
}
