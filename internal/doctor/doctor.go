// Package doctor checks whether the host is ready for installation.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/winapps-org/winapps-setup/internal/config"
	"github.com/winapps-org/winapps-setup/internal/hostid"
	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/plan"
	"github.com/winapps-org/winapps-setup/internal/session"
	"github.com/winapps-org/winapps-setup/internal/surface"
)

// Status is the outcome of a single check.
type Status string

// Check outcomes.
const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Result is a single doctor finding.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

// FreeRDPBinaries are the client names accepted by the bridge, in preference order.
var FreeRDPBinaries = []string{"xfreerdp3", "xfreerdp", "sdl-freerdp3"}

// HasFailure reports whether any result failed.
func HasFailure(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

// CheckConfig reports the outcome of loading the configuration.
func CheckConfig(source string, err error) Result {
	result := Result{CheckName: messages.DoctorCheckNameConfig}
	switch {
	case err != nil:
		result.Status = StatusFail
		result.Message = fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, err)
		result.Recommendation = fmt.Sprintf(messages.DoctorConfigRecommendFmt, config.EnvConfigPath)
	case source == "":
		result.Status = StatusOK
		result.Message = messages.DoctorConfigDefaults
	default:
		result.Status = StatusOK
		result.Message = fmt.Sprintf(messages.DoctorConfigLoadedFmt, source)
	}
	return result
}

// CheckIdentity reads the descriptor and returns a session holding it.
// The session is nil when the descriptor cannot be read.
func CheckIdentity(sys hostid.System, path string) (Result, *session.Session) {
	identity, err := hostid.Read(sys, path)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameIdentity,
			Message:        fmt.Sprintf(messages.DoctorIdentityMissingFmt, path, err),
			Recommendation: messages.DoctorIdentityRecommend,
		}, nil
	}
	sess := session.New()
	_ = sess.Set(identity)
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameIdentity,
		Message:   fmt.Sprintf(messages.DoctorIdentityFoundFmt, identity.Name(), identity.ID, identity.IDLike),
	}, sess
}

// CheckFamily classifies the session host.
func CheckFamily(sess *session.Session) Result {
	identity, _ := sess.Get()
	family, err := plan.ClassifyStrict(identity)
	if err != nil {
		var unclassified *plan.UnclassifiedError
		raw := identity.Raw()
		if errors.As(err, &unclassified) {
			raw = unclassified.Raw
		}
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameFamily,
			Message:        fmt.Sprintf(messages.DoctorFamilyUnsupportedFmt, raw),
			Recommendation: messages.DoctorFamilyRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameFamily,
		Message:   fmt.Sprintf(messages.DoctorFamilyFmt, family),
	}
}

// CheckPlan resolves the install plan for the session.
func CheckPlan(resolver *plan.Resolver, sess *session.Session) Result {
	p, err := resolver.ForSession(sess)
	if err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNamePlan,
			Message:        fmt.Sprintf(messages.DoctorPlanFailedFmt, err),
			Recommendation: messages.DoctorPlanFailRecommend,
		}
	}
	message := fmt.Sprintf(messages.DoctorPlanStepsFmt, len(p.Steps), p.Manager)
	if p.HasBackports() {
		identity, _ := sess.Get()
		message = fmt.Sprintf(messages.DoctorPlanBackportsFmt, len(p.Steps), p.Manager, identity.VersionCodename)
	}
	return Result{Status: StatusOK, CheckName: messages.DoctorCheckNamePlan, Message: message}
}

// CheckBroker looks for the privilege broker. A missing broker is a warning
// because install-broker can fix it; a failed probe is a failure.
func CheckBroker(ctx context.Context, locator *surface.Locator) Result {
	broker, err := locator.FindPrivilegeBroker(ctx)
	switch {
	case errors.Is(err, surface.ErrNoSurfaceAvailable):
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameBroker,
			Message:        fmt.Sprintf(messages.DoctorBrokerMissingFmt, err),
			Recommendation: messages.DoctorBrokerRecommend,
		}
	case err != nil:
		return Result{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckNameBroker,
			Message:   fmt.Sprintf(messages.DoctorBrokerProbeFailFmt, err),
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameBroker,
		Message:   fmt.Sprintf(messages.DoctorBrokerFoundFmt, broker.Name, broker.Path),
	}
}

// CheckTerminal looks for a terminal emulator usable by install-broker.
func CheckTerminal(locator *surface.Locator, hasDisplay bool) Result {
	term, err := locator.FindTerminal()
	if err != nil {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameTerminal,
			Message:        fmt.Sprintf(messages.DoctorTerminalMissingFmt, err),
			Recommendation: messages.DoctorTerminalRecommend,
		}
	}
	result := Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameTerminal,
		Message:   fmt.Sprintf(messages.DoctorTerminalFoundFmt, term.Name, term.Path),
	}
	if !hasDisplay {
		result.Status = StatusWarn
		result.Recommendation = messages.DoctorTerminalNoDisplay
	}
	return result
}

// CheckFreeRDP looks for a FreeRDP 3 client in PATH.
func CheckFreeRDP(lookPath func(string) (string, error)) Result {
	for _, name := range FreeRDPBinaries {
		if path, err := lookPath(name); err == nil {
			return Result{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNameFreeRDP,
				Message:   fmt.Sprintf(messages.DoctorFreeRDPFoundFmt, name, path),
			}
		}
	}
	return Result{
		Status:         StatusWarn,
		CheckName:      messages.DoctorCheckNameFreeRDP,
		Message:        fmt.Sprintf(messages.DoctorFreeRDPMissingFmt, strings.Join(FreeRDPBinaries, ", ")),
		Recommendation: messages.DoctorFreeRDPRecommend,
	}
}
