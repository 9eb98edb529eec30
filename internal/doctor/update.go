package doctor

import (
	"context"
	"fmt"

	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/update"
)

// UpdateFunc looks up the newest release for the running version.
type UpdateFunc func(ctx context.Context, current string) (update.CheckResult, error)

// CheckUpdate reports whether a newer release exists. Update problems are
// warnings; they never block installation. A nil check means the lookup was
// disabled through update.EnvNoNetwork.
func CheckUpdate(ctx context.Context, version string, check UpdateFunc) Result {
	result := Result{CheckName: messages.DoctorCheckNameUpdate}
	if check == nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf(messages.DoctorUpdateSkippedFmt, update.EnvNoNetwork)
		result.Recommendation = fmt.Sprintf(messages.DoctorUpdateSkippedRecommendFmt, update.EnvNoNetwork)
		return result
	}
	latest, err := check(ctx, version)
	switch {
	case err != nil:
		result.Status = StatusWarn
		result.Message = fmt.Sprintf(messages.DoctorUpdateFailedFmt, err)
		result.Recommendation = messages.DoctorUpdateFailedRecommend
	case latest.CurrentIsDev:
		result.Status = StatusWarn
		result.Message = messages.DoctorUpdateDevBuild
	case latest.Outdated:
		result.Status = StatusWarn
		result.Message = fmt.Sprintf(messages.DoctorUpdateAvailableFmt, latest.Latest, latest.Current)
		result.Recommendation = messages.DoctorUpdateAvailableRecommend
	default:
		result.Status = StatusOK
		result.Message = fmt.Sprintf(messages.DoctorUpToDateFmt, latest.Current)
	}
	return result
}
