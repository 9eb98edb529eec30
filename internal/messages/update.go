package messages

// Update messages for release checks.
const (
	// UpdateCheckFailedFmt wraps errors from the release lookup.
	UpdateCheckFailedFmt = "check latest release of %s: %w"
	UpdateNoReleases     = "no releases published"

	DoctorCheckNameUpdate           = "Update"
	DoctorUpdateSkippedFmt          = "Skipped because %s is set"
	DoctorUpdateSkippedRecommendFmt = "Unset %s to check for newer releases."
	DoctorUpdateFailedFmt           = "Cannot check for updates: %v"
	DoctorUpdateFailedRecommend     = "Check your network connection; the install itself does not need it."
	DoctorUpdateDevBuild            = "Running a development build"
	DoctorUpdateAvailableFmt        = "Version %s is available (you have %s)"
	DoctorUpdateAvailableRecommend  = "Download it from https://github.com/winapps-org/winapps-setup/releases"
	DoctorUpToDateFmt               = "Running the latest version (%s)"
)
