package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check that this host can run the WinApps installer and its dependencies"

	DoctorHealthCheck = "🏥 Checking host readiness for WinApps..."

	DoctorCheckNameConfig   = "Config"
	DoctorCheckNameIdentity = "Identity"
	DoctorCheckNameFamily   = "Family"
	DoctorCheckNamePlan     = "Plan"
	DoctorCheckNameBroker   = "Broker"
	DoctorCheckNameTerminal = "Terminal"
	DoctorCheckNameFreeRDP  = "FreeRDP"

	DoctorConfigDefaults      = "Using built-in defaults"
	DoctorConfigLoadedFmt     = "Loaded %s"
	DoctorConfigLoadFailedFmt = "Failed to load configuration: %v"
	DoctorConfigRecommendFmt  = "Fix the file or unset %s to use the defaults."

	DoctorIdentityFoundFmt     = "%s (ID=%s, ID_LIKE=%s)"
	DoctorIdentityMissingFmt   = "Cannot read %s: %v"
	DoctorIdentityRecommend    = "WinApps supports Linux hosts that provide /etc/os-release."
	DoctorFamilyFmt            = "Package family: %s"
	DoctorFamilyUnsupportedFmt = "Unrecognized distribution %q"
	DoctorFamilyRecommend      = "Install curl, dialog, FreeRDP 3, git, iproute2, libnotify and netcat manually."

	DoctorPlanStepsFmt      = "%d install commands via %s"
	DoctorPlanBackportsFmt  = "%d install commands via %s (enables %s-backports first)"
	DoctorPlanFailedFmt     = "Cannot build install plan: %v"
	DoctorPlanFailRecommend = "Run `winapps-setup plan` for details."

	DoctorBrokerFoundFmt     = "%s at %s"
	DoctorBrokerMissingFmt   = "%v"
	DoctorBrokerRecommend    = "Run `winapps-setup install-broker` to install polkit."
	DoctorBrokerProbeFailFmt = "Cannot probe for the privilege broker: %v"

	DoctorTerminalFoundFmt   = "%s at %s"
	DoctorTerminalMissingFmt = "%v"
	DoctorTerminalRecommend  = "Install a terminal emulator (e.g. xterm) or install polkit manually."
	DoctorTerminalNoDisplay  = "No graphical session detected (DISPLAY and WAYLAND_DISPLAY are unset)."

	DoctorFreeRDPFoundFmt   = "%s at %s"
	DoctorFreeRDPMissingFmt = "None of %s found in PATH"
	DoctorFreeRDPRecommend  = "Run `winapps-setup install` to install FreeRDP 3."

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-10s %s\n"
	DoctorRecommendationPrefix = "       💡 "
	DoctorRecommendationIndent = "          "
	DoctorFailureSummary       = "❌ Some checks failed. Please address the issues above."
	DoctorFailureError         = "doctor checks failed"
	DoctorSuccessSummary       = "✅ This host is ready for the WinApps installer."
)
