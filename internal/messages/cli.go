package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse         = "winapps-setup"
	RootShort       = "Install the host dependencies of WinApps"
	RootLong        = "winapps-setup detects the distribution, installs FreeRDP 3, polkit and the other\nhost tools WinApps needs, and runs the privileged commands through pkexec."
	RootVersionFlag = "Print version and exit"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// FlagYes answers every confirmation with yes.
	FlagYes = "Do not ask for confirmation"

	// DetectUse is the detect command name.
	DetectUse        = "detect"
	DetectShort      = "Show the detected distribution and package family"
	DetectFieldFmt   = "  %-17s %s\n"
	DetectFieldID    = "ID"
	DetectFieldLike  = "ID_LIKE"
	DetectFieldCode  = "VERSION_CODENAME"
	DetectFieldFam   = "family"
	DetectFieldEmpty = "-"

	// PlanUse is the plan command name.
	PlanUse             = "plan"
	PlanShort           = "Print the commands install would run"
	PlanFlagScript      = "Print the plan as a single shell script"
	PlanHeaderFmt       = "Install plan for %s (%s):\n"
	PlanStepFmt         = "  %-9s %s\n"
	PlanBackportsHeader = "\nThe backports step changes the APT sources:"
	PlanPreviewFailed   = "preview backports change: %w"

	// InstallBrokerUse is the install-broker command name.
	InstallBrokerUse          = "install-broker"
	InstallBrokerShort        = "Install polkit (pkexec) in a terminal window"
	InstallBrokerFlagCheck    = "Only check whether pkexec is installed now"
	InstallBrokerConfirmTitle = "Install polkit in a terminal window?"
	InstallBrokerConfirmFmt   = "A terminal opens and runs:\n  %s\nYou will be asked for your password there."

	// InstallUse is the install command name.
	InstallUse           = "install"
	InstallShort         = "Install the WinApps dependencies through pkexec"
	InstallFlagNoTUI     = "Print output as plain lines instead of the live view"
	InstallConfirmTitle  = "Run these commands as root?"
	InstallWatchTitleFmt = "Installing WinApps dependencies for %s"
	InstallDeclined      = "Nothing was installed."
)
