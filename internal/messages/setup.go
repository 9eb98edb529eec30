package messages

// Messages for the detection, planning and execution pipeline.
const (
	// HostIDNotFound indicates the host identity descriptor is missing.
	HostIDNotFound       = "host identity descriptor not found"
	HostIDReadFailedFmt  = "read host identity %s: %w"
	HostIDParseFailedFmt = "parse host identity %s: %w"
	HostIDLineErrorFmt   = "line %d: %w"
	HostIDScanFailedFmt  = "scan host identity: %w"
	HostIDInvalidKeyFmt  = "invalid key %q"

	// SessionAlreadySet indicates the session identity was written twice.
	SessionAlreadySet = "session identity already set"
	SessionEmpty      = "session identity not set; run detection first"

	// PlanNoPlanForFamily indicates the family has no install plan.
	PlanNoPlanForFamily       = "no install plan for this distribution family"
	PlanNoPlanForFamilyFmt    = "%w: %s"
	PlanUnclassifiedFmt       = "unrecognized distribution %q"
	PlanInvalidTable          = "invalid package plan table"
	PlanDecodeTableFmt        = "%w: decode: %w"
	PlanMissingFamilyFmt      = "%w: missing entry for family %s"
	PlanUnknownFamilyFmt      = "%w: unknown family %q"
	PlanMissingInstallFmt     = "%w: family %s has no install command"
	PlanMissingPackagesFmt    = "%w: family %s has no packages"
	PlanMissingDependencyFmt  = "%w: family %s has no package for dependency %s"
	PlanUnknownDependencyFmt  = "%w: family %s lists unknown dependency %q"
	PlanUnknownDependency     = "unknown dependency"
	PlanUnknownDependencyArg  = "%w: %s"
	PlanCheckMarkerFmt        = "check backports marker %s: %w"
	PlanBackportsLineFmt      = "deb %s %s-backports main"
	PlanBackportsCommandFmt   = "echo '%s' >> %s"
	PlanBackportsMarkerFmt    = "%s-backports.list"
	PlanStepRefreshLabel      = "refresh"
	PlanStepBackportsLabel    = "backports"
	PlanStepInstallLabel      = "install"
	PlanScriptHeader          = "set -e"
	PlanPreviewCreatedFromFmt = "%s (absent)"

	// SurfaceNoneAvailable indicates no terminal or privilege broker was found.
	SurfaceNoneAvailable     = "no execution surface available"
	SurfaceNoTerminalFmt     = "%w: none of the terminal emulators %s were found"
	SurfaceNoBrokerFmt       = "%w: %s is not installed"
	SurfaceBrokerNotExecFmt  = "%w: %s is not executable"
	SurfaceProbeFailedFmt    = "probe for %s: %w"
	SurfaceCommandVFmt       = "command -v %s"
	SurfaceHoldOpenSuffixFmt = "%s; status=$?; echo; printf '%%s' 'Press Enter to close...'; read _; exit $status"

	// OrchestratorRunInProgress indicates a captured run is still active.
	OrchestratorRunInProgress  = "another install command is still running"
	OrchestratorSpawnFailedFmt = "start %s: %v"
	OrchestratorExitCodeFmt    = "command exited with status %d"
	OrchestratorStreamReadFmt  = "read %s: %v"

	// LockOpenFmt formats lock open errors.
	LockOpenFmt    = "open lock %s: %w"
	LockAcquireFmt = "lock %s: %w"
	LockBusy       = "install lock busy"
	LockBusyFmt    = "%w: another winapps-setup process holds %s"
	LockFileName   = "install.lock"

	// RunlogCreateDirFmt formats transcript directory errors.
	RunlogCreateDirFmt  = "create transcript dir %s: %w"
	RunlogCreateFileFmt = "create transcript %s: %w"
	RunlogHeaderFmt     = "# run %s\n# command: %s\n"
	RunlogFooterFmt     = "# status: %s (exit %d)\n"

	// SetupIdentityNotFound is shown when the descriptor is missing.
	SetupIdentityNotFound   = "Unsupported system: could not read /etc/os-release."
	SetupUnclassifiedFmt    = "Unsupported distribution %q. Install curl, dialog, FreeRDP 3, git, iproute2, libnotify and netcat manually."
	SetupNoPlanFmt          = "No install commands are available for %s."
	SetupNoTerminal         = "No terminal emulator found. Install polkit manually with your package manager."
	SetupNoBroker           = "pkexec is not installed. Run 'winapps-setup install-broker' first."
	SetupSpawnFailedFmt     = "Failed to start the install command: %v"
	SetupBusy               = "Another install is already running; wait for it to finish."
	SetupRunFailedFmt       = "Install command failed: %v"
	SetupRunSucceeded       = "All dependencies installed."
	SetupBrokerPresentFmt   = "pkexec is already installed (%s)."
	SetupBrokerLaunchedFmt  = "Install launched in %s. Complete it there, then run 'winapps-setup install-broker --check'."
	SetupBrokerStillMissing = "pkexec still not detected. Ensure the installation completed."
	SetupDetectedFmt        = "Detected %s (family %s)."
	SetupUnknownErrorFmt    = "Unexpected error: %v"
	SetupSudoPrefix         = "sudo "
	SetupTranscriptFmt      = " Transcript: %s"

	// SetupTranscriptFailedFmt replaces the transcript path when it could not be written.
	SetupTranscriptFailedFmt = " Transcript not saved: %v"
)
