package messages

// Config messages for configuration loading and validation.
const (
	// ConfigReadFileFmt formats config read errors.
	ConfigReadFileFmt           = "read config %s: %w"
	ConfigFailedReadTemplateFmt = "failed to read template config.toml: %w"
	ConfigInvalidConfigFmt      = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt   = "%s: unrecognized config keys: %v"
	ConfigValidationGuidance    = "(fix the file or remove it to use the defaults)"
	ConfigHomeDirFmt            = "resolve home directory: %w"
	ConfigExpandPathFmt         = "expand %s: %w"

	ConfigRequiredFmt         = "%s: %s is required"
	ConfigPositiveIntFmt      = "%s: %s must be a positive integer"
	ConfigAbsolutePathFmt     = "%s: %s must be an absolute path, got %q"
	ConfigUnknownTerminalFmt  = "%s: surface.terminals lists unknown terminal %q"
	ConfigDuplicateTermFmt    = "%s: surface.terminals lists %q twice"
	ConfigMirrorSchemeFmt     = "%s: apt.mirror must start with http:// or https://, got %q"
	ConfigFieldDescriptorDesc = "Host identity descriptor (os-release file)."
	ConfigFieldSourcesDirDesc = "Directory holding apt source lists."
	ConfigFieldMirrorDesc     = "Debian mirror used for the backports source line."
	ConfigFieldTerminalsDesc  = "Terminal emulators in priority order."
	ConfigFieldSearchDirsDesc = "Directories searched for terminal emulators."
	ConfigFieldBrokerDesc     = "Privilege broker used for captured installs."
	ConfigFieldShellDesc      = "Shell that interprets install commands."
	ConfigFieldLineBufferDesc = "Output lines buffered between the install process and the display."
	ConfigFieldLogDirDesc     = "Directory for run transcripts."
)
