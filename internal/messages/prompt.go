package messages

// Prompt messages for interactive confirmations.
const (
	// PromptRequiresTerminal is returned when a prompt runs without a TTY.
	PromptRequiresTerminal = "this prompt requires an interactive terminal; rerun with --yes"
	PromptCancelled        = "cancelled"
	PromptAutoConfirmedFmt = "%s yes (--yes)\n"
	PromptNoteFmt          = "%s\n%s\n"
)
