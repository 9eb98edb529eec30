package messages

// UI messages for the live install view and plain output.
const (
	// UIRunningFmt is shown next to the spinner.
	UIRunningFmt     = "%s %s"
	UIHiddenLinesFmt = "... %d earlier lines (full transcript is saved)"
	UISucceeded      = "Finished successfully."
	UIFailedFmt      = "Failed: %v"
	UIDetachHint     = "ctrl+c hides this view; the install keeps running"
	UIDetached       = "View closed; waiting for the install to finish..."
	UIViewFailedFmt  = "Live view unavailable (%v); showing plain output.\n"
)
