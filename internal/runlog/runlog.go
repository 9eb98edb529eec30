// Package runlog writes transcripts of captured install runs.
package runlog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/orchestrator"
)

// Path returns the transcript path for runID under dir.
func Path(dir, runID string) string {
	return filepath.Join(dir, runID+".log")
}

// Write stores the run's log and outcome under dir and returns the file path.
// Non-stdout lines are prefixed with their stream name.
func Write(dir string, run *orchestrator.Run) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf(messages.RunlogCreateDirFmt, dir, err)
	}
	path := Path(dir, run.ID())
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf(messages.RunlogCreateFileFmt, path, err)
	}

	w := bufio.NewWriter(file)
	_, _ = fmt.Fprintf(w, messages.RunlogHeaderFmt, run.ID(), run.Command())
	for _, line := range run.Log() {
		if line.Stream != orchestrator.StreamStdout {
			_, _ = fmt.Fprintf(w, "[%s] ", line.Stream)
		}
		_, _ = fmt.Fprintln(w, line.Text)
	}
	result := run.Result()
	_, _ = fmt.Fprintf(w, messages.RunlogFooterFmt, run.Status(), result.ExitCode)

	if err := w.Flush(); err != nil {
		_ = file.Close()
		return "", fmt.Errorf(messages.RunlogCreateFileFmt, path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf(messages.RunlogCreateFileFmt, path, err)
	}
	return path, nil
}
