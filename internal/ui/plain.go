package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/winapps-org/winapps-setup/internal/orchestrator"
)

// Stream copies run output to w as it arrives, coloring stderr and spawn
// errors, and returns once the run is done.
func Stream(ctx context.Context, w io.Writer, run *orchestrator.Run) (orchestrator.Result, error) {
	stderr := color.New(color.FgYellow)
	spawn := color.New(color.FgRed, color.Bold)
	lines := run.Lines()
	for {
		select {
		case <-ctx.Done():
			return run.Result(), ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return run.Wait(ctx)
			}
			switch line.Stream {
			case orchestrator.StreamStderr:
				_, _ = stderr.Fprintln(w, line.Text)
			case orchestrator.StreamSpawnError:
				_, _ = spawn.Fprintln(w, line.Text)
			default:
				_, _ = fmt.Fprintln(w, line.Text)
			}
		}
	}
}
