package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/orchestrator"
)

// DefaultMaxLines is the number of output lines kept on screen.
const DefaultMaxLines = 15

type lineMsg orchestrator.Line

type linesClosedMsg struct{}

type doneMsg struct {
	result orchestrator.Result
}

// Model is the bubbletea model that follows a run.
type Model struct {
	run      *orchestrator.Run
	title    string
	spinner  spinner.Model
	maxLines int
	width    int

	lines    []orchestrator.Line
	hidden   int
	done     bool
	detached bool
	result   orchestrator.Result
}

// NewModel returns a model following run.
func NewModel(run *orchestrator.Run, title string, maxLines int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return Model{run: run, title: title, spinner: s, maxLines: maxLines}
}

// Init starts the spinner and the line reader.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForLine(m.run))
}

// waitForLine receives the next line, or reports that the stream closed.
func waitForLine(run *orchestrator.Run) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-run.Lines()
		if !ok {
			return linesClosedMsg{}
		}
		return lineMsg(line)
	}
}

func waitForDone(run *orchestrator.Run) tea.Cmd {
	return func() tea.Msg {
		<-run.Done()
		return doneMsg{result: run.Result()}
	}
}

// Update handles run events and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.detached = true
			return m, tea.Quit
		}
		return m, nil

	case lineMsg:
		m.lines = append(m.lines, orchestrator.Line(msg))
		if over := len(m.lines) - m.maxLines; over > 0 {
			m.lines = m.lines[over:]
			m.hidden += over
		}
		return m, waitForLine(m.run)

	case linesClosedMsg:
		return m, waitForDone(m.run)

	case doneMsg:
		m.done = true
		m.result = msg.result
		return m, tea.Quit

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the title, the tail of the output and the outcome.
func (m Model) View() string {
	var b strings.Builder
	if m.done {
		b.WriteString(titleStyle.Render(m.title))
	} else {
		b.WriteString(fmt.Sprintf(messages.UIRunningFmt, m.spinner.View(), titleStyle.Render(m.title)))
	}
	b.WriteString("\n")
	if m.hidden > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf(messages.UIHiddenLinesFmt, m.hidden)))
		b.WriteString("\n")
	}
	for _, line := range m.lines {
		b.WriteString(renderLine(line, m.width))
		b.WriteString("\n")
	}
	switch {
	case m.done && m.result.Status == orchestrator.Succeeded:
		b.WriteString(successStyle.Render(messages.UISucceeded))
		b.WriteString("\n")
	case m.done:
		b.WriteString(errorStyle.Render(fmt.Sprintf(messages.UIFailedFmt, m.result.Err)))
		b.WriteString("\n")
	case m.detached:
		b.WriteString(dimStyle.Render(messages.UIDetached))
		b.WriteString("\n")
	default:
		b.WriteString(dimStyle.Render(messages.UIDetachHint))
		b.WriteString("\n")
	}
	return b.String()
}

// renderLine styles line and cuts it to width cells; width 0 means unknown.
func renderLine(line orchestrator.Line, width int) string {
	text := line.Text
	if width > 0 {
		text = truncate.StringWithTail(text, uint(width), "…")
	}
	switch line.Stream {
	case orchestrator.StreamStderr:
		return stderrStyle.Render(text)
	case orchestrator.StreamSpawnError:
		return errorStyle.Render(text)
	default:
		return text
	}
}

type watchConfig struct {
	in       io.Reader
	out      io.Writer
	maxLines int
	program  func(tea.Model, ...tea.ProgramOption) (tea.Model, error)
}

// WatchOption customizes Watch.
type WatchOption func(*watchConfig)

// WithInput sets the program input.
func WithInput(r io.Reader) WatchOption {
	return func(c *watchConfig) { c.in = r }
}

// WithOutput sets the program output.
func WithOutput(w io.Writer) WatchOption {
	return func(c *watchConfig) { c.out = w }
}

// WithMaxLines sets how many output lines stay on screen.
func WithMaxLines(n int) WatchOption {
	return func(c *watchConfig) { c.maxLines = n }
}

func runProgram(model tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	return tea.NewProgram(model, opts...).Run()
}

// Watch shows the run live until it finishes. Closing the view with ctrl+c
// does not stop the child; Watch then waits for it without the view. When
// the view cannot start, the remaining output is streamed to the same writer.
func Watch(ctx context.Context, run *orchestrator.Run, title string, opts ...WatchOption) (orchestrator.Result, error) {
	cfg := watchConfig{in: os.Stdin, out: os.Stderr, program: runProgram}
	for _, opt := range opts {
		opt(&cfg)
	}
	if _, err := cfg.program(NewModel(run, title, cfg.maxLines), tea.WithInput(cfg.in), tea.WithOutput(cfg.out)); err != nil {
		_, _ = fmt.Fprintf(cfg.out, messages.UIViewFailedFmt, err)
		return Stream(ctx, cfg.out, run)
	}
	return run.Wait(ctx)
}
