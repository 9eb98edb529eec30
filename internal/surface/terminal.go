// Package surface locates the terminal emulator and privilege broker used to
// run installation commands.
package surface

import (
	"fmt"
	"strings"

	"github.com/winapps-org/winapps-setup/internal/messages"
)

// DefaultShell interprets commands passed to terminals and the broker.
const DefaultShell = "sh"

// Terminal describes how to hand a command to a terminal emulator.
type Terminal struct {
	Name string
	// Path is filled in by the locator.
	Path string
	// ExecArgs precede the command, e.g. "--" or "-e".
	ExecArgs []string
	// HoldsOpen is set when ExecArgs already keep the window open after exit.
	HoldsOpen bool
	// SingleArg terminals take the whole command line as one argument.
	SingleArg bool
}

// DefaultTerminals lists candidates in priority order.
var DefaultTerminals = []Terminal{
	{Name: "x-terminal-emulator", ExecArgs: []string{"-e"}},
	{Name: "gnome-terminal", ExecArgs: []string{"--"}},
	{Name: "konsole", ExecArgs: []string{"--hold", "-e"}, HoldsOpen: true},
	{Name: "xfce4-terminal", ExecArgs: []string{"--hold", "-x"}, HoldsOpen: true},
	{Name: "mate-terminal", ExecArgs: []string{"-x"}},
	{Name: "lxterminal", ExecArgs: []string{"-e"}, SingleArg: true},
	{Name: "xterm", ExecArgs: []string{"-hold", "-e"}, HoldsOpen: true},
}

// TerminalByName returns the default definition for name.
func TerminalByName(name string) (Terminal, bool) {
	for _, term := range DefaultTerminals {
		if term.Name == name {
			return term, true
		}
	}
	return Terminal{}, false
}

// TerminalNames returns the names of terminals in order.
func TerminalNames(terms []Terminal) []string {
	names := make([]string, 0, len(terms))
	for _, term := range terms {
		names = append(names, term.Name)
	}
	return names
}

// Args returns the argv that runs command in the terminal using DefaultShell.
func (t Terminal) Args(command string) []string {
	return t.ArgsWithShell(DefaultShell, command)
}

// ArgsWithShell returns the argv that runs command in the terminal.
// Terminals that close on exit get a trailer that waits for Enter and keeps
// the command's exit status.
func (t Terminal) ArgsWithShell(shell, command string) []string {
	if shell == "" {
		shell = DefaultShell
	}
	script := command
	if !t.HoldsOpen {
		script = fmt.Sprintf(messages.SurfaceHoldOpenSuffixFmt, command)
	}
	bin := t.Path
	if bin == "" {
		bin = t.Name
	}
	argv := append([]string{bin}, t.ExecArgs...)
	if t.SingleArg {
		return append(argv, shell+" -c "+shellQuote(script))
	}
	return append(argv, shell, "-c", script)
}

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
