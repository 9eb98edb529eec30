package surface

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/plan"
	"github.com/winapps-org/winapps-setup/internal/session"
)

// ErrNoSurfaceAvailable is returned when no terminal or broker can be found.
var ErrNoSurfaceAvailable = errors.New(messages.SurfaceNoneAvailable)

const (
	// DefaultBroker is the privilege broker used for captured runs.
	DefaultBroker = "pkexec"
	// NixOSSystemBin holds system profile binaries on NixOS.
	NixOSSystemBin = "/run/current-system/sw/bin"
)

// DefaultSearchDirs are probed for terminal emulators, in order.
var DefaultSearchDirs = []string{"/usr/local/bin", "/usr/bin", "/bin"}

// Broker is a located privilege broker.
type Broker struct {
	Name string
	Path string
}

// Argv returns the prefix placed in front of the shell for captured runs.
func (b Broker) Argv() []string {
	return []string{b.Path}
}

// System abstracts the OS calls used by the locator.
type System interface {
	Stat(name string) (os.FileInfo, error)
	// CommandV resolves name through shell's command -v. found is false when
	// the shell ran and reported nothing.
	CommandV(ctx context.Context, shell, name string) (path string, found bool, err error)
	Executable(path string) bool
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// CommandV runs `shell -c "command -v name"`.
func (RealSystem) CommandV(ctx context.Context, shell, name string) (string, bool, error) {
	cmd := exec.CommandContext(ctx, shell, "-c", fmt.Sprintf(messages.SurfaceCommandVFmt, name))
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", false, nil
		}
		return "", false, err
	}
	path := strings.TrimSpace(string(out))
	return path, path != "", nil
}

// Executable reports whether the current user may execute path.
func (RealSystem) Executable(path string) bool {
	return unix.Access(path, unix.X_OK) == nil
}

// Options configures a Locator. Zero values select the defaults.
type Options struct {
	Terminals  []Terminal
	SearchDirs []string
	Broker     string
	Shell      string
	System     System
}

// Locator finds execution surfaces on the host.
type Locator struct {
	terminals  []Terminal
	searchDirs []string
	broker     string
	shell      string
	sys        System
}

// NewLocator returns a locator for opts.
func NewLocator(opts Options) *Locator {
	l := &Locator{
		terminals:  opts.Terminals,
		searchDirs: opts.SearchDirs,
		broker:     opts.Broker,
		shell:      opts.Shell,
		sys:        opts.System,
	}
	if len(l.terminals) == 0 {
		l.terminals = DefaultTerminals
	}
	if len(l.searchDirs) == 0 {
		l.searchDirs = DefaultSearchDirs
	}
	if l.broker == "" {
		l.broker = DefaultBroker
	}
	if l.shell == "" {
		l.shell = DefaultShell
	}
	if l.sys == nil {
		l.sys = RealSystem{}
	}
	return l
}

// ForSession returns a copy of the locator that also searches the NixOS
// system profile when the session host is NixOS.
func (l *Locator) ForSession(sess *session.Session) *Locator {
	clone := *l
	clone.searchDirs = append([]string(nil), l.searchDirs...)
	if plan.SessionFamily(sess) == plan.NixOS && !containsDir(clone.searchDirs, NixOSSystemBin) {
		clone.searchDirs = append(clone.searchDirs, NixOSSystemBin)
	}
	return &clone
}

// SearchDirs returns the directories probed for terminals.
func (l *Locator) SearchDirs() []string {
	return append([]string(nil), l.searchDirs...)
}

// FindTerminal returns the first candidate present in a search dir.
// Candidate order takes precedence over directory order.
func (l *Locator) FindTerminal() (Terminal, error) {
	for _, term := range l.terminals {
		for _, dir := range l.searchDirs {
			path := filepath.Join(dir, term.Name)
			info, err := l.sys.Stat(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return Terminal{}, fmt.Errorf(messages.SurfaceProbeFailedFmt, path, err)
			}
			if info != nil && !info.Mode().IsRegular() {
				continue
			}
			term.Path = path
			return term, nil
		}
	}
	return Terminal{}, fmt.Errorf(messages.SurfaceNoTerminalFmt, ErrNoSurfaceAvailable, strings.Join(TerminalNames(l.terminals), ", "))
}

// FindPrivilegeBroker resolves the broker through the shell and checks the
// result is executable. A probe that cannot be spawned is returned as an error.
func (l *Locator) FindPrivilegeBroker(ctx context.Context) (Broker, error) {
	path, found, err := l.sys.CommandV(ctx, l.shell, l.broker)
	if err != nil {
		return Broker{}, fmt.Errorf(messages.SurfaceProbeFailedFmt, l.broker, err)
	}
	if !found {
		return Broker{}, fmt.Errorf(messages.SurfaceNoBrokerFmt, ErrNoSurfaceAvailable, l.broker)
	}
	if _, err := l.sys.Stat(path); err != nil || !l.sys.Executable(path) {
		return Broker{}, fmt.Errorf(messages.SurfaceBrokerNotExecFmt, ErrNoSurfaceAvailable, path)
	}
	return Broker{Name: l.broker, Path: path}, nil
}

func containsDir(dirs []string, dir string) bool {
	for _, d := range dirs {
		if d == dir {
			return true
		}
	}
	return false
}
