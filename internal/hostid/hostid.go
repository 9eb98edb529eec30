// Package hostid reads the host identity descriptor (os-release).
package hostid

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/winapps-org/winapps-setup/internal/messages"
)

// DefaultPath is the descriptor consulted when no override is configured.
const DefaultPath = "/etc/os-release"

// ErrNotFound reports a missing descriptor file. Callers treat the host as unsupported.
var ErrNotFound = errors.New(messages.HostIDNotFound)

// Identity is the immutable host identity read from the descriptor.
type Identity struct {
	ID              string
	IDLike          string
	VersionCodename string
	PrettyName      string
}

// Raw returns ID_LIKE when it is set and ID otherwise.
func (i Identity) Raw() string {
	if like := strings.TrimSpace(i.IDLike); like != "" {
		return like
	}
	return strings.TrimSpace(i.ID)
}

// Name returns a display name for the host.
func (i Identity) Name() string {
	if i.PrettyName != "" {
		return i.PrettyName
	}
	if i.ID != "" {
		return i.ID
	}
	return "unknown"
}

// System abstracts the filesystem access needed to read the descriptor.
type System interface {
	ReadFile(name string) ([]byte, error)
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// ReadDefault reads the identity from DefaultPath.
func ReadDefault(sys System) (Identity, error) {
	return Read(sys, DefaultPath)
}

// Read parses the descriptor at path.
// A missing file yields an error wrapping ErrNotFound.
func Read(sys System, path string) (Identity, error) {
	data, err := sys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Identity{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Identity{}, fmt.Errorf(messages.HostIDReadFailedFmt, path, err)
	}
	fields, err := Parse(string(data))
	if err != nil {
		return Identity{}, fmt.Errorf(messages.HostIDParseFailedFmt, path, err)
	}
	return Identity{
		ID:              fields["ID"],
		IDLike:          fields["ID_LIKE"],
		VersionCodename: fields["VERSION_CODENAME"],
		PrettyName:      fields["PRETTY_NAME"],
	}, nil
}

// Parse reads KEY=VALUE lines into a map.
// Blank lines, comments and lines without '=' are skipped; surrounding quotes are stripped.
func Parse(content string) (map[string]string, error) {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		key, value, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf(messages.HostIDLineErrorFmt, lineNo, err)
		}
		if !ok {
			continue
		}
		fields[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.HostIDScanFailedFmt, err)
	}
	return fields, nil
}

func parseLine(line string) (string, string, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false, nil
	}
	key, value, found := strings.Cut(trimmed, "=")
	if !found {
		return "", "", false, nil
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false, fmt.Errorf(messages.HostIDInvalidKeyFmt, key)
	}
	return key, unquote(strings.TrimSpace(value)), true, nil
}

// unquote strips one matching pair of single or double quotes.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
