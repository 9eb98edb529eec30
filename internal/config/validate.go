package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/surface"
)

// Validate ensures the config is complete and consistent.
func (c *Config) Validate(path string) error {
	required := []struct {
		key   string
		value string
	}{
		{"host.descriptor", c.Host.Descriptor},
		{"apt.sources_dir", c.Apt.SourcesDir},
		{"apt.mirror", c.Apt.Mirror},
		{"surface.broker", c.Surface.Broker},
		{"run.shell", c.Run.Shell},
		{"run.log_dir", c.Run.LogDir},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf(messages.ConfigRequiredFmt, path, field.key)
		}
	}

	for _, field := range []struct {
		key   string
		value string
	}{
		{"host.descriptor", c.Host.Descriptor},
		{"apt.sources_dir", c.Apt.SourcesDir},
		{"run.log_dir", c.Run.LogDir},
	} {
		if !filepath.IsAbs(field.value) {
			return fmt.Errorf(messages.ConfigAbsolutePathFmt, path, field.key, field.value)
		}
	}
	for _, dir := range c.Surface.SearchDirs {
		if !filepath.IsAbs(dir) {
			return fmt.Errorf(messages.ConfigAbsolutePathFmt, path, "surface.search_dirs", dir)
		}
	}

	if !strings.HasPrefix(c.Apt.Mirror, "http://") && !strings.HasPrefix(c.Apt.Mirror, "https://") {
		return fmt.Errorf(messages.ConfigMirrorSchemeFmt, path, c.Apt.Mirror)
	}

	if len(c.Surface.Terminals) == 0 {
		return fmt.Errorf(messages.ConfigRequiredFmt, path, "surface.terminals")
	}
	if len(c.Surface.SearchDirs) == 0 {
		return fmt.Errorf(messages.ConfigRequiredFmt, path, "surface.search_dirs")
	}
	seen := make(map[string]struct{}, len(c.Surface.Terminals))
	for _, name := range c.Surface.Terminals {
		if _, ok := surface.TerminalByName(name); !ok {
			return fmt.Errorf(messages.ConfigUnknownTerminalFmt, path, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf(messages.ConfigDuplicateTermFmt, path, name)
		}
		seen[name] = struct{}{}
	}

	if c.Run.LineBuffer <= 0 {
		return fmt.Errorf(messages.ConfigPositiveIntFmt, path, "run.line_buffer")
	}
	return nil
}
