// Package config loads the installer configuration from TOML.
package config

import (
	"github.com/winapps-org/winapps-setup/internal/surface"
)

// Config is the full installer configuration.
type Config struct {
	Host    HostConfig    `toml:"host"`
	Apt     AptConfig     `toml:"apt"`
	Surface SurfaceConfig `toml:"surface"`
	Run     RunConfig     `toml:"run"`
}

// HostConfig locates the host identity descriptor.
type HostConfig struct {
	Descriptor string `toml:"descriptor"`
}

// AptConfig holds the Debian backports settings.
type AptConfig struct {
	SourcesDir string `toml:"sources_dir"`
	Mirror     string `toml:"mirror"`
}

// SurfaceConfig controls terminal and broker discovery.
type SurfaceConfig struct {
	Terminals  []string `toml:"terminals"`
	SearchDirs []string `toml:"search_dirs"`
	Broker     string   `toml:"broker"`
}

// RunConfig controls process execution and transcripts.
type RunConfig struct {
	Shell      string `toml:"shell"`
	LineBuffer int    `toml:"line_buffer"`
	LogDir     string `toml:"log_dir"`
}

// Terminals returns the configured terminal definitions in priority order.
// Names are validated at load time, so unknown names never reach here.
func (c *Config) Terminals() []surface.Terminal {
	terms := make([]surface.Terminal, 0, len(c.Surface.Terminals))
	for _, name := range c.Surface.Terminals {
		if term, ok := surface.TerminalByName(name); ok {
			terms = append(terms, term)
		}
	}
	return terms
}
