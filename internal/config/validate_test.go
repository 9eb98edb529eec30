package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := LoadTemplateConfig()
	require.NoError(t, err)
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "missing descriptor", mutate: func(c *Config) { c.Host.Descriptor = "" }, want: "host.descriptor is required"},
		{name: "missing broker", mutate: func(c *Config) { c.Surface.Broker = " " }, want: "surface.broker is required"},
		{name: "missing shell", mutate: func(c *Config) { c.Run.Shell = "" }, want: "run.shell is required"},
		{name: "no terminals", mutate: func(c *Config) { c.Surface.Terminals = nil }, want: "surface.terminals is required"},
		{name: "no search dirs", mutate: func(c *Config) { c.Surface.SearchDirs = nil }, want: "surface.search_dirs is required"},
		{name: "zero buffer", mutate: func(c *Config) { c.Run.LineBuffer = 0 }, want: "run.line_buffer"},
		{name: "relative log dir", mutate: func(c *Config) { c.Run.LogDir = "runs" }, want: "run.log_dir must be an absolute path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate("test.toml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "test.toml")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, validConfig(t).Validate("defaults"))
}
