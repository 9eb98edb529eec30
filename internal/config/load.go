package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/templates"
)

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to TOML syntax or filesystem errors).
var ErrConfigValidation = errors.New("config validation failed")

const templateSource = "template config.toml"

// Load resolves the config path and loads it over the defaults.
// A missing file at the default location yields the defaults; a missing file
// named through EnvConfigPath is an error.
func Load(getenv func(string) string) (*Config, string, error) {
	path, explicit, err := ResolvePath(getenv)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			cfg, err := LoadTemplateConfig()
			return cfg, "", err
		}
		return nil, "", fmt.Errorf(messages.ConfigReadFileFmt, path, err)
	}
	cfg, err := ParseConfig(data, path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// LoadTemplateConfig returns the embedded defaults as a validated Config.
func LoadTemplateConfig() (*Config, error) {
	data, err := templates.Read("config.toml")
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigFailedReadTemplateFmt, err)
	}
	return parse(nil, data, templateSource)
}

// ParseConfig decodes data over the embedded defaults and validates the result.
// source is used in error messages.
func ParseConfig(data []byte, source string) (*Config, error) {
	defaults, err := LoadTemplateConfig()
	if err != nil {
		return nil, err
	}
	return parse(defaults, data, source)
}

func parse(base *Config, data []byte, source string) (*Config, error) {
	var decoded Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	cfg := &decoded
	if base != nil {
		cfg = overlay(*base, decoded)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt+" "+messages.ConfigValidationGuidance, ErrConfigValidation, source, err)
	}
	expanded, err := homedir.Expand(cfg.Run.LogDir)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigExpandPathFmt, cfg.Run.LogDir, err)
	}
	cfg.Run.LogDir = expanded
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w "+messages.ConfigValidationGuidance, ErrConfigValidation, err)
	}
	return cfg, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

// overlay returns base with every key set in user applied on top.
// An explicitly empty list is kept so validation can reject it.
func overlay(base Config, user Config) *Config {
	setString(&base.Host.Descriptor, user.Host.Descriptor)
	setString(&base.Apt.SourcesDir, user.Apt.SourcesDir)
	setString(&base.Apt.Mirror, user.Apt.Mirror)
	if user.Surface.Terminals != nil {
		base.Surface.Terminals = user.Surface.Terminals
	}
	if user.Surface.SearchDirs != nil {
		base.Surface.SearchDirs = user.Surface.SearchDirs
	}
	setString(&base.Surface.Broker, user.Surface.Broker)
	setString(&base.Run.Shell, user.Run.Shell)
	if user.Run.LineBuffer != 0 {
		base.Run.LineBuffer = user.Run.LineBuffer
	}
	setString(&base.Run.LogDir, user.Run.LogDir)
	return &base
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
