package config

import (
	"fmt"
	"strings"

	"github.com/winapps-org/winapps-setup/internal/messages"
)

// FieldType classifies the kind of value a config field accepts.
type FieldType string

const (
	// FieldPath accepts an absolute filesystem path.
	FieldPath FieldType = "path"
	// FieldList accepts a list of strings.
	FieldList FieldType = "list"
	// FieldFreetext accepts arbitrary string input.
	FieldFreetext FieldType = "freetext"
	// FieldPositiveInt accepts a positive integer.
	FieldPositiveInt FieldType = "positive_int"
)

// FieldDef describes a single config field.
type FieldDef struct {
	Key         string
	Type        FieldType
	Description string
	value       func(*Config) any
}

// fields is the canonical ordered registry of config fields, in file order.
var fields = []FieldDef{
	{Key: "host.descriptor", Type: FieldPath, Description: messages.ConfigFieldDescriptorDesc, value: func(c *Config) any { return c.Host.Descriptor }},
	{Key: "apt.sources_dir", Type: FieldPath, Description: messages.ConfigFieldSourcesDirDesc, value: func(c *Config) any { return c.Apt.SourcesDir }},
	{Key: "apt.mirror", Type: FieldFreetext, Description: messages.ConfigFieldMirrorDesc, value: func(c *Config) any { return c.Apt.Mirror }},
	{Key: "surface.terminals", Type: FieldList, Description: messages.ConfigFieldTerminalsDesc, value: func(c *Config) any { return c.Surface.Terminals }},
	{Key: "surface.search_dirs", Type: FieldList, Description: messages.ConfigFieldSearchDirsDesc, value: func(c *Config) any { return c.Surface.SearchDirs }},
	{Key: "surface.broker", Type: FieldFreetext, Description: messages.ConfigFieldBrokerDesc, value: func(c *Config) any { return c.Surface.Broker }},
	{Key: "run.shell", Type: FieldFreetext, Description: messages.ConfigFieldShellDesc, value: func(c *Config) any { return c.Run.Shell }},
	{Key: "run.line_buffer", Type: FieldPositiveInt, Description: messages.ConfigFieldLineBufferDesc, value: func(c *Config) any { return c.Run.LineBuffer }},
	{Key: "run.log_dir", Type: FieldPath, Description: messages.ConfigFieldLogDirDesc, value: func(c *Config) any { return c.Run.LogDir }},
}

// fieldIndex provides O(1) lookup by key.
var fieldIndex = buildFieldIndex()

func buildFieldIndex() map[string]int {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[f.Key] = i
	}
	return idx
}

// LookupField returns the field definition for the given config key.
func LookupField(key string) (FieldDef, bool) {
	i, ok := fieldIndex[key]
	if !ok {
		return FieldDef{}, false
	}
	return fields[i], true
}

// Fields returns all registered field definitions in catalog order.
func Fields() []FieldDef {
	return append([]FieldDef(nil), fields...)
}

// Value renders the field's current value in cfg.
func (f FieldDef) Value(cfg *Config) string {
	if f.value == nil || cfg == nil {
		return ""
	}
	switch v := f.value(cfg).(type) {
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(v)
	}
}
