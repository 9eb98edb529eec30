package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable_CoversEveryFamily(t *testing.T) {
	table, err := DefaultTable()
	require.NoError(t, err)
	require.Len(t, table, len(Families))
	for _, family := range Families {
		entry, ok := table[family]
		require.True(t, ok, family)
		assert.NotEmpty(t, entry.Install, family)
		assert.NotEmpty(t, entry.Packages, family)
		for _, dep := range Dependencies {
			assert.NotEmpty(t, entry.Dependencies[dep], "%s %s", family, dep)
		}
	}
	assert.True(t, table[Debian].Backports)
	assert.False(t, table[Ubuntu].Backports)
}

func TestDefaultTable_NetcatVariants(t *testing.T) {
	table, err := DefaultTable()
	require.NoError(t, err)
	want := map[Family]string{
		Debian:   "netcat-openbsd",
		Ubuntu:   "netcat-openbsd",
		Fedora:   "nmap-ncat",
		RHEL:     "nmap-ncat",
		Arch:     "openbsd-netcat",
		OpenSUSE: "netcat-openbsd",
		Gentoo:   "net-analyzer/openbsd-netcat",
		NixOS:    "nixos.netcat-openbsd",
	}
	for family, pkg := range want {
		assert.Contains(t, table[family].Packages, pkg, family)
	}
}

func validYAML() string {
	var b strings.Builder
	for _, family := range Families {
		b.WriteString(string(family) + ":\n")
		b.WriteString("  manager: pm\n  install: pm install\n  packages: [a]\n")
		b.WriteString("  dependencies:\n    privilege-broker: polkit\n    rdp-client: freerdp\n")
	}
	return b.String()
}

func TestLoadTable_Valid(t *testing.T) {
	table, err := LoadTable([]byte(validYAML()))
	require.NoError(t, err)
	assert.Equal(t, "pm install", table[Gentoo].Install)
}

func TestLoadTable_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "syntax", data: "debian: [", want: "decode"},
		{name: "unknown field", data: strings.Replace(validYAML(), "manager: pm", "manger: pm", 1), want: "decode"},
		{name: "unknown family", data: validYAML() + "void:\n  install: xbps-install\n  packages: [a]\n", want: `unknown family "void"`},
		{name: "missing family", data: validYAML()[strings.Index(validYAML(), "ubuntu:"):], want: "missing entry for family debian"},
		{name: "missing install", data: strings.Replace(validYAML(), "install: pm install", "install: \"\"", 1), want: "has no install command"},
		{name: "missing packages", data: strings.Replace(validYAML(), "packages: [a]", "packages: []", 1), want: "has no packages"},
		{name: "missing dependency", data: strings.Replace(validYAML(), "    rdp-client: freerdp\n", "", 1), want: "no package for dependency rdp-client"},
		{name: "unknown dependency", data: strings.Replace(validYAML(), "rdp-client:", "rdp-server:", 1), want: `unknown dependency "rdp-server"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTable([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTable)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseDependency(t *testing.T) {
	dep, ok := ParseDependency("rdp-client")
	assert.True(t, ok)
	assert.Equal(t, RDPClient, dep)

	_, ok = ParseDependency("kernel")
	assert.False(t, ok)
}
