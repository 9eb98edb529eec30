package plan

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winapps-org/winapps-setup/internal/hostid"
	"github.com/winapps-org/winapps-setup/internal/session"
)

type statSystem struct {
	present map[string]bool
	err     error
}

func (s statSystem) Stat(name string) (os.FileInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.present[name] {
		return nil, nil
	}
	return nil, fs.ErrNotExist
}

func newTestResolver(t *testing.T, sys System) *Resolver {
	t.Helper()
	r, err := NewResolver(Options{System: sys, SourcesDir: "/apt", Mirror: "http://mirror/debian"})
	require.NoError(t, err)
	return r
}

func sessionFor(t *testing.T, identity hostid.Identity) *session.Session {
	t.Helper()
	sess := session.New()
	require.NoError(t, sess.Set(identity))
	return sess
}

func TestResolve_AllFamilies(t *testing.T) {
	r := newTestResolver(t, statSystem{})
	for _, family := range Families {
		p, err := r.Resolve(family)
		require.NoError(t, err, family)
		require.NotEmpty(t, p.Steps, family)
		last := p.Steps[len(p.Steps)-1]
		assert.Equal(t, StepInstall, last.Kind, family)
		assert.False(t, p.HasBackports(), family)
	}
}

func TestResolve_Debian(t *testing.T) {
	r := newTestResolver(t, statSystem{})
	p, err := r.Resolve(Debian)
	require.NoError(t, err)
	assert.Equal(t, "apt", p.Manager)
	assert.Equal(t, []string{
		"apt-get update",
		"apt-get install -y curl dialog freerdp3-x11 git iproute2 libnotify-bin netcat-openbsd",
	}, p.Commands())
}

func TestResolve_Unsupported(t *testing.T) {
	r := newTestResolver(t, statSystem{})
	for _, family := range []Family{Unsupported, Family("void"), Family("")} {
		_, err := r.Resolve(family)
		assert.ErrorIs(t, err, ErrNoPlanForFamily, family)
	}
}

func TestResolveDependency(t *testing.T) {
	r := newTestResolver(t, statSystem{})

	cmd, err := r.ResolveDependency(Fedora, PrivilegeBroker)
	require.NoError(t, err)
	assert.Equal(t, "dnf install -y polkit", cmd)

	cmd, err = r.ResolveDependency(Arch, RDPClient)
	require.NoError(t, err)
	assert.Equal(t, "pacman -Syu --needed --noconfirm freerdp", cmd)

	_, err = r.ResolveDependency(Unsupported, PrivilegeBroker)
	assert.ErrorIs(t, err, ErrNoPlanForFamily)

	_, err = r.ResolveDependency(Debian, Dependency("kernel"))
	assert.ErrorIs(t, err, ErrUnknownDependency)
}

func TestForSession_DebianBackports(t *testing.T) {
	r := newTestResolver(t, statSystem{})
	sess := sessionFor(t, hostid.Identity{ID: "debian", VersionCodename: "bookworm"})

	p, err := r.ForSession(sess)
	require.NoError(t, err)
	require.True(t, p.HasBackports())
	assert.Equal(t, StepBackports, p.Steps[0].Kind)
	assert.Equal(t,
		"echo 'deb http://mirror/debian bookworm-backports main' >> /apt/bookworm-backports.list",
		p.Steps[0].Command)

	plain, err := r.Resolve(Debian)
	require.NoError(t, err)
	assert.Equal(t, plain.Steps, p.Steps[1:])
}

func TestForSession_MarkerPresent(t *testing.T) {
	r := newTestResolver(t, statSystem{present: map[string]bool{"/apt/bookworm-backports.list": true}})
	sess := sessionFor(t, hostid.Identity{ID: "debian", VersionCodename: "bookworm"})

	p, err := r.ForSession(sess)
	require.NoError(t, err)
	plain, err := r.Resolve(Debian)
	require.NoError(t, err)
	assert.Equal(t, plain, p)
}

func TestForSession_NoBackportsForDerivatives(t *testing.T) {
	r := newTestResolver(t, statSystem{})
	identities := []hostid.Identity{
		{ID: "ubuntu", IDLike: "debian", VersionCodename: "noble"},
		{ID: "linuxmint", IDLike: "ubuntu debian", VersionCodename: "wilma"},
		{ID: "raspbian", IDLike: "debian", VersionCodename: "bookworm"},
		{ID: "debian"},
	}
	for _, identity := range identities {
		p, err := r.ForSession(sessionFor(t, identity))
		require.NoError(t, err, identity.ID)
		assert.False(t, p.HasBackports(), identity.ID)
	}
}

func TestForSession_Errors(t *testing.T) {
	r := newTestResolver(t, statSystem{})
	_, err := r.ForSession(session.New())
	assert.ErrorIs(t, err, session.ErrEmpty)

	_, err = r.ForSession(sessionFor(t, hostid.Identity{ID: "void"}))
	assert.ErrorIs(t, err, ErrNoPlanForFamily)

	boom := errors.New("io error")
	r = newTestResolver(t, statSystem{err: boom})
	_, err = r.ForSession(sessionFor(t, hostid.Identity{ID: "debian", VersionCodename: "trixie"}))
	assert.ErrorIs(t, err, boom)
}

func TestForSession_RealFilesystem(t *testing.T) {
	dir := t.TempDir()
	r, err := NewResolver(Options{SourcesDir: dir})
	require.NoError(t, err)
	sess := sessionFor(t, hostid.Identity{ID: "debian", VersionCodename: "trixie"})

	p, err := r.ForSession(sess)
	require.NoError(t, err)
	assert.True(t, p.HasBackports())
	assert.Contains(t, p.Steps[0].Command, DefaultMirror)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "trixie-backports.list"), nil, 0o644))
	p, err = r.ForSession(sess)
	require.NoError(t, err)
	assert.False(t, p.HasBackports())
}

func TestPlan_Script(t *testing.T) {
	p := Plan{Steps: []Step{{Kind: StepRefresh, Command: "a"}, {Kind: StepInstall, Command: "b"}}}
	assert.Equal(t, "set -e\na\nb", p.Script())
	assert.True(t, strings.HasPrefix(p.Script(), "set -e"))
	assert.Equal(t, "refresh", StepRefresh.String())
	assert.Equal(t, "backports", StepBackports.String())
	assert.Equal(t, "install", StepInstall.String())
}

func TestNewResolver_InvalidTable(t *testing.T) {
	_, err := NewResolver(Options{Table: Table{Debian: {}}})
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestBackportsPreview(t *testing.T) {
	r := newTestResolver(t, statSystem{})

	diff, err := r.BackportsPreview(sessionFor(t, hostid.Identity{ID: "debian", VersionCodename: "bookworm"}))
	require.NoError(t, err)
	assert.Contains(t, diff, "+++ /apt/bookworm-backports.list")
	assert.Contains(t, diff, "+deb http://mirror/debian bookworm-backports main")

	diff, err = r.BackportsPreview(sessionFor(t, hostid.Identity{ID: "fedora"}))
	require.NoError(t, err)
	assert.Empty(t, diff)

	_, err = r.BackportsPreview(session.New())
	assert.ErrorIs(t, err, session.ErrEmpty)
}
