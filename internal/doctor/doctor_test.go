package doctor

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winapps-org/winapps-setup/internal/hostid"
	"github.com/winapps-org/winapps-setup/internal/plan"
	"github.com/winapps-org/winapps-setup/internal/session"
	"github.com/winapps-org/winapps-setup/internal/surface"
	"github.com/winapps-org/winapps-setup/internal/testutil"
	"github.com/winapps-org/winapps-setup/internal/update"
)

type locatorSystem struct {
	surface.RealSystem
	brokerPath string
	probeErr   error
}

func (s locatorSystem) CommandV(context.Context, string, string) (string, bool, error) {
	if s.probeErr != nil {
		return "", false, s.probeErr
	}
	return s.brokerPath, s.brokerPath != "", nil
}

func (s locatorSystem) Executable(path string) bool {
	return path == s.brokerPath
}

func newResolver(t *testing.T) *plan.Resolver {
	t.Helper()
	r, err := plan.NewResolver(plan.Options{SourcesDir: t.TempDir()})
	require.NoError(t, err)
	return r
}

func TestCheckConfig(t *testing.T) {
	assert.Equal(t, StatusOK, CheckConfig("", nil).Status)
	assert.Contains(t, CheckConfig("/x/config.toml", nil).Message, "/x/config.toml")

	failed := CheckConfig("", errors.New("bad key"))
	assert.Equal(t, StatusFail, failed.Status)
	assert.Contains(t, failed.Message, "bad key")
	assert.Contains(t, failed.Recommendation, "WINAPPS_SETUP_CONFIG")
}

func TestCheckIdentityAndFamily(t *testing.T) {
	sys := testutil.Files{"/os": "ID=linuxmint\nID_LIKE=\"ubuntu debian\"\nPRETTY_NAME=\"Linux Mint 22\"\n"}
	result, sess := CheckIdentity(sys, "/os")
	require.NotNil(t, sess)
	assert.Equal(t, StatusOK, result.Status)
	assert.Contains(t, result.Message, "Linux Mint 22")

	family := CheckFamily(sess)
	assert.Equal(t, StatusOK, family.Status)
	assert.Contains(t, family.Message, "debian")

	result, sess = CheckIdentity(sys, "/missing")
	assert.Nil(t, sess)
	assert.Equal(t, StatusFail, result.Status)

	void := session.New()
	require.NoError(t, void.Set(hostid.Identity{ID: "void"}))
	family = CheckFamily(void)
	assert.Equal(t, StatusFail, family.Status)
	assert.Contains(t, family.Message, `"void"`)
}

func TestCheckPlan(t *testing.T) {
	sess := session.New()
	require.NoError(t, sess.Set(hostid.Identity{ID: "debian", VersionCodename: "bookworm"}))
	result := CheckPlan(newResolver(t), sess)
	assert.Equal(t, StatusOK, result.Status)
	assert.Contains(t, result.Message, "bookworm-backports")

	arch := session.New()
	require.NoError(t, arch.Set(hostid.Identity{ID: "arch"}))
	result = CheckPlan(newResolver(t), arch)
	assert.Equal(t, StatusOK, result.Status)
	assert.Contains(t, result.Message, "pacman")

	result = CheckPlan(newResolver(t), session.New())
	assert.Equal(t, StatusFail, result.Status)
}

func TestCheckBroker(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	pkexec := testutil.WriteStub(t, dir, "pkexec")

	ok := CheckBroker(ctx, surface.NewLocator(surface.Options{System: locatorSystem{brokerPath: pkexec}}))
	assert.Equal(t, StatusOK, ok.Status)
	assert.Contains(t, ok.Message, pkexec)

	missing := CheckBroker(ctx, surface.NewLocator(surface.Options{System: locatorSystem{}}))
	assert.Equal(t, StatusWarn, missing.Status)
	assert.Contains(t, missing.Recommendation, "install-broker")

	failed := CheckBroker(ctx, surface.NewLocator(surface.Options{System: locatorSystem{probeErr: errors.New("fork")}}))
	assert.Equal(t, StatusFail, failed.Status)
}

func TestCheckTerminal(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteStub(t, dir, "xterm")
	locator := surface.NewLocator(surface.Options{SearchDirs: []string{dir}})

	assert.Equal(t, StatusOK, CheckTerminal(locator, true).Status)
	noDisplay := CheckTerminal(locator, false)
	assert.Equal(t, StatusWarn, noDisplay.Status)
	assert.NotEmpty(t, noDisplay.Recommendation)

	none := CheckTerminal(surface.NewLocator(surface.Options{SearchDirs: []string{t.TempDir()}}), true)
	assert.Equal(t, StatusWarn, none.Status)
}

func TestCheckFreeRDP(t *testing.T) {
	lookPath := func(name string) (string, error) {
		if name == "xfreerdp" {
			return "/usr/bin/xfreerdp", nil
		}
		return "", exec.ErrNotFound
	}
	result := CheckFreeRDP(lookPath)
	assert.Equal(t, StatusOK, result.Status)
	assert.Contains(t, result.Message, "xfreerdp at /usr/bin/xfreerdp")

	result = CheckFreeRDP(func(string) (string, error) { return "", exec.ErrNotFound })
	assert.Equal(t, StatusWarn, result.Status)
	assert.Contains(t, result.Message, "xfreerdp3, xfreerdp, sdl-freerdp3")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteStub(t, dir, "konsole")
	pkexec := testutil.WriteStub(t, dir, "pkexec")
	opts := Options{
		Descriptor: "/os",
		Identity:   testutil.Files{"/os": "ID=fedora\n"},
		Resolver:   newResolver(t),
		Locator:    surface.NewLocator(surface.Options{SearchDirs: []string{dir}, System: locatorSystem{brokerPath: pkexec}}),
		LookPath:   func(string) (string, error) { return "/usr/bin/xfreerdp3", nil },
		HasDisplay: true,
		Version:    "1.0.0",
	}
	opts.CheckUpdate = func(context.Context, string) (update.CheckResult, error) {
		return update.CheckResult{Current: "1.0.0", Latest: "1.0.0"}, nil
	}
	results := Run(context.Background(), opts)
	require.Len(t, results, 8)
	assert.False(t, HasFailure(results))
	for _, r := range results {
		assert.Equal(t, StatusOK, r.Status, r.CheckName)
	}

	opts.Descriptor = "/missing"
	results = Run(context.Background(), opts)
	require.Len(t, results, 6)
	assert.True(t, HasFailure(results))
}

func TestCheckUpdate(t *testing.T) {
	result := CheckUpdate(context.Background(), "1.0.0", nil)
	assert.Equal(t, StatusWarn, result.Status)
	assert.Contains(t, result.Message, update.EnvNoNetwork)

	tests := []struct {
		name    string
		result  update.CheckResult
		err     error
		status  Status
		message string
	}{
		{name: "current", result: update.CheckResult{Current: "1.0.0", Latest: "1.0.0"}, status: StatusOK, message: "latest version (1.0.0)"},
		{name: "outdated", result: update.CheckResult{Current: "1.0.0", Latest: "1.1.0", Outdated: true}, status: StatusWarn, message: "1.1.0 is available"},
		{name: "dev", result: update.CheckResult{Current: "dev", CurrentIsDev: true}, status: StatusWarn, message: "development build"},
		{name: "error", err: errors.New("offline"), status: StatusWarn, message: "offline"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckUpdate(context.Background(), "1.0.0", func(context.Context, string) (update.CheckResult, error) {
				return tt.result, tt.err
			})
			assert.Equal(t, tt.status, got.Status)
			assert.Contains(t, got.Message, tt.message)
		})
	}
}
