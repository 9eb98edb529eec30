package update

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withLookup(t *testing.T, fn lookupFunc) {
	t.Helper()
	orig := lookup
	t.Cleanup(func() { lookup = orig })
	lookup = fn
}

func TestCheck_Outdated(t *testing.T) {
	withLookup(t, func(current string) (string, bool, error) {
		assert.Equal(t, "1.0.0", current)
		return "v1.2.0", true, nil
	})
	result, err := Check(context.Background(), "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, CheckResult{Current: "1.0.0", Latest: "1.2.0", Outdated: true}, result)
}

func TestCheck_UpToDate(t *testing.T) {
	withLookup(t, func(string) (string, bool, error) { return "1.0.0", false, nil })
	result, err := Check(context.Background(), "1.0.0")
	require.NoError(t, err)
	assert.False(t, result.Outdated)
}

func TestCheck_DevSkipsLookup(t *testing.T) {
	withLookup(t, func(string) (string, bool, error) {
		t.Fatal("lookup called for dev build")
		return "", false, nil
	})
	for _, v := range []string{"dev", "", "v0.3.0-dev"} {
		result, err := Check(context.Background(), v)
		require.NoError(t, err)
		assert.True(t, result.CurrentIsDev, v)
	}
}

func TestCheck_Error(t *testing.T) {
	withLookup(t, func(string) (string, bool, error) { return "", false, ErrNoReleases })
	_, err := Check(context.Background(), "1.0.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoReleases)
	assert.Contains(t, err.Error(), "winapps-setup")
}

func TestCheck_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	withLookup(t, func(string) (string, bool, error) {
		<-release
		return "", false, errors.New("late")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Check(ctx, "1.0.0")
	assert.ErrorIs(t, err, context.Canceled)
}
