package prompt

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHuhUI(t *testing.T) {
	ui := NewHuhUI()
	assert.NotNil(t, ui.isTerminal)
}

func TestHuhUI_NoTTY(t *testing.T) {
	ui := &HuhUI{isTerminal: func() bool { return false }}

	var ok bool
	err := ui.Confirm("Install?", "", &ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")

	assert.Error(t, ui.Note("Title", "Body"))
}

func TestHuhUI_NilChecker(t *testing.T) {
	ui := &HuhUI{}
	// go test has no TTY, so the default checker rejects the form.
	assert.Error(t, ui.ensureInteractive())
}

func TestHuhUI_RunForm(t *testing.T) {
	ui := &HuhUI{isTerminal: func() bool { return true }}
	orig := runFormFunc
	t.Cleanup(func() { runFormFunc = orig })

	called := 0
	runFormFunc = func(form *huh.Form) error {
		require.NotNil(t, form)
		called++
		return nil
	}
	var ok bool
	require.NoError(t, ui.Confirm("Install?", "apt-get install -y curl", &ok))
	require.NoError(t, ui.Note("Done", "body"))
	assert.Equal(t, 2, called)

	runFormFunc = func(*huh.Form) error { return huh.ErrUserAborted }
	assert.ErrorIs(t, ui.Confirm("Install?", "", &ok), ErrCancelled)

	boom := errors.New("render failed")
	runFormFunc = func(*huh.Form) error { return boom }
	assert.ErrorIs(t, ui.Note("x", "y"), boom)
}

func TestAutoUI(t *testing.T) {
	var out bytes.Buffer
	ui := AutoUI{Out: &out}

	var ok bool
	require.NoError(t, ui.Confirm("Install dependencies?", "", &ok))
	assert.True(t, ok)
	require.NoError(t, ui.Note("Plan", "apt-get update"))
	assert.Contains(t, out.String(), "Install dependencies? yes (--yes)")
	assert.Contains(t, out.String(), "Plan\napt-get update\n")

	require.NoError(t, AutoUI{}.Note("quiet", ""))
}
