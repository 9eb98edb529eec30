package terminal

import "testing"

func TestIsInteractive(t *testing.T) {
	// No TTY under go test; only check it does not panic.
	_ = IsInteractive()
}

func TestHasDisplay(t *testing.T) {
	env := map[string]string{}
	getenv := func(key string) string { return env[key] }
	if HasDisplay(getenv) {
		t.Fatalf("expected no display")
	}
	env["WAYLAND_DISPLAY"] = "wayland-0"
	if !HasDisplay(getenv) {
		t.Fatalf("expected wayland display")
	}
	env = map[string]string{"DISPLAY": ":0"}
	if !HasDisplay(getenv) {
		t.Fatalf("expected X display")
	}
}

func TestIsRoot(t *testing.T) {
	_ = IsRoot()
}
