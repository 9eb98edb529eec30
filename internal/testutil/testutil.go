// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// WriteScript writes an executable shell script with body and returns its path.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteScript(t *testing.T, dir string, name string, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

// WriteStub writes an executable shell stub that exits successfully.
func WriteStub(t *testing.T, dir string, name string) string {
	t.Helper()
	return WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) string {
	t.Helper()
	return WriteScript(t, dir, name, fmt.Sprintf("exit %d\n", exitCode))
}

// WriteArgsRecorder writes a stub that stores its arguments in argsFile,
// one per line.
func WriteArgsRecorder(t *testing.T, dir string, name string, argsFile string) string {
	t.Helper()
	return WriteScript(t, dir, name, fmt.Sprintf("printf '%%s\\n' \"$@\" > '%s'\n", argsFile))
}

// Files is an in-memory filesystem keyed by absolute path. It satisfies the
// ReadFile-based System interfaces used for host identity.
type Files map[string]string

// ReadFile returns the stored content or fs.ErrNotExist.
func (f Files) ReadFile(name string) ([]byte, error) {
	content, ok := f[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return []byte(content), nil
}

// OSRelease returns Files holding content at /etc/os-release. Empty content
// leaves the file missing.
func OSRelease(content string) Files {
	files := Files{}
	if content != "" {
		files["/etc/os-release"] = content
	}
	return files
}
