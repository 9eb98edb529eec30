// Package lock provides the advisory file lock that keeps two installer
// processes from running package managers at the same time.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/winapps-org/winapps-setup/internal/messages"
)

// ErrBusy is wrapped when another process holds the lock.
var ErrBusy = errors.New(messages.LockBusy)

var flockFn = unix.Flock

// FileLock is a held advisory lock.
type FileLock struct {
	path string
	file *os.File
}

// DefaultPath returns the lock location under dir, usually the run log dir.
func DefaultPath(dir string) string {
	return filepath.Join(dir, messages.LockFileName)
}

// Acquire opens or creates path and takes an exclusive lock without waiting.
func Acquire(path string) (*FileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf(messages.LockOpenFmt, path, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.LockOpenFmt, path, err)
	}
	if err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = file.Close()
		if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
			return nil, fmt.Errorf(messages.LockBusyFmt, ErrBusy, path)
		}
		return nil, fmt.Errorf(messages.LockAcquireFmt, path, err)
	}
	return &FileLock{path: path, file: file}, nil
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}

// Release unlocks and closes the file. It is safe to call more than once.
func (l *FileLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	file := l.file
	l.file = nil
	if err := flockFn(int(file.Fd()), unix.LOCK_UN); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
