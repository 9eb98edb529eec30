// Package session holds the host identity detected for one installer run.
package session

import (
	"errors"

	"github.com/winapps-org/winapps-setup/internal/hostid"
	"github.com/winapps-org/winapps-setup/internal/messages"
)

var (
	// ErrAlreadySet is returned when Set is called more than once.
	ErrAlreadySet = errors.New(messages.SessionAlreadySet)
	// ErrEmpty is returned by consumers that need an identity before detection ran.
	ErrEmpty = errors.New(messages.SessionEmpty)
)

// Session is the per-run record shared by the resolver and the locator.
// It is written once by detection and read afterwards; it is not safe for
// concurrent writers.
type Session struct {
	identity hostid.Identity
	set      bool
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// Set stores the detected identity. Only the first call succeeds.
func (s *Session) Set(identity hostid.Identity) error {
	if s.set {
		return ErrAlreadySet
	}
	s.identity = identity
	s.set = true
	return nil
}

// Get returns the stored identity and whether one was set.
func (s *Session) Get() (hostid.Identity, bool) {
	if s == nil || !s.set {
		return hostid.Identity{}, false
	}
	return s.identity, true
}

// Identity returns the stored identity or ErrEmpty.
func (s *Session) Identity() (hostid.Identity, error) {
	identity, ok := s.Get()
	if !ok {
		return hostid.Identity{}, ErrEmpty
	}
	return identity, nil
}
