// Package plan classifies hosts into package-manager families and resolves
// the shell commands that install the bridge dependencies for each family.
package plan

import (
	"fmt"
	"strings"

	"github.com/winapps-org/winapps-setup/internal/hostid"
	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/session"
)

// Family is a package-manager lineage.
type Family string

// Supported families. Declaration order is the classification priority.
const (
	Debian   Family = "debian"
	Ubuntu   Family = "ubuntu"
	Fedora   Family = "fedora"
	RHEL     Family = "rhel"
	Arch     Family = "arch"
	OpenSUSE Family = "opensuse"
	Gentoo   Family = "gentoo"
	NixOS    Family = "nixos"

	// Unsupported is returned when no family matches.
	Unsupported Family = "unsupported"
)

// Families lists the supported families in classification order.
var Families = []Family{Debian, Ubuntu, Fedora, RHEL, Arch, OpenSUSE, Gentoo, NixOS}

// String returns the family name.
func (f Family) String() string {
	return string(f)
}

// Supported reports whether f is a member of Families.
func (f Family) Supported() bool {
	for _, candidate := range Families {
		if f == candidate {
			return true
		}
	}
	return false
}

// ParseFamily maps a name to a supported family, ignoring case.
func ParseFamily(name string) (Family, bool) {
	normalized := Family(strings.ToLower(strings.TrimSpace(name)))
	if normalized.Supported() {
		return normalized, true
	}
	return Unsupported, false
}

// UnclassifiedError carries the raw identity string that matched no family.
type UnclassifiedError struct {
	Raw string
}

func (e *UnclassifiedError) Error() string {
	return fmt.Sprintf(messages.PlanUnclassifiedFmt, e.Raw)
}

// Classify maps an identity to a family.
// Tokens of ID_LIKE (or ID when ID_LIKE is empty) are matched against Families
// in declared order; the first family present wins. When no token matches,
// the literal ID is tried before returning Unsupported.
func Classify(identity hostid.Identity) Family {
	tokens := strings.Fields(strings.ToLower(identity.Raw()))
	for _, family := range Families {
		for _, token := range tokens {
			if token == string(family) {
				return family
			}
		}
	}
	if family, ok := ParseFamily(identity.ID); ok {
		return family
	}
	return Unsupported
}

// ClassifyStrict is Classify with an *UnclassifiedError for unsupported hosts.
func ClassifyStrict(identity hostid.Identity) (Family, error) {
	family := Classify(identity)
	if family == Unsupported {
		return Unsupported, &UnclassifiedError{Raw: identity.Raw()}
	}
	return family, nil
}

// SessionFamily classifies the session identity, or returns Unsupported when
// detection has not run.
func SessionFamily(sess *session.Session) Family {
	identity, ok := sess.Get()
	if !ok {
		return Unsupported
	}
	return Classify(identity)
}
