// Package update checks GitHub for newer winapps-setup releases.
package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	latest "github.com/tcnksm/go-latest"

	"github.com/winapps-org/winapps-setup/internal/messages"
)

// Release repository coordinates.
const (
	Owner      = "winapps-org"
	Repository = "winapps-setup"
)

// EnvNoNetwork disables release checks when set to a non-empty value.
const EnvNoNetwork = "WINAPPS_SETUP_NO_NETWORK"

// ErrNoReleases is returned when the repository has no tagged release.
var ErrNoReleases = errors.New(messages.UpdateNoReleases)

// CheckResult captures the latest release check outcome.
type CheckResult struct {
	Current      string
	Latest       string
	Outdated     bool
	CurrentIsDev bool
}

// lookupFunc returns the newest release and whether current is older.
type lookupFunc func(current string) (string, bool, error)

var lookup lookupFunc = githubLookup

func githubLookup(current string) (string, bool, error) {
	res, err := latest.Check(&latest.GithubTag{Owner: Owner, Repository: Repository}, current)
	if err != nil {
		return "", false, err
	}
	if res.Current == "" {
		return "", false, ErrNoReleases
	}
	return res.Current, res.Outdated, nil
}

// Check compares currentVersion with the newest release. Development builds
// are reported without a lookup. The lookup itself cannot be cancelled;
// ctx only bounds how long Check waits for it.
func Check(ctx context.Context, currentVersion string) (CheckResult, error) {
	current := normalize(currentVersion)
	if IsDev(current) {
		return CheckResult{Current: "dev", CurrentIsDev: true}, nil
	}

	type answer struct {
		latest   string
		outdated bool
		err      error
	}
	answers := make(chan answer, 1)
	fn := lookup
	go func() {
		newest, outdated, err := fn(current)
		answers <- answer{latest: newest, outdated: outdated, err: err}
	}()

	select {
	case <-ctx.Done():
		return CheckResult{}, ctx.Err()
	case a := <-answers:
		if a.err != nil {
			return CheckResult{}, fmt.Errorf(messages.UpdateCheckFailedFmt, Repository, a.err)
		}
		return CheckResult{Current: current, Latest: normalize(a.latest), Outdated: a.outdated}, nil
	}
}

// IsDev reports whether version names a development build.
func IsDev(version string) bool {
	v := normalize(version)
	return v == "" || v == "dev" || strings.HasSuffix(v, "-dev")
}

func normalize(version string) string {
	return strings.TrimPrefix(strings.TrimSpace(version), "v")
}
