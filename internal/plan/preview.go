package plan

import (
	"fmt"

	"github.com/aymanbagabas/go-udiff"

	"github.com/winapps-org/winapps-setup/internal/messages"
	"github.com/winapps-org/winapps-setup/internal/session"
)

// BackportsPreview returns a unified diff of the source list the backports
// step would create, or an empty string when the session needs no backports.
func (r *Resolver) BackportsPreview(sess *session.Session) (string, error) {
	identity, err := sess.Identity()
	if err != nil {
		return "", err
	}
	_, needed, err := r.backportsStep(Classify(identity), identity)
	if err != nil || !needed {
		return "", err
	}
	marker := r.MarkerPath(identity.VersionCodename)
	return udiff.Unified(
		fmt.Sprintf(messages.PlanPreviewCreatedFromFmt, marker),
		marker,
		"",
		r.backportsLine(identity.VersionCodename)+"\n",
	), nil
}
