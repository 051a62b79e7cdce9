// Package session owns the authenticated client state: the bearer token, the
// identity's organizations, and the profile scoped to the current
// organization. All mutation flows through the Controller; everything else
// reads snapshots through a synchronous subscription mechanism.
package session

import (
	"github.com/consolehq/go-console-client/organizations"
	"github.com/consolehq/go-console-client/profiles"
)

// Persisted storage keys. All four are written together on successful
// mutations and removed together on logout.
const (
	storageKeyToken         = "token"
	storageKeyCurrentUser   = "currentUser"
	storageKeyOrganizations = "organizations"
	storageKeyEmail         = "email"
)

// Snapshot is a point-in-time, read-only view of the session. Consumers must
// not mutate the slices or the profile it carries.
type Snapshot struct {
	Token         string
	Email         string
	Organizations []organizations.Summary
	Profile       *profiles.Profile

	// IsLoading is true from construction until Rehydrate completes. Guards
	// make no navigation decision while it is set.
	IsLoading bool
}

// Authenticated reports whether the session holds an identity. Presence of a
// token is the deciding signal; a token without a profile is the valid
// degenerate state of an identity with no organizations.
func (s Snapshot) Authenticated() bool {
	return s.Token != ""
}

// CurrentOrganizationID returns the organization the profile is scoped to,
// or "" when there is no profile.
func (s Snapshot) CurrentOrganizationID() string {
	if s.Profile == nil {
		return ""
	}
	return s.Profile.OrganizationID
}
