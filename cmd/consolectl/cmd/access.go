package cmd

import (
	"fmt"

	"github.com/consolehq/go-console-client/guard"
)

// requireSession gates a protected command on an authenticated session.
func requireSession() error {
	if err := guard.Require(ctrl); err != nil {
		return notAuthenticated()
	}
	return nil
}

// requirePermission gates a command on the current profile holding any one of
// the listed permissions. The client-side check is a courtesy; the server
// enforces authorization regardless.
func requirePermission(permissions ...string) error {
	if err := requireSession(); err != nil {
		return err
	}
	profile := ctrl.Snapshot().Profile
	if !profile.HasAnyPermission(permissions...) {
		return fmt.Errorf("You do not have permission to view this content")
	}
	return nil
}

// currentOrgID returns the organization the session is scoped to.
func currentOrgID() string {
	return ctrl.Snapshot().CurrentOrganizationID()
}
