package cmd

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/consolehq/go-console-client/gateway/gatewayfake"
	"github.com/consolehq/go-console-client/organizations"
	"github.com/consolehq/go-console-client/profiles"
	"github.com/consolehq/go-console-client/session"
	"github.com/consolehq/go-console-client/storage"
)

// setupAuthenticated wires the package globals to a fake-backed, logged-in
// session, the way PersistentPreRunE does against the real API.
func setupAuthenticated(t *testing.T) *fakegateway.FakeGateway {
	t.Helper()

	gw := fakegateway.New()
	gw.AddAccount("admin@nike.com", "password", "userId1", []organizations.Summary{
		{ID: "orgId1", Name: "Org One"},
	})
	gw.AddProfile("userId1", "orgId1", &profiles.Fragment{
		UserID: "userId1",
		Email:  "admin@nike.com",
		Roles: []profiles.Role{
			{
				ID:   "role1",
				Name: "Admin",
				Permissions: []profiles.Permission{
					{ID: "perm1", Name: "users:view"},
					{ID: "perm3", Name: "invite:view"},
				},
			},
		},
	})

	var err error
	api = gw
	ctrl, err = session.New(
		session.Deps{Gateway: gw, Store: storage.NewMemStore()},
		session.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)
	ctrl.Rehydrate()
	require.NoError(t, ctrl.Login(context.Background(), "admin@nike.com", "password"))
	return gw
}

func TestRequirePermissionGranted(t *testing.T) {
	setupAuthenticated(t)

	require.NoError(t, requirePermission("users:view"))
	// Any one of the listed permissions is enough.
	require.NoError(t, requirePermission("invite:create", "invite:view"))
}

func TestRequirePermissionDenied(t *testing.T) {
	setupAuthenticated(t)

	err := requirePermission("org:create")
	require.Error(t, err)
	require.Equal(t, "You do not have permission to view this content", err.Error())
}

func TestCurrentOrgID(t *testing.T) {
	setupAuthenticated(t)

	require.Equal(t, "orgId1", currentOrgID())
}
