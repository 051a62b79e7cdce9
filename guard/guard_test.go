package guard_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/consolehq/go-console-client/gateway/gatewayfake"
	"github.com/consolehq/go-console-client/guard"
	"github.com/consolehq/go-console-client/organizations"
	"github.com/consolehq/go-console-client/profiles"
	"github.com/consolehq/go-console-client/session"
	"github.com/consolehq/go-console-client/storage"
)

func TestEvaluateWhileLoading(t *testing.T) {
	// No navigation decision before rehydration completes.
	require.Equal(t, guard.Wait, guard.Evaluate(session.Snapshot{IsLoading: true}))
	require.Equal(t, guard.Wait, guard.Evaluate(session.Snapshot{IsLoading: true, Token: "tok"}))
}

func TestEvaluateUnauthenticated(t *testing.T) {
	require.Equal(t, guard.Redirect, guard.Evaluate(session.Snapshot{}))
}

func TestEvaluateAuthenticated(t *testing.T) {
	require.Equal(t, guard.Allow, guard.Evaluate(session.Snapshot{Token: "tok"}))
}

func TestEvaluateIgnoresProfileMutations(t *testing.T) {
	// A profile swap mid organization-switch must not bounce the user back
	// through login: only identity presence matters.
	authed := session.Snapshot{Token: "tok", Profile: &profiles.Profile{OrganizationID: "orgId1"}}
	require.Equal(t, guard.Allow, guard.Evaluate(authed))

	authed.Profile = nil // profile briefly absent during a switch
	require.Equal(t, guard.Allow, guard.Evaluate(authed))
}

func TestRequire(t *testing.T) {
	gw := fakegateway.New()
	gw.AddAccount("admin@nike.com", "password", "userId1", []organizations.Summary{{ID: "orgId1", Name: "Org One"}})
	gw.AddProfile("userId1", "orgId1", &profiles.Fragment{UserID: "userId1"})

	ctrl, err := session.New(
		session.Deps{Gateway: gw, Store: storage.NewMemStore()},
		session.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)

	// Still loading: treated as not yet authenticated.
	require.ErrorIs(t, guard.Require(ctrl), session.NotAuthenticatedErr)

	ctrl.Rehydrate()
	require.ErrorIs(t, guard.Require(ctrl), session.NotAuthenticatedErr)

	require.NoError(t, ctrl.Login(context.Background(), "admin@nike.com", "password"))
	require.NoError(t, guard.Require(ctrl))

	ctrl.Logout(context.Background())
	require.ErrorIs(t, guard.Require(ctrl), session.NotAuthenticatedErr)
}
