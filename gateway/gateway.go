// Package gateway defines the boundary to the console's REST API: the Client
// interface the session controller depends on, and an HTTP implementation of
// it. Authorization is stateful on the client (a bearer token set once after
// login and attached to every subsequent request) to mirror how the API
// expects to be called.
package gateway

import (
	"context"

	"github.com/consolehq/go-console-client/organizations"
	"github.com/consolehq/go-console-client/profiles"
)

// LoginResult is the successful login payload.
type LoginResult struct {
	UserID        string                  `json:"userId"`
	Email         string                  `json:"email"`
	Token         string                  `json:"token"`
	Organizations []organizations.Summary `json:"organizationsList"`
}

// User is a member of the current organization.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	RoleID      string `json:"roleId"`
	CreatedDate string `json:"createdDate,omitempty"`
}

// InviteeStatus is the lifecycle state of an invitation.
type InviteeStatus string

const (
	InviteePending  InviteeStatus = "pending"
	InviteeAccepted InviteeStatus = "accepted"
)

// Invitee is a pending or accepted invitation into the current organization.
type Invitee struct {
	ID          string        `json:"id"`
	Email       string        `json:"email"`
	RoleIDs     []string      `json:"roleIds"`
	Status      InviteeStatus `json:"status"`
	CreatedDate string        `json:"createdDate,omitempty"`
}

// Client is the set of API operations the session layer consumes. All errors
// carry the server's message when one is available, or the operation's
// fallback message when not; the two are never distinguished further.
type Client interface {
	// Login exchanges credentials for a token, the user id, and the list of
	// organizations the identity belongs to.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// FetchProfile returns the identity projected into one organization.
	FetchProfile(ctx context.Context, userID, organizationID string) (*profiles.Fragment, error)

	// Logout asks the server to invalidate the current token. Best-effort;
	// callers tear down local state regardless of the outcome.
	Logout(ctx context.Context) error

	// Organization-scoped collections, refreshed after an organization switch.
	FetchUsers(ctx context.Context, organizationID string) ([]User, error)
	FetchInvitees(ctx context.Context, organizationID string) ([]Invitee, error)
	FetchRoles(ctx context.Context, organizationID string) ([]profiles.Role, error)
	FetchOrganizations(ctx context.Context, organizationID string) ([]organizations.Organization, error)

	CreateInvitee(ctx context.Context, organizationID, email, roleID string) (*Invitee, error)
	CreateOrganization(ctx context.Context, name string) (*organizations.Organization, error)

	// SetAuthorization configures the bearer token attached to subsequent
	// requests. ClearAuthorization unsets it. Both are idempotent.
	SetAuthorization(token string)
	ClearAuthorization()
}
