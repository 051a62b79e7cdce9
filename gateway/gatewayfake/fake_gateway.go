// Package fakegateway provides an in-memory gateway.Client for tests.
package fakegateway

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/consolehq/go-console-client/gateway"
	"github.com/consolehq/go-console-client/organizations"
	"github.com/consolehq/go-console-client/profiles"
)

var _ gateway.Client = (*FakeGateway)(nil)

type account struct {
	userID   string
	password string
	orgs     []organizations.Summary
}

// FakeGateway implements gateway.Client against scripted in-memory data, with
// error fields for behavior injection and call recording for assertions.
type FakeGateway struct {
	lock sync.Mutex

	accounts map[string]account            // keyed by email
	profiles map[string]*profiles.Fragment // keyed by userID + "/" + orgID
	users    map[string][]gateway.User     // keyed by orgID
	invitees map[string][]gateway.Invitee  // keyed by orgID
	roles    map[string][]profiles.Role    // keyed by orgID
	orgs     []organizations.Organization  // one collection, visible from any scope

	// Behavior injection
	LoginErr    error
	ProfileErr  error
	UsersErr    error
	InviteesErr error
	RolesErr    error
	OrgsErr     error
	LogoutErr   error

	// Recorded state
	Token         string
	SetCalls      int
	ClearCalls    int
	LogoutCalls   int
	ProfileCalls  []string // orgIDs in fetch order
	RefreshedOrgs []string // orgIDs passed to collection fetches
}

func New() *FakeGateway {
	return &FakeGateway{
		accounts: make(map[string]account),
		profiles: make(map[string]*profiles.Fragment),
		users:    make(map[string][]gateway.User),
		invitees: make(map[string][]gateway.Invitee),
		roles:    make(map[string][]profiles.Role),
	}
}

// AddAccount registers a login-able identity and the organizations it sees.
func (f *FakeGateway) AddAccount(email, password, userID string, orgs []organizations.Summary) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.accounts[email] = account{userID: userID, password: password, orgs: orgs}
}

// AddProfile scripts the fragment returned for (userID, orgID).
func (f *FakeGateway) AddProfile(userID, orgID string, fragment *profiles.Fragment) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.profiles[userID+"/"+orgID] = fragment
}

// AddUsers scripts the member list for an organization.
func (f *FakeGateway) AddUsers(orgID string, users []gateway.User) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.users[orgID] = users
}

// AddRoles scripts the role list for an organization.
func (f *FakeGateway) AddRoles(orgID string, roles []profiles.Role) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.roles[orgID] = roles
}

func (f *FakeGateway) Login(ctx context.Context, email, password string) (*gateway.LoginResult, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	acct, ok := f.accounts[email]
	if !ok || acct.password != password {
		return nil, errors.New("Invalid email or password")
	}
	return &gateway.LoginResult{
		UserID:        acct.userID,
		Email:         email,
		Token:         "token-" + acct.userID,
		Organizations: acct.orgs,
	}, nil
}

func (f *FakeGateway) FetchProfile(ctx context.Context, userID, organizationID string) (*profiles.Fragment, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.ProfileCalls = append(f.ProfileCalls, organizationID)
	if f.ProfileErr != nil {
		return nil, f.ProfileErr
	}
	fragment, ok := f.profiles[userID+"/"+organizationID]
	if !ok {
		return nil, errors.New("Failed to fetch current user data")
	}
	return fragment, nil
}

func (f *FakeGateway) Logout(ctx context.Context) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *FakeGateway) FetchUsers(ctx context.Context, organizationID string) ([]gateway.User, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.RefreshedOrgs = append(f.RefreshedOrgs, organizationID)
	if f.UsersErr != nil {
		return nil, f.UsersErr
	}
	return f.users[organizationID], nil
}

func (f *FakeGateway) FetchInvitees(ctx context.Context, organizationID string) ([]gateway.Invitee, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.InviteesErr != nil {
		return nil, f.InviteesErr
	}
	return f.invitees[organizationID], nil
}

func (f *FakeGateway) FetchRoles(ctx context.Context, organizationID string) ([]profiles.Role, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.RolesErr != nil {
		return nil, f.RolesErr
	}
	return f.roles[organizationID], nil
}

func (f *FakeGateway) FetchOrganizations(ctx context.Context, organizationID string) ([]organizations.Organization, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.OrgsErr != nil {
		return nil, f.OrgsErr
	}
	out := make([]organizations.Organization, len(f.orgs))
	copy(out, f.orgs)
	return out, nil
}

func (f *FakeGateway) CreateInvitee(ctx context.Context, organizationID, email, roleID string) (*gateway.Invitee, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.InviteesErr != nil {
		return nil, f.InviteesErr
	}
	invitee := gateway.Invitee{
		ID:      uuid.New().String(),
		Email:   email,
		RoleIDs: []string{roleID},
		Status:  gateway.InviteePending,
	}
	f.invitees[organizationID] = append(f.invitees[organizationID], invitee)
	return &invitee, nil
}

func (f *FakeGateway) CreateOrganization(ctx context.Context, name string) (*organizations.Organization, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.OrgsErr != nil {
		return nil, f.OrgsErr
	}
	org := organizations.Organization{ID: uuid.New().String(), Name: name}
	f.orgs = append(f.orgs, org)
	return &org, nil
}

// Refreshed returns a copy of the organization ids whose collections were
// re-fetched. Safe to call while background refreshes are still running.
func (f *FakeGateway) Refreshed() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	out := make([]string, len(f.RefreshedOrgs))
	copy(out, f.RefreshedOrgs)
	return out
}

func (f *FakeGateway) SetAuthorization(token string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.Token = token
	f.SetCalls++
}

func (f *FakeGateway) ClearAuthorization() {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.Token = ""
	f.ClearCalls++
}
