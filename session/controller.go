package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/consolehq/go-console-client/gateway"
	"github.com/consolehq/go-console-client/organizations"
	"github.com/consolehq/go-console-client/profiles"
	"github.com/consolehq/go-console-client/storage"
)

// Deps holds the collaborators the Controller is built from.
type Deps struct {
	Gateway gateway.Client // API boundary
	Store   storage.Store  // durable key-value persistence
}

// Controller orchestrates login, logout, organization switches, and startup
// rehydration. It is the sole owner of the session state: the current
// organization and the current profile are only ever replaced together, so
// readers never observe one without the other.
type Controller struct {
	deps    Deps
	logger  zerolog.Logger
	nowTime func() time.Time // injectable for testing

	lock        sync.RWMutex
	state       Snapshot
	subscribers []func(Snapshot)
}

// Option modifies a Controller instance.
type Option func(*Controller)

// WithLogger replaces the default global logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(c *Controller) {
		c.nowTime = nowFunc
	}
}

// New initializes a Controller with required dependencies. The session starts
// empty and loading; call Rehydrate before making navigation decisions.
func New(deps Deps, options ...Option) (*Controller, error) {
	if deps.Gateway == nil {
		return nil, errors.New("[session.New] Gateway is required")
	}
	if deps.Store == nil {
		return nil, errors.New("[session.New] Store is required")
	}

	c := &Controller{
		deps:    deps,
		logger:  log.Logger,
		nowTime: time.Now,
		state:   Snapshot{IsLoading: true},
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Snapshot returns the current session view.
func (c *Controller) Snapshot() Snapshot {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.state
}

// Subscribe registers fn to be called synchronously after every session
// mutation. It returns an unsubscribe function.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.lock.Lock()
	c.subscribers = append(c.subscribers, fn)
	index := len(c.subscribers) - 1
	c.lock.Unlock()

	return func() {
		c.lock.Lock()
		defer c.lock.Unlock()
		c.subscribers[index] = nil
	}
}

// commit applies mutate to the session state under the lock and then notifies
// subscribers outside of it.
func (c *Controller) commit(mutate func(*Snapshot)) {
	c.lock.Lock()
	mutate(&c.state)
	snapshot := c.state
	subs := make([]func(Snapshot), len(c.subscribers))
	copy(subs, c.subscribers)
	c.lock.Unlock()

	for _, fn := range subs {
		if fn != nil {
			fn(snapshot)
		}
	}
}

// Rehydrate restores the session from persisted storage. It performs no
// network call: a persisted token re-authorizes the gateway, and a persisted
// profile repopulates the session as-is. Empty or malformed storage is a
// valid unauthenticated state, never an error. Loading completes
// unconditionally.
func (c *Controller) Rehydrate() {
	token, ok := c.deps.Store.Get(storageKeyToken)
	if ok && tokenExpired(token, c.nowTime()) {
		c.logger.Debug().Msg("persisted token expired, discarding session")
		c.removePersisted()
		token, ok = "", false
	}

	var (
		email   string
		orgs    []organizations.Summary
		profile *profiles.Profile
	)
	if ok && token != "" {
		c.deps.Gateway.SetAuthorization(token)
		email, _ = c.deps.Store.Get(storageKeyEmail)

		if raw, present := c.deps.Store.Get(storageKeyOrganizations); present {
			if err := json.Unmarshal([]byte(raw), &orgs); err != nil {
				orgs = nil
			}
		}
		if raw, present := c.deps.Store.Get(storageKeyCurrentUser); present {
			var p profiles.Profile
			if err := json.Unmarshal([]byte(raw), &p); err == nil {
				profile = &p
			}
		}
	} else {
		token = ""
	}

	c.commit(func(s *Snapshot) {
		s.Token = token
		s.Email = email
		s.Organizations = orgs
		s.Profile = profile
		s.IsLoading = false
	})
}

// Login authenticates against the gateway and populates the session. On
// rejection it returns an *AuthenticationError carrying the gateway's message
// and leaves the session untouched. A successful login with an empty
// organization list yields an authenticated session without a profile; a
// failed profile fetch for the default organization is absorbed the same way.
//
// Concurrent logins are not serialized; the later resolution wins. Callers
// are expected to disable their submit path while one is pending.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	result, err := c.deps.Gateway.Login(ctx, email, password)
	if err != nil {
		return &AuthenticationError{Message: err.Error()}
	}

	c.persist(storageKeyToken, result.Token)
	c.deps.Gateway.SetAuthorization(result.Token)
	c.persistJSON(storageKeyOrganizations, result.Organizations)
	c.persist(storageKeyEmail, result.Email)
	// The previous login's profile must not outlive it: if this login ends
	// without a profile, a later rehydration would otherwise pair the old
	// identity's profile with the new token.
	c.remove(storageKeyCurrentUser)

	c.commit(func(s *Snapshot) {
		s.Token = result.Token
		s.Email = result.Email
		s.Organizations = result.Organizations
		s.Profile = nil
	})

	if len(result.Organizations) == 0 {
		c.logger.Warn().Str("email", result.Email).Msg("login succeeded with no organizations")
		return nil
	}

	// Default organization policy: the first entry of the returned list.
	defaultOrg := result.Organizations[0]
	fragment, err := c.deps.Gateway.FetchProfile(ctx, result.UserID, defaultOrg.ID)
	if err != nil {
		c.logger.Warn().Err(err).Str("orgId", defaultOrg.ID).Msg("profile fetch failed after login")
		return nil
	}

	profile := buildProfile(fragment, result.UserID, result.Email, defaultOrg.ID, defaultOrg.Name)
	c.persistJSON(storageKeyCurrentUser, profile)
	c.commit(func(s *Snapshot) {
		s.Profile = profile
	})
	return nil
}

// SwitchOrgContext re-scopes the session to another organization. The profile
// and current-organization fields are replaced together; the token and the
// organization list are untouched. Without an active profile the call is a
// no-op. On fetch failure the session is left exactly as it was and a
// *ProfileFetchError is returned.
func (c *Controller) SwitchOrgContext(ctx context.Context, organizationID string) error {
	current := c.Snapshot()
	if current.Profile == nil {
		c.logger.Debug().Str("orgId", organizationID).Msg("ignoring organization switch without a profile")
		return nil
	}

	fragment, err := c.deps.Gateway.FetchProfile(ctx, current.Profile.UserID, organizationID)
	if err != nil {
		return &ProfileFetchError{Message: err.Error()}
	}

	// Unknown ids degrade to an empty display name rather than failing; the
	// server is the authority on membership, the held list is only a cache.
	orgName := organizations.NameByID(current.Organizations, organizationID)
	profile := buildProfile(fragment, current.Profile.UserID, current.Email, organizationID, orgName)

	c.persistJSON(storageKeyCurrentUser, profile)
	c.commit(func(s *Snapshot) {
		s.Profile = profile
	})

	c.refreshCollections(ctx, organizationID)
	return nil
}

// refreshCollections re-fetches the organization-scoped collections after a
// switch. Fire-and-forget: results are discarded, failures are logged and
// never roll back the switch.
func (c *Controller) refreshCollections(ctx context.Context, organizationID string) {
	detached := context.WithoutCancel(ctx)
	go func() {
		if _, err := c.deps.Gateway.FetchUsers(detached, organizationID); err != nil {
			c.logger.Warn().Err(err).Str("orgId", organizationID).Msg("user list refresh failed")
		}
		if _, err := c.deps.Gateway.FetchInvitees(detached, organizationID); err != nil {
			c.logger.Warn().Err(err).Str("orgId", organizationID).Msg("invitee list refresh failed")
		}
		if _, err := c.deps.Gateway.FetchRoles(detached, organizationID); err != nil {
			c.logger.Warn().Err(err).Str("orgId", organizationID).Msg("role list refresh failed")
		}
		if _, err := c.deps.Gateway.FetchOrganizations(detached, organizationID); err != nil {
			c.logger.Warn().Err(err).Str("orgId", organizationID).Msg("organization list refresh failed")
		}
	}()
}

// Logout tears down the session: server-side token revocation is attempted
// best-effort, then local state and persisted storage are cleared
// unconditionally. It always succeeds.
func (c *Controller) Logout(ctx context.Context) {
	if c.Snapshot().Token != "" {
		if err := c.deps.Gateway.Logout(ctx); err != nil {
			c.logger.Warn().Err(err).Msg("server-side logout failed, clearing local session anyway")
		}
	}

	c.deps.Gateway.ClearAuthorization()
	c.removePersisted()
	c.commit(func(s *Snapshot) {
		s.Token = ""
		s.Email = ""
		s.Organizations = nil
		s.Profile = nil
	})
}

func (c *Controller) persist(key, value string) {
	if err := c.deps.Store.Set(key, value); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to persist session field")
	}
}

func (c *Controller) persistJSON(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to encode session field")
		return
	}
	c.persist(key, string(data))
}

func (c *Controller) remove(key string) {
	if err := c.deps.Store.Remove(key); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to remove persisted session field")
	}
}

func (c *Controller) removePersisted() {
	for _, key := range []string{storageKeyToken, storageKeyCurrentUser, storageKeyOrganizations, storageKeyEmail} {
		c.remove(key)
	}
}

// buildProfile merges a fetched fragment with the session-held identity and
// organization fields into one canonical profile.
func buildProfile(fragment *profiles.Fragment, userID, email, orgID, orgName string) *profiles.Profile {
	p := &profiles.Profile{
		UserID:           fragment.UserID,
		Email:            fragment.Email,
		OrganizationID:   orgID,
		OrganizationName: orgName,
		Roles:            fragment.Roles,
		CreatedDate:      fragment.CreatedDate,
	}
	if p.UserID == "" {
		p.UserID = userID
	}
	if email != "" {
		p.Email = email
	}
	return p
}

// tokenExpired best-effort decodes token as an unverified JWT and reports
// whether its expiry has passed. Opaque tokens (anything that does not parse
// as a JWT, or a JWT without an exp claim) never read as expired; validity is
// the server's call.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
