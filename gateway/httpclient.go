package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/consolehq/go-console-client/organizations"
	"github.com/consolehq/go-console-client/profiles"
)

// Fallback messages used when the server does not provide one of its own.
// They match what the console surfaces for each operation.
const (
	loginFailedMsg        = "Login failed"
	fetchProfileFailedMsg = "Failed to fetch current user data"
	fetchUsersFailedMsg   = "Failed to fetch users"
	fetchInviteesMsg      = "Failed to fetch invitees"
	fetchRolesMsg         = "Failed to fetch roles"
	fetchOrgsMsg          = "Failed to fetch organizations"
	createInviteeMsg      = "Failed to create invitee"
	createOrgMsg          = "Failed to create organization"
	logoutFailedMsg       = "Logout failed"
)

const defaultTimeout = 10 * time.Second

// HTTPClient talks JSON over REST to the console API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client

	lock  sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

// HTTPClientOption configures an HTTPClient.
type HTTPClientOption func(*HTTPClient)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) HTTPClientOption {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient substitutes the underlying *http.Client entirely.
func WithHTTPClient(hc *http.Client) HTTPClientOption {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// NewHTTPClient creates a client rooted at baseURL.
func NewHTTPClient(baseURL string, options ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *HTTPClient) SetAuthorization(token string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.token = token
}

func (c *HTTPClient) ClearAuthorization() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.token = ""
}

func (c *HTTPClient) bearer() string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.token
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &result, loginFailedMsg); err != nil {
		return nil, err
	}
	if result.Email == "" {
		result.Email = email
	}
	return &result, nil
}

func (c *HTTPClient) FetchProfile(ctx context.Context, userID, organizationID string) (*profiles.Fragment, error) {
	query := url.Values{"userId": {userID}, "orgId": {organizationID}}
	var fragment profiles.Fragment
	if err := c.do(ctx, http.MethodGet, "/current-user", query, nil, &fragment, fetchProfileFailedMsg); err != nil {
		return nil, err
	}
	return &fragment, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil, nil, logoutFailedMsg)
}

func (c *HTTPClient) FetchUsers(ctx context.Context, organizationID string) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", orgQuery(organizationID), nil, &users, fetchUsersFailedMsg); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) FetchInvitees(ctx context.Context, organizationID string) ([]Invitee, error) {
	var invitees []Invitee
	if err := c.do(ctx, http.MethodGet, "/invitees", orgQuery(organizationID), nil, &invitees, fetchInviteesMsg); err != nil {
		return nil, err
	}
	return invitees, nil
}

func (c *HTTPClient) FetchRoles(ctx context.Context, organizationID string) ([]profiles.Role, error) {
	var roles []profiles.Role
	if err := c.do(ctx, http.MethodGet, "/roles", orgQuery(organizationID), nil, &roles, fetchRolesMsg); err != nil {
		return nil, err
	}
	return roles, nil
}

func (c *HTTPClient) FetchOrganizations(ctx context.Context, organizationID string) ([]organizations.Organization, error) {
	var orgs []organizations.Organization
	if err := c.do(ctx, http.MethodGet, "/organizations", orgQuery(organizationID), nil, &orgs, fetchOrgsMsg); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (c *HTTPClient) CreateInvitee(ctx context.Context, organizationID, email, roleID string) (*Invitee, error) {
	body := map[string]string{"email": email, "role": roleID}
	var invitee Invitee
	if err := c.do(ctx, http.MethodPost, "/invitees", orgQuery(organizationID), body, &invitee, createInviteeMsg); err != nil {
		return nil, err
	}
	return &invitee, nil
}

func (c *HTTPClient) CreateOrganization(ctx context.Context, name string) (*organizations.Organization, error) {
	body := map[string]string{"name": name}
	var org organizations.Organization
	if err := c.do(ctx, http.MethodPost, "/organizations", nil, body, &org, createOrgMsg); err != nil {
		return nil, err
	}
	return &org, nil
}

func orgQuery(organizationID string) url.Values {
	if organizationID == "" {
		return nil
	}
	return url.Values{"orgId": {organizationID}}
}

// do performs one request and decodes the response into out (when non-nil).
// Any failure, transport or application, collapses into a single error whose
// message is the server's if it sent one and fallback otherwise.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any, fallback string) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[HTTPClient.do] Marshal")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return errors.Wrap(err, "[HTTPClient.do] NewRequestWithContext")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.New(fallback)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.New(fallback)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.New(serverMessage(data, fallback))
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.New(fallback)
	}
	return nil
}

// serverMessage extracts a human-readable message from an error body. The API
// uses both {"message": ...} and {"error": ...} envelopes.
func serverMessage(data []byte, fallback string) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return fallback
}

// String implements fmt.Stringer for debug logging without leaking the token.
func (c *HTTPClient) String() string {
	return fmt.Sprintf("gateway.HTTPClient{baseURL: %q}", c.baseURL)
}
