package profiles

import (
	"encoding/json"
	"time"
)

// Permission is an atomic capability. Name is the stable identifier the
// console checks against (e.g. "users:view").
type Permission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Role is a named bundle of permissions.
type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// Profile is an identity projected into a single organization: the user plus
// the roles and permissions they hold there. OrganizationID always matches the
// session's current organization; the two are committed together.
type Profile struct {
	UserID           string    `json:"userId"`
	Email            string    `json:"email"`
	OrganizationID   string    `json:"organizationId"`
	OrganizationName string    `json:"organizationName"`
	Roles            []Role    `json:"roles"`
	CreatedDate      time.Time `json:"createdDate,omitempty"`
}

// PermissionNames returns the union of permission names across all roles,
// in first-seen order.
func (p *Profile) PermissionNames() []string {
	if p == nil {
		return nil
	}
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, role := range p.Roles {
		for _, perm := range role.Permissions {
			if _, ok := seen[perm.Name]; ok {
				continue
			}
			seen[perm.Name] = struct{}{}
			names = append(names, perm.Name)
		}
	}
	return names
}

// HasAnyPermission reports whether the profile holds at least one of the
// required permission names. An empty requirement grants nothing, and a nil
// profile holds nothing.
func (p *Profile) HasAnyPermission(required ...string) bool {
	if p == nil || len(required) == 0 {
		return false
	}
	held := make(map[string]struct{})
	for _, role := range p.Roles {
		for _, perm := range role.Permissions {
			held[perm.Name] = struct{}{}
		}
	}
	for _, name := range required {
		if _, ok := held[name]; ok {
			return true
		}
	}
	return false
}

// Fragment is the organization-scoped identity payload as the API returns it
// from the current-user endpoint. The API has been observed returning the role
// data in several shapes (a single "role" object, a "role" array, a "roles"
// array); decoding normalizes all of them into the canonical Roles slice so
// that nothing downstream ever branches on wire shape.
type Fragment struct {
	UserID      string
	Email       string
	Roles       []Role
	CreatedDate time.Time
}

func (f *Fragment) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string          `json:"id"`
		Email       string          `json:"email"`
		Role        json.RawMessage `json:"role"`
		Roles       json.RawMessage `json:"roles"`
		CreatedAt   string          `json:"createdAt"`
		CreatedDate string          `json:"createdDate"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	f.UserID = raw.ID
	f.Email = raw.Email

	roleData := raw.Roles
	if len(roleData) == 0 {
		roleData = raw.Role
	}
	roles, err := normalizeRoles(roleData)
	if err != nil {
		return err
	}
	f.Roles = roles

	stamp := raw.CreatedDate
	if stamp == "" {
		stamp = raw.CreatedAt
	}
	if stamp != "" {
		// A malformed timestamp is not worth failing the whole profile over.
		if t, err := time.Parse(time.RFC3339, stamp); err == nil {
			f.CreatedDate = t
		}
	}
	return nil
}

// normalizeRoles accepts either a single role object or an array of roles.
func normalizeRoles(data json.RawMessage) ([]Role, error) {
	trimmed := trimLeadingSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var roles []Role
		if err := json.Unmarshal(trimmed, &roles); err != nil {
			return nil, err
		}
		return roles, nil
	}
	var role Role
	if err := json.Unmarshal(trimmed, &role); err != nil {
		return nil, err
	}
	return []Role{role}, nil
}

func trimLeadingSpace(data []byte) []byte {
	for len(data) > 0 {
		switch data[0] {
		case ' ', '\t', '\n', '\r':
			data = data[1:]
		default:
			return data
		}
	}
	return data
}
