package session

import "errors"

var (
	NotAuthenticatedErr = errors.New("not authenticated")
)

// AuthenticationError is returned when the gateway rejects a login. The
// message is the server's own (or the gateway's fallback) and is meant to be
// shown to the user verbatim.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// ProfileFetchError is returned when an organization-scoped profile fetch
// fails during an organization switch. The session is left unchanged; callers
// should surface the message as a transient notification.
type ProfileFetchError struct {
	Message string
}

func (e *ProfileFetchError) Error() string {
	return e.Message
}
