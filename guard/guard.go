// Package guard gates access to protected views on session presence. The
// decision is a pure function of a session snapshot, so hosts (CLI commands,
// UI routers) can apply it however they navigate.
package guard

import (
	"github.com/consolehq/go-console-client/session"
)

// Decision is the guard's verdict for a protected view.
type Decision int

const (
	// Wait means the session is still rehydrating; render a neutral waiting
	// state and make no navigation decision yet.
	Wait Decision = iota
	// Redirect means there is no authenticated identity; send the user to the
	// login entry point.
	Redirect
	// Allow means the wrapped content may render.
	Allow
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case Redirect:
		return "redirect"
	case Allow:
		return "allow"
	}
	return "unknown"
}

// Evaluate decides access from a snapshot. The verdict depends only on
// identity presence, not on the profile's contents, so organization switches
// never bounce an authenticated user through the login view.
func Evaluate(s session.Snapshot) Decision {
	if s.IsLoading {
		return Wait
	}
	if !s.Authenticated() {
		return Redirect
	}
	return Allow
}

// Require is the imperative form for hosts without a render loop: it returns
// session.NotAuthenticatedErr unless the controller holds an authenticated,
// fully loaded session.
func Require(ctrl *session.Controller) error {
	if Evaluate(ctrl.Snapshot()) != Allow {
		return session.NotAuthenticatedErr
	}
	return nil
}
