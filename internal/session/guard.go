// Package session holds the client-side gating rules for protected views.
// The guard is advisory: it prevents rendering a protected view before any
// request is made, but the server-side token verifier remains the sole
// authority on whether a request is allowed.
package session

import (
	"errors"

	"github.com/Anoop2208prakash/LMS/internal/model"
)

// Decision tells a client what to do before rendering a protected view.
type Decision int

const (
	// Allow renders the protected view.
	Allow Decision = iota
	// RedirectToLogin navigates to the login view instead.
	RedirectToLogin
)

// Gate is a pure predicate over local token presence. It takes an explicit
// boolean rather than reading any storage so it works against whatever
// storage abstraction the client platform provides.
func Gate(tokenPresent bool) Decision {
	if tokenPresent {
		return Allow
	}
	return RedirectToLogin
}

// ShouldClearToken reports whether an identity-lookup failure means the
// locally stored token is no longer usable and must be discarded, forcing
// re-navigation to login.
func ShouldClearToken(err error) bool {
	return errors.Is(err, model.ErrTokenMissing) ||
		errors.Is(err, model.ErrTokenMalformed) ||
		errors.Is(err, model.ErrTokenSignature) ||
		errors.Is(err, model.ErrTokenExpired) ||
		errors.Is(err, model.ErrUnauthorized)
}
