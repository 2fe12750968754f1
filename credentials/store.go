// Package credentials owns the persisted client session: access token,
// refresh token, and the cached user record. The api gateway reads and
// writes through the Store interface and never caches tokens itself.
package credentials

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Session holds the token pair issued at login. The access token is
// replaced in place on refresh; both are cleared on logout or forced
// session termination.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ExpiresAt reads the exp claim of the access token without verifying
// the signature. The client has no signing key and does not need one;
// this is a convenience for skipping requests that are certain to 401.
func (s *Session) ExpiresAt() (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, &claims); err != nil {
		return time.Time{}, errors.Wrap(err, "[Session.ExpiresAt] parse access token")
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("[Session.ExpiresAt] access token has no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}

// Expired reports whether the access token is known to be expired at
// now. An opaque or claim-less token reports false; the server remains
// the authority.
func (s *Session) Expired(now time.Time) bool {
	exp, err := s.ExpiresAt()
	if err != nil {
		return false
	}
	return !now.Before(exp)
}

// Store is the persistence contract for the three session fields. All
// methods must be safe for concurrent use; the gateway's refresh
// coordination relies on reads never observing a half-written update.
type Store interface {
	// Session returns the stored token pair, or nil when logged out.
	Session() (*Session, error)
	// SetSession replaces the token pair, typically after login.
	SetSession(session *Session) error
	// SetAccessToken replaces only the access token, the refresh path's
	// sole mutation.
	SetAccessToken(token string) error
	// User returns the cached user record, or nil when none is stored.
	User() (json.RawMessage, error)
	// SetUser replaces the cached user record.
	SetUser(user json.RawMessage) error
	// Clear atomically wipes all three fields and reports whether
	// anything was present. The report lets callers deduplicate
	// logout side effects.
	Clear() (bool, error)
}
