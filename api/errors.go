package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned when a request could not be recovered by
// the refresh protocol: the refresh token was missing, the refresh call
// failed, or the retried request was still unauthorized. The stored
// session has already been cleared when this error is observed.
var ErrSessionExpired = errors.New("session expired, please login again")

// ErrNoRefreshToken signals that a refresh was attempted without a stored
// refresh token. It is always wrapped inside ErrSessionExpired handling
// and mostly useful in logs.
var ErrNoRefreshToken = errors.New("no refresh token stored")

// HTTPError is a non-2xx response from the API other than a recoverable
// 401. Status and the envelope's error fields are preserved so callers can
// translate it into a user-visible message.
type HTTPError struct {
	Status  int
	Message string
	Details []any
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: http %d", e.Status)
	}
	return fmt.Sprintf("api: http %d: %s", e.Status, e.Message)
}

// TransportError is a request that never produced an HTTP response:
// connection failure, timeout, or a response body that could not be read.
// The gateway does not retry these.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AsHTTPError unwraps err as an *HTTPError if it is one.
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// IsTransport reports whether err is a network-level failure rather than
// an HTTP status error.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
