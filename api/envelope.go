package api

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Envelope is the uniform response wrapper returned by every platform
// endpoint, for both success and failure. T is the endpoint-specific
// data shape.
type Envelope[T any] struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *T           `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail carries the server-side error fields of the envelope.
type ErrorDetail struct {
	Message string `json:"message"`
	Details []any  `json:"details,omitempty"`
}

// Data unwraps a decoded envelope: it propagates transport/HTTP errors
// untouched and turns a 2xx envelope with success=false or missing data
// into an error carrying the server's message. Typed services use it so
// callers get either a populated payload or an error, never both.
func Data[T any](env *Envelope[T], err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if !env.Success || env.Data == nil {
		msg := env.Message
		if env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		if msg == "" {
			msg = "request failed"
		}
		return nil, errors.Errorf("api: %s", msg)
	}
	return env.Data, nil
}

// OK is the command-shaped variant of Data for endpoints that signal
// success without a payload.
func OK[T any](env *Envelope[T], err error) error {
	if err != nil {
		return err
	}
	if !env.Success {
		msg := env.Message
		if env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		if msg == "" {
			msg = "request failed"
		}
		return errors.Errorf("api: %s", msg)
	}
	return nil
}

// rawEnvelope decodes an envelope without committing to a data shape.
// Used for error responses, where only message/error matter.
type rawEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorDetail    `json:"error,omitempty"`
}

// httpErrorFrom builds an HTTPError out of a non-2xx response body. The
// body is best-effort decoded; a malformed envelope still yields a usable
// error carrying the status code.
func httpErrorFrom(status int, body []byte) *HTTPError {
	he := &HTTPError{Status: status}

	var env rawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return he
	}
	he.Message = env.Message
	if env.Error != nil {
		if env.Error.Message != "" {
			he.Message = env.Error.Message
		}
		he.Details = env.Error.Details
	}
	return he
}
