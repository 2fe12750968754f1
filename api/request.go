package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// bodyEncoder produces a fresh request body for each send attempt. The
// retry after a refresh re-encodes instead of reusing a consumed reader,
// so multipart uploads resend full file contents.
type bodyEncoder func() (io.Reader, string, error)

func jsonEncoder(v any) bodyEncoder {
	return func() (io.Reader, string, error) {
		if v == nil {
			return nil, "application/json", nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, "", errors.Wrap(err, "[api] encode request body")
		}
		return bytes.NewReader(b), "application/json", nil
	}
}

// Do performs a JSON request against path and returns the raw response
// body of a 2xx response. body may be nil. The refresh/retry state
// machine is applied transparently; see roundTrip.
func (c *Client) Do(ctx context.Context, method, path string, body any) ([]byte, error) {
	return c.roundTrip(ctx, method, path, jsonEncoder(body), false)
}

// DoForm performs a multipart/form-data request. It follows the exact
// same 401/refresh/retry state machine as Do; only the body encoding
// differs.
func (c *Client) DoForm(ctx context.Context, method, path string, form *Form) ([]byte, error) {
	return c.roundTrip(ctx, method, path, form.encoder(), false)
}

// roundTrip is the single request state machine:
//
//	Initial -> Sent -> {Success, HTTPError, AwaitingRefresh -> RetrySent -> {Success, HTTPError}, LoggedOut}
//
// A 401 on a non-auth endpoint triggers the shared refresh exactly once
// per logical request (isRetry guards the bound); an unrecoverable 401
// tears the session down before returning ErrSessionExpired.
func (c *Client) roundTrip(ctx context.Context, method, path string, encode bodyEncoder, isRetry bool) ([]byte, error) {
	body, contentType, err := encode()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrapf(err, "[api] build %s %s", method, path)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.accessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Bool("retry", isRetry).
		Msg("api request")

	if resp.StatusCode == http.StatusUnauthorized && !isAuthEndpoint(path) {
		if !isRetry {
			if err := c.refresh(ctx); err == nil {
				return c.roundTrip(ctx, method, path, encode, true)
			}
		}
		c.forceLogout()
		return nil, ErrSessionExpired
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, httpErrorFrom(resp.StatusCode, data)
	}

	return data, nil
}

// accessToken reads the current access token from the credential store.
// A store error is treated as an absent token; the request then goes out
// unauthenticated and the server decides.
func (c *Client) accessToken() string {
	session, err := c.store.Session()
	if err != nil || session == nil {
		return ""
	}
	return session.AccessToken
}

func decodeEnvelope[T any](body []byte, err error) (*Envelope[T], error) {
	if err != nil {
		return nil, err
	}
	var env Envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrap(err, "[api] decode response envelope")
	}
	return &env, nil
}

// Get issues a GET request and decodes the envelope with a T data shape.
func Get[T any](ctx context.Context, c *Client, path string) (*Envelope[T], error) {
	return decodeEnvelope[T](c.Do(ctx, http.MethodGet, path, nil))
}

// Post issues a POST request with an optional JSON body.
func Post[T any](ctx context.Context, c *Client, path string, body any) (*Envelope[T], error) {
	return decodeEnvelope[T](c.Do(ctx, http.MethodPost, path, body))
}

// Put issues a PUT request with an optional JSON body.
func Put[T any](ctx context.Context, c *Client, path string, body any) (*Envelope[T], error) {
	return decodeEnvelope[T](c.Do(ctx, http.MethodPut, path, body))
}

// Patch issues a PATCH request with an optional JSON body.
func Patch[T any](ctx context.Context, c *Client, path string, body any) (*Envelope[T], error) {
	return decodeEnvelope[T](c.Do(ctx, http.MethodPatch, path, body))
}

// Delete issues a DELETE request.
func Delete[T any](ctx context.Context, c *Client, path string) (*Envelope[T], error) {
	return decodeEnvelope[T](c.Do(ctx, http.MethodDelete, path, nil))
}

// PostForm issues a multipart POST request.
func PostForm[T any](ctx context.Context, c *Client, path string, form *Form) (*Envelope[T], error) {
	return decodeEnvelope[T](c.DoForm(ctx, http.MethodPost, path, form))
}

// PutForm issues a multipart PUT request.
func PutForm[T any](ctx context.Context, c *Client, path string, form *Form) (*Envelope[T], error) {
	return decodeEnvelope[T](c.DoForm(ctx, http.MethodPut, path, form))
}
