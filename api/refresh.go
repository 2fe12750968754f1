package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshData struct {
	AccessToken string `json:"accessToken"`
}

// refresh exchanges the stored refresh token for a new access token. The
// operation is single-flighted: callers that observe a 401 while a
// refresh is already outstanding join it instead of starting a second
// one, and all of them see the same outcome. The in-flight entry is
// forgotten as soon as it settles, so a later 401 starts a fresh attempt.
func (c *Client) refresh(ctx context.Context) error {
	// The refresh outcome is shared by every waiter, so it must not die
	// with the first caller's context.
	_, err, shared := c.refreshGroup.Do("refresh", func() (any, error) {
		return nil, c.doRefresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		c.logger.Debug().Err(err).Bool("shared", shared).Msg("token refresh failed")
	}
	return err
}

// doRefresh issues the actual refresh call. It deliberately bypasses
// roundTrip: the refresh endpoint must never re-enter the 401 recovery
// path, and it authenticates with the refresh token in the body rather
// than a bearer header. On success only the access token in the store is
// replaced; failure leaves the store untouched (teardown is the caller's
// branch).
func (c *Client) doRefresh(ctx context.Context) error {
	session, err := c.store.Session()
	if err != nil {
		return errors.Wrap(err, "[api.doRefresh] read credential store")
	}
	if session == nil || session.RefreshToken == "" {
		return ErrNoRefreshToken
	}

	payload, err := json.Marshal(refreshRequest{RefreshToken: session.RefreshToken})
	if err != nil {
		return errors.Wrap(err, "[api.doRefresh] encode refresh request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+EndpointRefreshToken, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "[api.doRefresh] build refresh request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return httpErrorFrom(resp.StatusCode, data)
	}

	var env Envelope[refreshData]
	if err := json.Unmarshal(data, &env); err != nil {
		return errors.Wrap(err, "[api.doRefresh] decode refresh response")
	}
	if !env.Success || env.Data == nil || env.Data.AccessToken == "" {
		return errors.New("[api.doRefresh] refresh response missing access token")
	}

	if err := c.store.SetAccessToken(env.Data.AccessToken); err != nil {
		return errors.Wrap(err, "[api.doRefresh] persist access token")
	}

	c.logger.Debug().Msg("access token refreshed")
	return nil
}
