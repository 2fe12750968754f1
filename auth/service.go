// Package auth wraps the authentication endpoints: login, logout,
// profile, and password rotation. Login and logout are the only places
// that establish or discard the stored session on purpose; everything
// else is the gateway's business.
package auth

import (
	"context"
	"encoding/json"

	"github.com/openpilgrim/go-admin-client/api"
	"github.com/openpilgrim/go-admin-client/credentials"
	"github.com/openpilgrim/go-admin-client/users"
	"github.com/pkg/errors"
)

// Service exposes the /api/auth endpoints.
type Service struct {
	client *api.Client
	store  credentials.Store
}

// NewService creates the auth service. The store must be the same one
// the client was built with, so that login writes land where the gateway
// reads.
func NewService(client *api.Client, store credentials.Store) (*Service, error) {
	if client == nil {
		return nil, errors.New("[auth.NewService] client is required")
	}
	if store == nil {
		return nil, errors.New("[auth.NewService] credential store is required")
	}
	return &Service{client: client, store: store}, nil
}

// Login exchanges credentials for a token pair, persists it, and caches
// the user's profile record. The profile fetch piggybacks on the fresh
// access token; its failure does not fail the login.
func (s *Service) Login(ctx context.Context, email, password string) (*users.User, error) {
	data, err := api.Data(api.Post[LoginData](ctx, s.client, api.EndpointLogin, Credentials{
		Email:    email,
		Password: password,
	}))
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login]")
	}

	if err := s.store.SetSession(&credentials.Session{
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
	}); err != nil {
		return nil, errors.Wrap(err, "[Service.Login] persist session")
	}

	// Best effort: the session is already established, a failed profile
	// fetch just means no cached user yet.
	user, _ := s.Profile(ctx)
	return user, nil
}

// Logout invalidates the refresh token server-side, then clears the
// stored session. The server call is best effort: a dead server must
// not keep the client logged in.
func (s *Service) Logout(ctx context.Context) error {
	session, err := s.store.Session()
	if err == nil && session != nil && session.RefreshToken != "" {
		_, _ = api.Post[struct{}](ctx, s.client, api.EndpointLogout, logoutRequest{
			RefreshToken: session.RefreshToken,
		})
	}

	if _, err := s.store.Clear(); err != nil {
		return errors.Wrap(err, "[Service.Logout] clear credential store")
	}
	return nil
}

// Profile fetches the current user's profile and refreshes the cached
// user record.
func (s *Service) Profile(ctx context.Context) (*users.User, error) {
	user, err := api.Data(api.Get[users.User](ctx, s.client, api.EndpointProfile))
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Profile]")
	}

	if raw, err := json.Marshal(user); err == nil {
		_ = s.store.SetUser(raw)
	}
	return user, nil
}

// CachedUser returns the locally cached user record without a network
// round trip, or nil when none is stored.
func (s *Service) CachedUser() (*users.User, error) {
	raw, err := s.store.User()
	if err != nil {
		return nil, errors.Wrap(err, "[Service.CachedUser]")
	}
	return users.Decode(raw)
}

// UpdateProfile updates the profile via the multipart endpoint, which
// carries the optional avatar upload alongside the text fields.
func (s *Service) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*users.User, error) {
	form := api.NewForm()
	if params.FullName != nil {
		form.Set("full_name", *params.FullName)
	}
	if params.Phone != nil {
		form.Set("phone", *params.Phone)
	}
	if params.DateOfBirth != nil {
		form.Set("date_of_birth", *params.DateOfBirth)
	}
	if params.Language != nil {
		form.Set("language", *params.Language)
	}
	if len(params.Avatar) > 0 {
		form.AddFile("avatar", params.AvatarName, params.Avatar)
	}

	user, err := api.Data(api.PutForm[users.User](ctx, s.client, api.EndpointProfile, form))
	if err != nil {
		return nil, errors.Wrap(err, "[Service.UpdateProfile]")
	}

	if raw, err := json.Marshal(user); err == nil {
		_ = s.store.SetUser(raw)
	}
	return user, nil
}

// ChangePassword rotates the account password.
func (s *Service) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	err := api.OK(api.Put[struct{}](ctx, s.client, api.EndpointChangePassword, changePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}))
	return errors.Wrap(err, "[Service.ChangePassword]")
}
