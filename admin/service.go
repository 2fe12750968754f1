// Package admin wraps the admin-scoped endpoints: user management, site
// listing, and verification-request review.
package admin

import (
	"context"

	"github.com/openpilgrim/go-admin-client/api"
	"github.com/openpilgrim/go-admin-client/sites"
	"github.com/openpilgrim/go-admin-client/users"
	"github.com/pkg/errors"
)

// Service exposes the /api/admin endpoints.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[admin.NewService] client is required")
	}
	return &Service{client: client}, nil
}

// Users lists user accounts with pagination and filters.
func (s *Service) Users(ctx context.Context, params UserListParams) (*UserList, error) {
	path := api.WithQuery(api.EndpointAdminUsers, params.values())
	list, err := api.Data(api.Get[UserList](ctx, s.client, path))
	return list, errors.Wrap(err, "[Service.Users]")
}

// User fetches a single user by ID.
func (s *Service) User(ctx context.Context, id string) (*users.User, error) {
	user, err := api.Data(api.Get[users.User](ctx, s.client, api.Join(api.EndpointAdminUsers, id)))
	return user, errors.Wrap(err, "[Service.User]")
}

// UpdateUser updates a user's editable fields.
func (s *Service) UpdateUser(ctx context.Context, id string, params UpdateUserParams) (*users.User, error) {
	user, err := api.Data(api.Put[users.User](ctx, s.client, api.Join(api.EndpointAdminUsers, id), params))
	return user, errors.Wrap(err, "[Service.UpdateUser]")
}

// UpdateUserStatus bans or unbans a user.
func (s *Service) UpdateUserStatus(ctx context.Context, id string, status users.StatusType) (*users.User, error) {
	path := api.Join(api.EndpointAdminUsers, id, "status")
	user, err := api.Data(api.Patch[users.User](ctx, s.client, path, statusUpdate{Status: string(status)}))
	return user, errors.Wrap(err, "[Service.UpdateUserStatus]")
}

// Sites lists sites with pagination and filters.
func (s *Service) Sites(ctx context.Context, params SiteListParams) (*SiteList, error) {
	path := api.WithQuery(api.EndpointAdminSites, params.values())
	list, err := api.Data(api.Get[SiteList](ctx, s.client, path))
	return list, errors.Wrap(err, "[Service.Sites]")
}

// Site fetches a single site by ID.
func (s *Service) Site(ctx context.Context, id string) (*sites.Site, error) {
	site, err := api.Data(api.Get[sites.Site](ctx, s.client, api.Join(api.EndpointAdminSites, id)))
	return site, errors.Wrap(err, "[Service.Site]")
}

// VerificationRequests lists pending and settled verification requests.
func (s *Service) VerificationRequests(ctx context.Context, params VerificationListParams) (*VerificationList, error) {
	path := api.WithQuery(api.EndpointAdminVerifications, params.values())
	list, err := api.Data(api.Get[VerificationList](ctx, s.client, path))
	return list, errors.Wrap(err, "[Service.VerificationRequests]")
}

// VerificationRequest fetches a single verification request by ID.
func (s *Service) VerificationRequest(ctx context.Context, id string) (*VerificationRequest, error) {
	path := api.Join(api.EndpointAdminVerifications, id)
	req, err := api.Data(api.Get[VerificationRequest](ctx, s.client, path))
	return req, errors.Wrap(err, "[Service.VerificationRequest]")
}

// UpdateVerificationStatus approves or rejects a verification request.
// note is optional reviewer feedback.
func (s *Service) UpdateVerificationStatus(ctx context.Context, id string, status VerificationStatus, note string) (*VerificationRequest, error) {
	path := api.Join(api.EndpointAdminVerifications, id, "status")
	body := verificationStatusUpdate{Status: status}
	if note != "" {
		body.Note = &note
	}
	req, err := api.Data(api.Patch[VerificationRequest](ctx, s.client, path, body))
	return req, errors.Wrap(err, "[Service.UpdateVerificationStatus]")
}
