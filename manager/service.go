// Package manager wraps the manager-scoped endpoints: the manager's own
// site (a manager has at most one), local guides, and their shift
// submissions.
package manager

import (
	"context"
	"strconv"

	"github.com/openpilgrim/go-admin-client/api"
	"github.com/openpilgrim/go-admin-client/sites"
	"github.com/pkg/errors"
)

// Service exposes the /api/manager endpoints.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[manager.NewService] client is required")
	}
	return &Service{client: client}, nil
}

// MySite fetches the manager's site.
func (s *Service) MySite(ctx context.Context) (*sites.Site, error) {
	site, err := api.Data(api.Get[sites.Site](ctx, s.client, api.EndpointManagerSites))
	return site, errors.Wrap(err, "[Service.MySite]")
}

// CreateSite creates the manager's site. The endpoint is multipart so
// the cover image can travel with the text fields.
func (s *Service) CreateSite(ctx context.Context, params CreateSiteParams) (*sites.Site, error) {
	form, err := params.form()
	if err != nil {
		return nil, errors.Wrap(err, "[Service.CreateSite]")
	}
	site, err := api.Data(api.PostForm[sites.Site](ctx, s.client, api.EndpointManagerSites, form))
	return site, errors.Wrap(err, "[Service.CreateSite]")
}

// UpdateSite updates the manager's site. Only set fields are sent.
func (s *Service) UpdateSite(ctx context.Context, params UpdateSiteParams) (*sites.Site, error) {
	form, err := params.form()
	if err != nil {
		return nil, errors.Wrap(err, "[Service.UpdateSite]")
	}
	site, err := api.Data(api.PutForm[sites.Site](ctx, s.client, api.EndpointManagerSites, form))
	return site, errors.Wrap(err, "[Service.UpdateSite]")
}

// LocalGuides lists the guides attached to the manager's site.
func (s *Service) LocalGuides(ctx context.Context, params LocalGuideListParams) (*LocalGuideList, error) {
	path := api.WithQuery(api.EndpointManagerLocalGuides, params.values())
	list, err := api.Data(api.Get[LocalGuideList](ctx, s.client, path))
	return list, errors.Wrap(err, "[Service.LocalGuides]")
}

// UpdateLocalGuideStatus activates or deactivates a guide.
func (s *Service) UpdateLocalGuideStatus(ctx context.Context, id string, status GuideStatus) (*LocalGuide, error) {
	path := api.Join(api.EndpointManagerLocalGuides, id, "status")
	guide, err := api.Data(api.Patch[LocalGuide](ctx, s.client, path, guideStatusUpdate{Status: status}))
	return guide, errors.Wrap(err, "[Service.UpdateLocalGuideStatus]")
}

// ShiftSubmissions lists shift submissions from the site's guides.
func (s *Service) ShiftSubmissions(ctx context.Context, params ShiftListParams) (*ShiftSubmissionList, error) {
	path := api.WithQuery(api.EndpointManagerShiftSubs, params.values())
	list, err := api.Data(api.Get[ShiftSubmissionList](ctx, s.client, path))
	return list, errors.Wrap(err, "[Service.ShiftSubmissions]")
}

// ShiftSubmission fetches a single shift submission by ID.
func (s *Service) ShiftSubmission(ctx context.Context, id string) (*ShiftSubmission, error) {
	path := api.Join(api.EndpointManagerShiftSubs, id)
	sub, err := api.Data(api.Get[ShiftSubmission](ctx, s.client, path))
	return sub, errors.Wrap(err, "[Service.ShiftSubmission]")
}

// UpdateShiftSubmissionStatus approves or rejects a shift submission.
// note is optional reviewer feedback.
func (s *Service) UpdateShiftSubmissionStatus(ctx context.Context, id string, status ShiftStatus, note string) (*ShiftSubmission, error) {
	path := api.Join(api.EndpointManagerShiftSubs, id, "status")
	body := shiftStatusUpdate{Status: status}
	if note != "" {
		body.Note = &note
	}
	sub, err := api.Data(api.Patch[ShiftSubmission](ctx, s.client, path, body))
	return sub, errors.Wrap(err, "[Service.UpdateShiftSubmissionStatus]")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
