package manager

import (
	"net/url"
	"strconv"
	"time"

	"github.com/openpilgrim/go-admin-client/api"
	"github.com/openpilgrim/go-admin-client/sites"
	"github.com/pkg/errors"
)

// CreateSiteParams carries the fields of the site-creation form.
// Latitude and longitude are numeric here and serialized as decimal
// strings, matching the form contract.
type CreateSiteParams struct {
	Name        string
	Address     string
	Province    string
	Latitude    float64
	Longitude   float64
	Region      sites.RegionType
	Type        sites.SiteType
	Description *string
	History     *string
	District    *string
	PatronSaint *string

	OpeningHours map[string]sites.OpeningHours
	ContactInfo  *sites.ContactInfo

	CoverImage     []byte
	CoverImageName string
}

func (p CreateSiteParams) form() (*api.Form, error) {
	if p.Name == "" || p.Address == "" || p.Province == "" {
		return nil, errors.New("name, address and province are required")
	}
	if p.Region == "" || p.Type == "" {
		return nil, errors.New("region and type are required")
	}

	form := api.NewForm().
		Set("name", p.Name).
		Set("address", p.Address).
		Set("province", p.Province).
		Set("latitude", formatCoord(p.Latitude)).
		Set("longitude", formatCoord(p.Longitude)).
		Set("region", string(p.Region)).
		Set("type", string(p.Type))

	if p.Description != nil {
		form.Set("description", *p.Description)
	}
	if p.History != nil {
		form.Set("history", *p.History)
	}
	if p.District != nil {
		form.Set("district", *p.District)
	}
	if p.PatronSaint != nil {
		form.Set("patron_saint", *p.PatronSaint)
	}
	if p.OpeningHours != nil {
		if err := form.SetJSON("opening_hours", p.OpeningHours); err != nil {
			return nil, err
		}
	}
	if p.ContactInfo != nil {
		if err := form.SetJSON("contact_info", p.ContactInfo); err != nil {
			return nil, err
		}
	}
	if len(p.CoverImage) > 0 {
		form.AddFile("cover_image", p.CoverImageName, p.CoverImage)
	}
	return form, nil
}

// UpdateSiteParams carries partial site edits. Nil fields are omitted
// from the form and left untouched server-side.
type UpdateSiteParams struct {
	Name        *string
	Address     *string
	Province    *string
	District    *string
	Latitude    *float64
	Longitude   *float64
	Region      *sites.RegionType
	Type        *sites.SiteType
	Description *string
	History     *string
	PatronSaint *string

	OpeningHours map[string]sites.OpeningHours
	ContactInfo  *sites.ContactInfo

	CoverImage     []byte
	CoverImageName string
}

func (p UpdateSiteParams) form() (*api.Form, error) {
	form := api.NewForm()

	if p.Name != nil {
		form.Set("name", *p.Name)
	}
	if p.Address != nil {
		form.Set("address", *p.Address)
	}
	if p.Province != nil {
		form.Set("province", *p.Province)
	}
	if p.District != nil {
		form.Set("district", *p.District)
	}
	if p.Latitude != nil {
		form.Set("latitude", formatCoord(*p.Latitude))
	}
	if p.Longitude != nil {
		form.Set("longitude", formatCoord(*p.Longitude))
	}
	if p.Region != nil {
		form.Set("region", string(*p.Region))
	}
	if p.Type != nil {
		form.Set("type", string(*p.Type))
	}
	if p.Description != nil {
		form.Set("description", *p.Description)
	}
	if p.History != nil {
		form.Set("history", *p.History)
	}
	if p.PatronSaint != nil {
		form.Set("patron_saint", *p.PatronSaint)
	}
	if p.OpeningHours != nil {
		if err := form.SetJSON("opening_hours", p.OpeningHours); err != nil {
			return nil, err
		}
	}
	if p.ContactInfo != nil {
		if err := form.SetJSON("contact_info", p.ContactInfo); err != nil {
			return nil, err
		}
	}
	if len(p.CoverImage) > 0 {
		form.AddFile("cover_image", p.CoverImageName, p.CoverImage)
	}
	return form, nil
}

// GuideStatus is the working state of a local guide at a site.
type GuideStatus string

const (
	GuideActive   GuideStatus = "active"
	GuideInactive GuideStatus = "inactive"
)

// LocalGuide is a guide account attached to the manager's site.
type LocalGuide struct {
	ID        string      `json:"id"`
	FullName  string      `json:"full_name"`
	Email     string      `json:"email"`
	Phone     *string     `json:"phone"`
	AvatarURL *string     `json:"avatar_url"`
	Status    GuideStatus `json:"status"`
	JoinedAt  time.Time   `json:"joined_at"`
}

// LocalGuideListParams filters the guide listing.
type LocalGuideListParams struct {
	Page   int
	Limit  int
	Status GuideStatus
	Search string
}

func (p LocalGuideListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Status != "" {
		v.Set("status", string(p.Status))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	return v
}

// LocalGuideList is the payload of the guide listing. This endpoint
// names its array field `data` on the wire.
type LocalGuideList struct {
	Guides     []LocalGuide   `json:"data"`
	Pagination api.Pagination `json:"pagination"`
}

type guideStatusUpdate struct {
	Status GuideStatus `json:"status"`
}

// ShiftStatus is the review state of a shift submission.
type ShiftStatus string

const (
	ShiftPending  ShiftStatus = "pending"
	ShiftApproved ShiftStatus = "approved"
	ShiftRejected ShiftStatus = "rejected"
)

// GuideSummary is the embedded guide reference on a shift submission.
type GuideSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// ShiftSubmission is a local guide's proposed working shift, reviewed by
// the site manager. Date is a calendar date (2006-01-02); start and end
// are clock times (15:04).
type ShiftSubmission struct {
	ID         string       `json:"id"`
	Guide      GuideSummary `json:"guide"`
	Date       string       `json:"date"`
	StartTime  string       `json:"start_time"`
	EndTime    string       `json:"end_time"`
	Notes      *string      `json:"notes"`
	Status     ShiftStatus  `json:"status"`
	Note       *string      `json:"note"`
	CreatedAt  time.Time    `json:"created_at"`
	ReviewedAt *time.Time   `json:"reviewed_at"`
}

// ShiftListParams filters the shift-submission listing.
type ShiftListParams struct {
	Page   int
	Limit  int
	Status ShiftStatus
	Date   string // calendar date filter, 2006-01-02
}

func (p ShiftListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Status != "" {
		v.Set("status", string(p.Status))
	}
	if p.Date != "" {
		v.Set("date", p.Date)
	}
	return v
}

// ShiftSubmissionList is the payload of the shift listing. This endpoint
// names its array field `data` on the wire.
type ShiftSubmissionList struct {
	Submissions []ShiftSubmission `json:"data"`
	Pagination  api.Pagination    `json:"pagination"`
}

type shiftStatusUpdate struct {
	Status ShiftStatus `json:"status"`
	Note   *string     `json:"note,omitempty"`
}
