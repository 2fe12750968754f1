package admin

import (
	"net/url"
	"strconv"
	"time"

	"github.com/openpilgrim/go-admin-client/api"
	"github.com/openpilgrim/go-admin-client/sites"
	"github.com/openpilgrim/go-admin-client/users"
)

// UserListParams filters the user listing. Zero values are omitted from
// the query string.
type UserListParams struct {
	Page   int
	Limit  int
	Role   users.RoleType
	Status users.StatusType
	Search string
}

func (p UserListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Role != "" {
		v.Set("role", string(p.Role))
	}
	if p.Status != "" {
		v.Set("status", string(p.Status))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	return v
}

// UserList is the payload of the user listing. The array field is named
// `users` on the wire.
type UserList struct {
	Users      []users.User   `json:"users"`
	Pagination api.Pagination `json:"pagination"`
}

// UpdateUserParams carries admin edits to a user record. Nil fields are
// omitted and left untouched server-side.
type UpdateUserParams struct {
	FullName    *string         `json:"full_name,omitempty"`
	Phone       *string         `json:"phone,omitempty"`
	DateOfBirth *string         `json:"date_of_birth,omitempty"`
	Role        *users.RoleType `json:"role,omitempty"`
	SiteID      *string         `json:"site_id,omitempty"`
	Language    *string         `json:"language,omitempty"`
}

type statusUpdate struct {
	Status string `json:"status"`
}

// SiteListParams filters the site listing.
type SiteListParams struct {
	Page     int
	Limit    int
	Region   sites.RegionType
	Type     sites.SiteType
	IsActive *bool
	Search   string
}

func (p SiteListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Region != "" {
		v.Set("region", string(p.Region))
	}
	if p.Type != "" {
		v.Set("type", string(p.Type))
	}
	if p.IsActive != nil {
		v.Set("is_active", strconv.FormatBool(*p.IsActive))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	return v
}

// SiteList is the payload of the site listing. The array field is named
// `sites` on the wire.
type SiteList struct {
	Sites      []sites.Site   `json:"sites"`
	Pagination api.Pagination `json:"pagination"`
}

// VerificationStatus is the review state of a verification request.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Requester is the embedded summary of the pilgrim who filed a request.
type Requester struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// VerificationRequest is a pilgrim's site-visit verification submission
// awaiting admin review.
type VerificationRequest struct {
	ID         string             `json:"id"`
	User       Requester          `json:"user"`
	SiteID     string             `json:"site_id"`
	SiteName   string             `json:"site_name"`
	Status     VerificationStatus `json:"status"`
	Note       *string            `json:"note"`
	Documents  []string           `json:"documents,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	ReviewedAt *time.Time         `json:"reviewed_at"`
}

// VerificationListParams filters the verification-request listing.
type VerificationListParams struct {
	Page   int
	Limit  int
	Status VerificationStatus
}

func (p VerificationListParams) values() url.Values {
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
	return v
}

// VerificationList is the payload of the verification listing. The array
// field is named `requests` on the wire.
type VerificationList struct {
	Requests   []VerificationRequest `json:"requests"`
	Pagination api.Pagination        `json:"pagination"`
}

type verificationStatusUpdate struct {
	Status VerificationStatus `json:"status"`
	Note   *string            `json:"note,omitempty"`
}
