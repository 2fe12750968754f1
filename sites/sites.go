// Package sites defines the pilgrimage site record shared by the admin
// and manager endpoints.
package sites

import "time"

// RegionType is the geographic region of a site.
type RegionType string

const (
	RegionNorth   RegionType = "north"
	RegionCentral RegionType = "central"
	RegionSouth   RegionType = "south"
)

// SiteType classifies a pilgrimage site.
type SiteType string

const (
	TypeChurch    SiteType = "church"
	TypeBasilica  SiteType = "basilica"
	TypeShrine    SiteType = "shrine"
	TypeMonastery SiteType = "monastery"
)

// OpeningHours is one day's open/close window, keyed by lowercase day
// name in Site.OpeningHours.
type OpeningHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// ContactInfo is the public contact block of a site.
type ContactInfo struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

// Creator is the embedded summary of the account that created a site.
type Creator struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Site is the wire shape of a site record. Latitude and longitude come
// back as decimal strings.
type Site struct {
	ID           string                  `json:"id"`
	Code         string                  `json:"code"`
	Name         string                  `json:"name"`
	Description  *string                 `json:"description"`
	History      *string                 `json:"history"`
	Address      string                  `json:"address"`
	Province     string                  `json:"province"`
	District     *string                 `json:"district"`
	Latitude     string                  `json:"latitude"`
	Longitude    string                  `json:"longitude"`
	Region       RegionType              `json:"region"`
	Type         SiteType                `json:"type"`
	PatronSaint  *string                 `json:"patron_saint"`
	CoverImage   *string                 `json:"cover_image"`
	OpeningHours map[string]OpeningHours `json:"opening_hours,omitempty"`
	ContactInfo  *ContactInfo            `json:"contact_info,omitempty"`
	IsActive     bool                    `json:"is_active"`
	CreatedBy    *Creator                `json:"created_by,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}
