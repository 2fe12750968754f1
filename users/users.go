// Package users defines the platform user record shared by the auth
// profile and admin endpoints.
package users

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// RoleType represents a user's platform role.
type RoleType string

const (
	RoleAdmin      RoleType = "admin"       // Can manage all users and sites
	RoleManager    RoleType = "manager"     // Runs a single pilgrimage site
	RolePilgrim    RoleType = "pilgrim"     // Regular visitor account
	RoleLocalGuide RoleType = "local_guide" // Works shifts at a manager's site
)

// StatusType is the moderation state of a user account.
type StatusType string

const (
	StatusActive StatusType = "active"
	StatusBanned StatusType = "banned"
)

// User is the wire shape of a user record. Nullable columns come back as
// JSON null and are carried as pointers.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Phone       *string    `json:"phone"`
	DateOfBirth *string    `json:"date_of_birth"`
	Role        RoleType   `json:"role"`
	Status      StatusType `json:"status"`
	SiteID      *string    `json:"site_id"`
	VerifiedAt  *time.Time `json:"verified_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	AvatarURL   *string    `json:"avatar_url"`
	Language    string     `json:"language"`
}

// Banned reports whether the account is currently banned.
func (u *User) Banned() bool {
	return u.Status == StatusBanned
}

// Decode parses a cached user record as persisted by the credential
// store. A nil/empty record decodes to nil without error.
func Decode(raw json.RawMessage) (*User, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, errors.Wrap(err, "[users.Decode] decode cached user")
	}
	return &u, nil
}
