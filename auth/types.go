package auth

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginData is the payload of a successful login.
type LoginData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfileParams carries profile changes. Nil fields are left
// untouched; Avatar, when set, is uploaded as a file part.
type UpdateProfileParams struct {
	FullName    *string
	Phone       *string
	DateOfBirth *string
	Language    *string
	Avatar      []byte
	AvatarName  string
}
