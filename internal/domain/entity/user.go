package entity

import "time"

// Role is the authorization role stored on a user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash; it is empty for social-only accounts, which
// therefore can never authenticate with a password. RefreshToken caches the
// most recently issued refresh token (last write wins). Neither field is ever
// serialized to clients.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	UserName     string    `json:"user_name"`
	DisplayName  string    `json:"display_name"`
	Password     string    `json:"-"`
	AvatarURL    string    `json:"avatar"`
	Role         Role      `json:"role"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
