package entity

import "time"

// SocialAccount links an external identity provider account to a User.
// At most one link exists per (email, provider) pair; links are created when
// a social login first succeeds for that provider and never mutated after.
type SocialAccount struct {
	ID        string
	Email     string
	Provider  string
	SocialID  string
	UserID    string
	CreatedAt time.Time
}
