package entity

import "time"

// PasswordReset is the ephemeral single-use reset record. At most one live
// row exists per user: issuing a new request deletes prior ones.
type PasswordReset struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the reset token is past its expiry.
func (p *PasswordReset) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
