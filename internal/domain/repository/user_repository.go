package repository

import (
	"context"

	"github.com/inkwell-app/inkwell-api/internal/domain/entity"
)

// UserRepository defines persistence for users. Lookups return the full row
// including the password hash and cached refresh token; the entity's JSON
// tags keep those fields out of client responses.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdateRefreshToken(ctx context.Context, id, token string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// SocialAccountRepository persists provider links. Links are immutable once
// created; uniqueness is per (email, provider).
type SocialAccountRepository interface {
	GetByEmailProvider(ctx context.Context, email, provider string) (*entity.SocialAccount, error)
	Create(ctx context.Context, a *entity.SocialAccount) error
}

// PasswordResetRepository persists single-use reset requests.
type PasswordResetRepository interface {
	Create(ctx context.Context, r *entity.PasswordReset) error
	GetByToken(ctx context.Context, token string) (*entity.PasswordReset, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
