package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-app/inkwell-api/internal/domain/entity"
	"github.com/inkwell-app/inkwell-api/internal/domain/repository"
)

type SocialAccountRepository struct {
	pool *pgxpool.Pool
}

func NewSocialAccountRepository(pool *pgxpool.Pool) *SocialAccountRepository {
	return &SocialAccountRepository{pool: pool}
}

func (r *SocialAccountRepository) GetByEmailProvider(ctx context.Context, email, provider string) (*entity.SocialAccount, error) {
	a := &entity.SocialAccount{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, provider, social_id, user_id, created_at
		FROM social_accounts
		WHERE email = $1 AND provider = $2
	`, email, provider)
	if err := row.Scan(&a.ID, &a.Email, &a.Provider, &a.SocialID, &a.UserID, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *SocialAccountRepository) Create(ctx context.Context, a *entity.SocialAccount) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO social_accounts (email, provider, social_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, a.Email, a.Provider, a.SocialID, a.UserID)
	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		return mapWriteErr(err)
	}
	return nil
}

var _ repository.SocialAccountRepository = (*SocialAccountRepository)(nil)
