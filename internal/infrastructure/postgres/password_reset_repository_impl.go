package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-app/inkwell-api/internal/domain/entity"
	"github.com/inkwell-app/inkwell-api/internal/domain/repository"
)

type PasswordResetRepository struct {
	pool *pgxpool.Pool
}

func NewPasswordResetRepository(pool *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{pool: pool}
}

func (r *PasswordResetRepository) Create(ctx context.Context, pr *entity.PasswordReset) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO password_resets (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, pr.UserID, pr.Token, pr.ExpiresAt)
	if err := row.Scan(&pr.ID, &pr.CreatedAt); err != nil {
		return mapWriteErr(err)
	}
	return nil
}

func (r *PasswordResetRepository) GetByToken(ctx context.Context, token string) (*entity.PasswordReset, error) {
	pr := &entity.PasswordReset{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, token, expires_at, created_at
		FROM password_resets
		WHERE token = $1
	`, token)
	if err := row.Scan(&pr.ID, &pr.UserID, &pr.Token, &pr.ExpiresAt, &pr.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return pr, nil
}

func (r *PasswordResetRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM password_resets WHERE user_id = $1`, userID)
	return err
}

var _ repository.PasswordResetRepository = (*PasswordResetRepository)(nil)
