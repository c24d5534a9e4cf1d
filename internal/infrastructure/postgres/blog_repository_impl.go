package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-app/inkwell-api/internal/domain/entity"
	"github.com/inkwell-app/inkwell-api/internal/domain/repository"
)

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

const blogWithAuthor = `
	SELECT b.id, b.title, b.description, b.user_id, b.created_at, b.updated_at,
	       u.display_name, u.user_name
	FROM blogs b
	JOIN users u ON u.id = b.user_id
`

func scanBlogs(rows pgx.Rows) ([]*entity.Blog, error) {
	defer rows.Close()
	out := make([]*entity.Blog, 0)
	for rows.Next() {
		b := &entity.Blog{Author: &entity.AuthorRef{}}
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.UserID,
			&b.CreatedAt, &b.UpdatedAt, &b.Author.DisplayName, &b.Author.UserName); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BlogRepository) List(ctx context.Context) ([]*entity.Blog, error) {
	rows, err := r.pool.Query(ctx, blogWithAuthor+` ORDER BY b.created_at DESC`)
	if err != nil {
		return nil, err
	}
	return scanBlogs(rows)
}

func (r *BlogRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Blog, error) {
	rows, err := r.pool.Query(ctx, blogWithAuthor+` WHERE b.user_id = $1 ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return scanBlogs(rows)
}

// GetByID loads the blog together with its posts and their authors.
func (r *BlogRepository) GetByID(ctx context.Context, id string) (*entity.Blog, error) {
	b := &entity.Blog{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, user_id, created_at, updated_at
		FROM blogs WHERE id = $1
	`, id)
	if err := row.Scan(&b.ID, &b.Title, &b.Description, &b.UserID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.title, p.slug, p.content, p.featured_image, p.user_id,
		       COALESCE(p.blog_id, ''), p.created_at, p.updated_at,
		       u.display_name, u.user_name
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.blog_id = $1
		ORDER BY p.created_at DESC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		p := &entity.Post{Author: &entity.AuthorRef{}}
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.FeaturedImage,
			&p.UserID, &p.BlogID, &p.CreatedAt, &p.UpdatedAt,
			&p.Author.DisplayName, &p.Author.UserName); err != nil {
			return nil, err
		}
		b.Posts = append(b.Posts, p)
	}
	return b, rows.Err()
}

func (r *BlogRepository) GetByTitle(ctx context.Context, title string) (*entity.Blog, error) {
	b := &entity.Blog{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, user_id, created_at, updated_at
		FROM blogs WHERE title = $1
	`, title)
	if err := row.Scan(&b.ID, &b.Title, &b.Description, &b.UserID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BlogRepository) Create(ctx context.Context, b *entity.Blog) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blogs (title, description, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, b.Title, b.Description, b.UserID)
	if err := row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return mapWriteErr(err)
	}
	return nil
}

func (r *BlogRepository) Update(ctx context.Context, b *entity.Blog) error {
	b.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE blogs SET title = $1, description = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`, b.Title, b.Description, b.UpdatedAt, b.ID, b.UserID)
	if err != nil {
		return mapWriteErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.BlogRepository = (*BlogRepository)(nil)
