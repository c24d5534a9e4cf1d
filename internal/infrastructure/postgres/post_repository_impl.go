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

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) List(ctx context.Context) ([]*entity.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.title, p.slug, p.content, p.featured_image, p.user_id,
		       COALESCE(p.blog_id::text, ''), p.created_at, p.updated_at,
		       u.display_name, u.user_name,
		       (SELECT count(*) FROM likes l WHERE l.post_id = p.id AND l.type = 'POST'),
		       (SELECT count(*) FROM comments c WHERE c.post_id = p.id)
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*entity.Post, 0)
	for rows.Next() {
		p := &entity.Post{Author: &entity.AuthorRef{}}
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.FeaturedImage,
			&p.UserID, &p.BlogID, &p.CreatedAt, &p.UpdatedAt,
			&p.Author.DisplayName, &p.Author.UserName,
			&p.LikeCount, &p.CommentCount); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByIDOrSlug loads one post with author, comments and counters. The
// argument may be a post id or a slug, matching either column.
func (r *PostRepository) GetByIDOrSlug(ctx context.Context, idOrSlug string) (*entity.Post, error) {
	p := &entity.Post{Author: &entity.AuthorRef{}}
	row := r.pool.QueryRow(ctx, `
		SELECT p.id, p.title, p.slug, p.content, p.featured_image, p.user_id,
		       COALESCE(p.blog_id::text, ''), p.created_at, p.updated_at,
		       u.display_name, u.user_name,
		       (SELECT count(*) FROM likes l WHERE l.post_id = p.id AND l.type = 'POST'),
		       (SELECT count(*) FROM comments c WHERE c.post_id = p.id)
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.slug = $1 OR p.id::text = $1
	`, idOrSlug)
	if err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.FeaturedImage,
		&p.UserID, &p.BlogID, &p.CreatedAt, &p.UpdatedAt,
		&p.Author.DisplayName, &p.Author.UserName,
		&p.LikeCount, &p.CommentCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	comments, err := r.ListComments(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Comments = comments
	return p, nil
}

func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	p := &entity.Post{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, slug, content, featured_image, user_id,
		       COALESCE(blog_id::text, ''), created_at, updated_at
		FROM posts WHERE slug = $1
	`, slug)
	if err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.FeaturedImage,
		&p.UserID, &p.BlogID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (title, slug, content, featured_image, user_id, blog_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Slug, p.Content, p.FeaturedImage, p.UserID, p.BlogID)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return mapWriteErr(err)
	}
	return nil
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	p.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET title = $1, slug = $2, content = $3, featured_image = $4,
		    blog_id = NULLIF($5, '')::uuid, updated_at = $6
		WHERE id = $7 AND user_id = $8
	`, p.Title, p.Slug, p.Content, p.FeaturedImage, p.BlogID, p.UpdatedAt, p.ID, p.UserID)
	if err != nil {
		return mapWriteErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	var liked bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM likes WHERE post_id = $1 AND user_id = $2 AND type = 'POST'
		)
	`, postID, userID).Scan(&liked)
	return liked, err
}

// ToggleLike flips the user's like on a post and returns the resulting state
// and count. The read-toggle-recount sequence runs inside one transaction so
// concurrent toggles on the same post never lose an update.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID string) (repository.LikeResult, error) {
	var result repository.LikeResult

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return result, err
	}
	defer tx.Rollback(ctx)

	var likeID string
	err = tx.QueryRow(ctx, `
		SELECT id FROM likes WHERE post_id = $1 AND user_id = $2 AND type = 'POST'
	`, postID, userID).Scan(&likeID)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		if _, err := tx.Exec(ctx, `
			INSERT INTO likes (post_id, user_id, type) VALUES ($1, $2, 'POST')
		`, postID, userID); err != nil {
			return result, err
		}
		result.Liked = true
	case err != nil:
		return result, err
	default:
		if _, err := tx.Exec(ctx, `DELETE FROM likes WHERE id = $1`, likeID); err != nil {
			return result, err
		}
		result.Liked = false
	}

	if err := tx.QueryRow(ctx, `
		SELECT count(*) FROM likes WHERE post_id = $1 AND type = 'POST'
	`, postID).Scan(&result.Count); err != nil {
		return result, err
	}

	if err := tx.Commit(ctx); err != nil {
		return result, err
	}
	return result, nil
}

func (r *PostRepository) ListComments(ctx context.Context, postID string) ([]*entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.content, c.user_id, c.post_id, c.created_at, c.updated_at,
		       u.display_name, u.user_name,
		       (SELECT count(*) FROM likes l WHERE l.comment_id = c.id AND l.type = 'COMMENT')
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*entity.Comment, 0)
	for rows.Next() {
		c := &entity.Comment{Author: &entity.AuthorRef{}}
		if err := rows.Scan(&c.ID, &c.Content, &c.UserID, &c.PostID,
			&c.CreatedAt, &c.UpdatedAt,
			&c.Author.DisplayName, &c.Author.UserName, &c.LikeCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostRepository) GetComment(ctx context.Context, postID, commentID string) (*entity.Comment, error) {
	c := &entity.Comment{Author: &entity.AuthorRef{}}
	row := r.pool.QueryRow(ctx, `
		SELECT c.id, c.content, c.user_id, c.post_id, c.created_at, c.updated_at,
		       u.display_name, u.user_name,
		       (SELECT count(*) FROM likes l WHERE l.comment_id = c.id AND l.type = 'COMMENT')
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1 AND c.id = $2
	`, postID, commentID)
	if err := row.Scan(&c.ID, &c.Content, &c.UserID, &c.PostID,
		&c.CreatedAt, &c.UpdatedAt,
		&c.Author.DisplayName, &c.Author.UserName, &c.LikeCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *PostRepository) FindComment(ctx context.Context, postID, userID, content string) (*entity.Comment, error) {
	c := &entity.Comment{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, content, user_id, post_id, created_at, updated_at
		FROM comments
		WHERE post_id = $1 AND user_id = $2 AND content = $3
	`, postID, userID, content)
	if err := row.Scan(&c.ID, &c.Content, &c.UserID, &c.PostID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *PostRepository) CreateComment(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (content, user_id, post_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.Content, c.UserID, c.PostID)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return mapWriteErr(err)
	}
	return nil
}

func (r *PostRepository) DeleteComment(ctx context.Context, commentID, userID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM comments WHERE id = $1 AND user_id = $2
	`, commentID, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ToggleCommentLike mirrors ToggleLike for comment likes.
func (r *PostRepository) ToggleCommentLike(ctx context.Context, commentID, userID string) (repository.LikeResult, error) {
	var result repository.LikeResult

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return result, err
	}
	defer tx.Rollback(ctx)

	var likeID string
	err = tx.QueryRow(ctx, `
		SELECT id FROM likes WHERE comment_id = $1 AND user_id = $2 AND type = 'COMMENT'
	`, commentID, userID).Scan(&likeID)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		if _, err := tx.Exec(ctx, `
			INSERT INTO likes (comment_id, user_id, type) VALUES ($1, $2, 'COMMENT')
		`, commentID, userID); err != nil {
			return result, err
		}
		result.Liked = true
	case err != nil:
		return result, err
	default:
		if _, err := tx.Exec(ctx, `DELETE FROM likes WHERE id = $1`, likeID); err != nil {
			return result, err
		}
		result.Liked = false
	}

	if err := tx.QueryRow(ctx, `
		SELECT count(*) FROM likes WHERE comment_id = $1 AND type = 'COMMENT'
	`, commentID).Scan(&result.Count); err != nil {
		return result, err
	}

	if err := tx.Commit(ctx); err != nil {
		return result, err
	}
	return result, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
