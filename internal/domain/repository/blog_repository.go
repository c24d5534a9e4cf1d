package repository

import (
	"context"

	"github.com/inkwell-app/inkwell-api/internal/domain/entity"
)

// BlogRepository persists blogs. Mutations are scoped by owner: Update and
// Delete only touch rows whose user_id matches.
type BlogRepository interface {
	List(ctx context.Context) ([]*entity.Blog, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Blog, error)
	GetByID(ctx context.Context, id string) (*entity.Blog, error)
	GetByTitle(ctx context.Context, title string) (*entity.Blog, error)
	Create(ctx context.Context, b *entity.Blog) error
	Update(ctx context.Context, b *entity.Blog) error
	Delete(ctx context.Context, id, userID string) error
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Liked bool `json:"hasLiked"`
	Count int  `json:"likes"`
}

// PostRepository persists posts, comments and likes. ToggleLike and
// ToggleCommentLike run read-toggle-recount inside one database transaction
// so concurrent toggles on the same target cannot lose updates.
type PostRepository interface {
	List(ctx context.Context) ([]*entity.Post, error)
	GetByIDOrSlug(ctx context.Context, idOrSlug string) (*entity.Post, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Post, error)
	Create(ctx context.Context, p *entity.Post) error
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id, userID string) error

	HasLiked(ctx context.Context, postID, userID string) (bool, error)
	ToggleLike(ctx context.Context, postID, userID string) (LikeResult, error)

	ListComments(ctx context.Context, postID string) ([]*entity.Comment, error)
	GetComment(ctx context.Context, postID, commentID string) (*entity.Comment, error)
	FindComment(ctx context.Context, postID, userID, content string) (*entity.Comment, error)
	CreateComment(ctx context.Context, c *entity.Comment) error
	DeleteComment(ctx context.Context, commentID, userID string) error
	ToggleCommentLike(ctx context.Context, commentID, userID string) (LikeResult, error)
}
