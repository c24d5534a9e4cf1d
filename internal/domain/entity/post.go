package entity

import "time"

// Post is a published article. BlogID is optional; standalone posts are
// allowed. Slug is globally unique and can be used in place of the ID in
// lookups.
type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	UserID        string    `json:"user_id"`
	BlogID        string    `json:"blog_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Author       *AuthorRef `json:"author,omitempty"`
	Comments     []*Comment `json:"comments,omitempty"`
	LikeCount    int        `json:"like_count"`
	CommentCount int        `json:"comment_count"`
}

// Comment is a user comment on a post.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author    *AuthorRef `json:"author,omitempty"`
	LikeCount int        `json:"like_count"`
}

// LikeType distinguishes post likes from comment likes in the likes table.
type LikeType string

const (
	LikePost    LikeType = "POST"
	LikeComment LikeType = "COMMENT"
)

// Like records one user liking one post or comment.
type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id,omitempty"`
	CommentID string    `json:"comment_id,omitempty"`
	Type      LikeType  `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}
