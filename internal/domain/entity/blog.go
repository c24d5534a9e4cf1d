package entity

import "time"

// Blog is a named collection of posts owned by one user.
type Blog struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Author *AuthorRef `json:"author,omitempty"`
	Posts  []*Post    `json:"posts,omitempty"`
}

// AuthorRef is the light author projection embedded in list responses.
type AuthorRef struct {
	DisplayName string `json:"display_name"`
	UserName    string `json:"user_name"`
}
