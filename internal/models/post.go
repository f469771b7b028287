package models

import "time"

// Post is a blog post owned by its author
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	Author    User      `json:"author" gorm:"foreignKey:AuthorID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Body  string `json:"body" validate:"required,min=1"`
}

// UpdatePostRequest is a partial patch; only fields present in the
// request are applied.
type UpdatePostRequest struct {
	Title *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Body  *string `json:"body,omitempty" validate:"omitempty,min=1"`
}

// PostWithStats is a post plus its aggregate reaction counts and the
// caller's own reaction state. Counts are computed by query, never by
// walking loaded relations.
type PostWithStats struct {
	Post
	LikesCount    int64 `json:"likes_count"`
	DislikesCount int64 `json:"dislikes_count"`
	CommentsCount int64 `json:"comments_count"`
	IsLiked       bool  `json:"is_liked"`
	IsDisliked    bool  `json:"is_disliked"`
}
