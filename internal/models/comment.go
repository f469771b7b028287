package models

import "time"

// Comment belongs to a post; a non-nil ParentID makes it a reply to
// another comment on the same post.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	Author    User      `json:"author" gorm:"foreignKey:AuthorID"`
	ParentID  *uint     `json:"parent_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=500"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

// UpdateCommentRequest is a partial patch; only fields present in the
// request are applied.
type UpdateCommentRequest struct {
	Content *string `json:"content,omitempty" validate:"omitempty,min=1,max=500"`
}

// CommentWithStats is a comment plus its aggregate reaction counts and
// the caller's own reaction state.
type CommentWithStats struct {
	Comment
	LikesCount    int64 `json:"likes_count"`
	DislikesCount int64 `json:"dislikes_count"`
	RepliesCount  int64 `json:"replies_count"`
	IsLiked       bool  `json:"is_liked"`
	IsDisliked    bool  `json:"is_disliked"`
}
