package models

import "time"

// Reactions live in one table per (target, polarity) pair. A user holds
// at most one row across the like/dislike pair for a given target; the
// reaction repositories enforce that inside a transaction.

// PostLike represents a like on a post
type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

// PostDislike represents a dislike on a post
type PostDislike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_dislike"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_dislike"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike represents a like on a comment
type CommentLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CommentID uint      `json:"comment_id" gorm:"index;uniqueIndex:idx_comment_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_comment_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentDislike represents a dislike on a comment
type CommentDislike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CommentID uint      `json:"comment_id" gorm:"index;uniqueIndex:idx_comment_user_dislike"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_comment_user_dislike"`
	CreatedAt time.Time `json:"created_at"`
}
