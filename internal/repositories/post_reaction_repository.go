package repositories

import (
	"github.com/devRaxx/blogsite-api/internal/models"
	"gorm.io/gorm"
)

// PostReactionRepository defines the interface for like/dislike
// operations on posts. A user holds at most one of {like, dislike} on a
// post: setting one removes the other. There is no explicit clear
// operation; a like is only removed by disliking, and vice versa.
type PostReactionRepository interface {
	Like(postID, userID uint) error
	Dislike(postID, userID uint) error
	GetLikesCount(postID uint) (int64, error)
	GetDislikesCount(postID uint) (int64, error)
	HasUserLiked(postID, userID uint) (bool, error)
	HasUserDisliked(postID, userID uint) (bool, error)
}

// PostgresPostReactionRepository implements PostReactionRepository for PostgreSQL
type PostgresPostReactionRepository struct {
	db *gorm.DB
}

// NewPostgresPostReactionRepository creates a new PostgresPostReactionRepository
func NewPostgresPostReactionRepository(db *gorm.DB) *PostgresPostReactionRepository {
	return &PostgresPostReactionRepository{db: db}
}

// Like removes any dislike by the user on the post and inserts a like
// if absent. Both statements run in one transaction so concurrent
// like/dislike calls from the same user cannot leave both rows behind.
// Liking twice is a no-op.
func (r *PostgresPostReactionRepository) Like(postID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostDislike{}).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.PostLike{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(&models.PostLike{PostID: postID, UserID: userID}).Error
	})
}

// Dislike is the mirror of Like.
func (r *PostgresPostReactionRepository) Dislike(postID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.PostDislike{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(&models.PostDislike{PostID: postID, UserID: userID}).Error
	})
}

// GetLikesCount retrieves the number of likes on a post
func (r *PostgresPostReactionRepository) GetLikesCount(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// GetDislikesCount retrieves the number of dislikes on a post
func (r *PostgresPostReactionRepository) GetDislikesCount(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PostDislike{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// HasUserLiked checks if a user has liked a specific post
func (r *PostgresPostReactionRepository) HasUserLiked(postID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.PostLike{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error
	return count > 0, err
}

// HasUserDisliked checks if a user has disliked a specific post
func (r *PostgresPostReactionRepository) HasUserDisliked(postID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.PostDislike{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error
	return count > 0, err
}
