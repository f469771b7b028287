package repositories

import (
	"github.com/devRaxx/blogsite-api/internal/models"
	"gorm.io/gorm"
)

// CommentReactionRepository defines the interface for like/dislike
// operations on comments, with the same mutual-exclusion contract as
// PostReactionRepository.
type CommentReactionRepository interface {
	Like(commentID, userID uint) error
	Dislike(commentID, userID uint) error
	GetLikesCount(commentID uint) (int64, error)
	GetDislikesCount(commentID uint) (int64, error)
	HasUserLiked(commentID, userID uint) (bool, error)
	HasUserDisliked(commentID, userID uint) (bool, error)
}

type postgresCommentReactionRepository struct {
	db *gorm.DB
}

// NewPostgresCommentReactionRepository creates a CommentReactionRepository for PostgreSQL
func NewPostgresCommentReactionRepository(db *gorm.DB) CommentReactionRepository {
	return &postgresCommentReactionRepository{db: db}
}

func (r *postgresCommentReactionRepository) Like(commentID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentDislike{}).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.CommentLike{}).Where("comment_id = ? AND user_id = ?", commentID, userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(&models.CommentLike{CommentID: commentID, UserID: userID}).Error
	})
}

func (r *postgresCommentReactionRepository) Dislike(commentID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.CommentDislike{}).Where("comment_id = ? AND user_id = ?", commentID, userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(&models.CommentDislike{CommentID: commentID, UserID: userID}).Error
	})
}

func (r *postgresCommentReactionRepository) GetLikesCount(commentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}

func (r *postgresCommentReactionRepository) GetDislikesCount(commentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommentDislike{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}

func (r *postgresCommentReactionRepository) HasUserLiked(commentID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommentLike{}).Where("comment_id = ? AND user_id = ?", commentID, userID).Count(&count).Error
	return count > 0, err
}

func (r *postgresCommentReactionRepository) HasUserDisliked(commentID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommentDislike{}).Where("comment_id = ? AND user_id = ?", commentID, userID).Count(&count).Error
	return count > 0, err
}
