package repositories

import (
	"github.com/devRaxx/blogsite-api/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetTopLevelCommentsByPostID(postID uint, skip, limit int) ([]models.Comment, error)
	UpdateComment(comment *models.Comment) error
	DeleteComment(id uint) error
	GetRepliesCount(commentID uint) (int64, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by ID with its author loaded
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("Author").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetTopLevelCommentsByPostID retrieves a page of a post's comments
// whose parent_id is null; replies are counted, not embedded.
func (r *PostgresCommentRepository) GetTopLevelCommentsByPostID(postID uint, skip, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("id").Offset(skip).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateComment updates an existing comment in PostgreSQL
func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// DeleteComment deletes a comment, its whole reply subtree and every
// reaction row on any comment in that subtree, in one transaction.
func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ids := []uint{id}
		frontier := []uint{id}
		for len(frontier) > 0 {
			var next []uint
			if err := tx.Model(&models.Comment{}).Where("parent_id IN ?", frontier).Pluck("id", &next).Error; err != nil {
				return err
			}
			if len(next) == 0 {
				break
			}
			ids = append(ids, next...)
			frontier = next
		}
		if err := tx.Where("comment_id IN ?", ids).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id IN ?", ids).Delete(&models.CommentDislike{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error
	})
}

// GetRepliesCount retrieves the number of direct replies to a comment
func (r *PostgresCommentRepository) GetRepliesCount(commentID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Comment{}).Where("parent_id = ?", commentID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
