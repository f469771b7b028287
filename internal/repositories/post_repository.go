package repositories

import (
	"github.com/devRaxx/blogsite-api/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPosts(skip, limit int) ([]models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
	GetCommentsCountByPostID(postID uint) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID with its author loaded
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPosts retrieves a page of posts with their authors loaded
func (r *PostgresPostRepository) GetPosts(skip, limit int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Preload("Author").Order("id").Offset(skip).Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost updates an existing post in PostgreSQL
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

// DeletePost deletes a post together with its reactions, its comments
// and their reactions, in one transaction so no orphaned rows survive.
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.CommentDislike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostDislike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// GetCommentsCountByPostID retrieves the number of comments on a post
func (r *PostgresPostRepository) GetCommentsCountByPostID(postID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
