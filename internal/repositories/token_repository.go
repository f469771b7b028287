package repositories

import (
	"time"

	"github.com/devRaxx/blogsite-api/internal/models"
	"gorm.io/gorm"
)

// TokenRepository defines the interface for the token revocation list
type TokenRepository interface {
	BlacklistToken(token *models.BlacklistedToken) error
	IsBlacklisted(token string) (bool, error)
	PurgeExpired(now time.Time) (int64, error)
}

// PostgresTokenRepository implements TokenRepository for PostgreSQL
type PostgresTokenRepository struct {
	db *gorm.DB
}

// NewPostgresTokenRepository creates a new PostgresTokenRepository
func NewPostgresTokenRepository(db *gorm.DB) *PostgresTokenRepository {
	return &PostgresTokenRepository{db: db}
}

// BlacklistToken inserts a revocation record keyed by the raw token string
func (r *PostgresTokenRepository) BlacklistToken(token *models.BlacklistedToken) error {
	return r.db.Create(token).Error
}

// IsBlacklisted checks whether a raw token string has been revoked
func (r *PostgresTokenRepository) IsBlacklisted(token string) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlacklistedToken{}).Where("token = ?", token).Count(&count).Error
	return count > 0, err
}

// PurgeExpired deletes revocation records whose token has expired on
// its own; they no longer need a blacklist entry to be rejected.
func (r *PostgresTokenRepository) PurgeExpired(now time.Time) (int64, error) {
	res := r.db.Where("expires_at < ?", now).Delete(&models.BlacklistedToken{})
	return res.RowsAffected, res.Error
}
