package auth_test

import (
	"testing"
	"time"

	"github.com/devRaxx/blogsite-api/internal/auth"
	"github.com/devRaxx/blogsite-api/internal/models"
	"github.com/devRaxx/blogsite-api/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, secret string, ttl time.Duration) (*auth.TokenService, repositories.TokenRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.BlacklistedToken{}))

	repo := repositories.NewPostgresTokenRepository(db)
	return auth.NewTokenService(secret, ttl, repo), repo
}

func TestIssueAndValidate(t *testing.T) {
	svc, _ := newTestService(t, "test-secret-key", 30*time.Minute)

	user := &models.User{ID: 42, Username: "alice"}
	token, err := svc.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestValidate_Expired(t *testing.T) {
	svc, _ := newTestService(t, "test-secret-key", -time.Minute)

	token, err := svc.Issue(&models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	issuer, _ := newTestService(t, "one-secret", 30*time.Minute)
	verifier, _ := newTestService(t, "another-secret", 30*time.Minute)

	token, err := issuer.Issue(&models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidate_Garbage(t *testing.T) {
	svc, _ := newTestService(t, "test-secret-key", 30*time.Minute)

	_, err := svc.Validate("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRevoke_RejectsUnexpiredToken(t *testing.T) {
	svc, _ := newTestService(t, "test-secret-key", 30*time.Minute)

	token, err := svc.Issue(&models.User{ID: 7, Username: "alice"})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(token, 7))

	// Still unexpired and correctly signed, but revoked
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}

func TestRevoke_UndecodableToken(t *testing.T) {
	svc, _ := newTestService(t, "test-secret-key", 30*time.Minute)

	err := svc.Revoke("not-a-token", 1)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPurgeExpired(t *testing.T) {
	svc, repo := newTestService(t, "test-secret-key", 30*time.Minute)

	require.NoError(t, repo.BlacklistToken(&models.BlacklistedToken{
		Token:     "stale-token",
		UserID:    1,
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, repo.BlacklistToken(&models.BlacklistedToken{
		Token:     "live-token",
		UserID:    1,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	purged, err := svc.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	revoked, err := repo.IsBlacklisted("live-token")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsBlacklisted("stale-token")
	require.NoError(t, err)
	assert.False(t, revoked)
}
