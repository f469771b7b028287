package auth

import (
	"errors"
	"time"

	"github.com/devRaxx/blogsite-api/internal/models"
	"github.com/devRaxx/blogsite-api/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrInvalidToken covers a bad signature, a wrong signing method,
	// a malformed token or one past its embedded expiry.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenRevoked means the token is cryptographically valid but
	// present in the revocation list.
	ErrTokenRevoked = errors.New("token revoked")
)

// TokenService issues and validates signed session tokens and maintains
// the revocation list. Revocation is a database lookup, not part of the
// signature: every token consumption path must go through Validate.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	tokens repositories.TokenRepository
}

// NewTokenService creates a new TokenService
func NewTokenService(secret string, ttl time.Duration, tokens repositories.TokenRepository) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		tokens: tokens,
	}
}

// Issue signs a token for the user with an absolute expiry of now+ttl
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate checks signature and expiry, then the revocation list
func (s *TokenService) Validate(raw string) (*models.JwtCustomClaims, error) {
	claims, err := s.parse(raw)
	if err != nil {
		return nil, err
	}
	revoked, err := s.tokens.IsBlacklisted(raw)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Revoke decodes the token's expiry and inserts a revocation record
// keyed by the raw token string, effective immediately for subsequent
// Validate calls. A token that cannot be decoded is rejected.
func (s *TokenService) Revoke(raw string, userID uint) error {
	claims, err := s.parse(raw)
	if err != nil {
		return err
	}
	if claims.ExpiresAt == nil {
		return ErrInvalidToken
	}
	return s.tokens.BlacklistToken(&models.BlacklistedToken{
		Token:     raw,
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}

// PurgeExpired drops revocation records for tokens that have since
// expired on their own.
func (s *TokenService) PurgeExpired() (int64, error) {
	return s.tokens.PurgeExpired(time.Now())
}

func (s *TokenService) parse(raw string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
