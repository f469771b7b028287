package middleware

import (
	"net/http"
	"strings"

	"github.com/devRaxx/blogsite-api/internal/auth"
	"github.com/labstack/echo/v4"
)

// JWTAuthMiddleware checks for a valid, unrevoked bearer token and
// stores the caller's identity and the raw token in the context.
func JWTAuthMiddleware(tokens *auth.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
			}

			c.Set("userID", claims.UserID)
			c.Set("token", raw)

			return next(c)
		}
	}
}

// OptionalJWTAuthMiddleware resolves the caller's identity when a valid
// bearer token is present and otherwise lets the request through as
// anonymous. Used on public read routes.
func OptionalJWTAuthMiddleware(tokens *auth.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return next(c)
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				return next(c)
			}

			c.Set("userID", claims.UserID)
			c.Set("token", raw)

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
	}

	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	return parts[1], nil
}
