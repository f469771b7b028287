package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/devRaxx/blogsite-api/internal/models"
	"github.com/devRaxx/blogsite-api/internal/router"
	"github.com/devRaxx/blogsite-api/internal/validators"
	"github.com/devRaxx/blogsite-api/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestApp wires the full application against an in-memory SQLite
// database.
func setupTestApp(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second pool connection would see a fresh, empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	e := echo.New()
	e.Validator = validators.NewValidator()

	cfg := &config.Config{
		JWTSecret:                "test-secret-key",
		AccessTokenExpireMinutes: 30,
	}
	router.SetupRoutes(e, db, cfg)

	return e, db
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, e *echo.Echo, username, password string) models.User {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	return user
}

func login(t *testing.T, e *echo.Echo, username, password string) string {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "bearer", resp.TokenType)
	return resp.AccessToken
}

func registerAndLogin(t *testing.T, e *echo.Echo, username, password string) (models.User, string) {
	t.Helper()
	user := register(t, e, username, password)
	return user, login(t, e, username, password)
}

func createPost(t *testing.T, e *echo.Echo, token, title, body string) models.Post {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/api/v1/posts", token, map[string]string{
		"title": title,
		"body":  body,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var post models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	return post
}
