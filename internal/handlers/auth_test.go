package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/devRaxx/blogsite-api/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	e, _ := setupTestApp(t)

	user := register(t, e, "alice", "pw123456")
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsSuperuser)
}

func TestRegister_NeverExposesPasswordHash(t *testing.T) {
	e, _ := setupTestApp(t)

	rec := doJSON(t, e, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "alice",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "pw123456")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	e, _ := setupTestApp(t)

	register(t, e, "alice", "pw123456")

	rec := doJSON(t, e, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "alice",
		"password": "otherpassword",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_Validation(t *testing.T) {
	e, _ := setupTestApp(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing username", map[string]string{"password": "pw123456"}},
		{"missing password", map[string]string{"username": "alice"}},
		{"short password", map[string]string{"username": "alice", "password": "short"}},
		{"short username", map[string]string{"username": "al", "password": "pw123456"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, e, http.MethodPost, "/api/v1/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	e, _ := setupTestApp(t)

	register(t, e, "alice", "pw123456")

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "nobody", "pw123456"},
		{"wrong password", "alice", "wrongpassword"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			form.Set("username", tt.username)
			form.Set("password", tt.password)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			// Failure reason must not be distinguishable
			assert.Contains(t, rec.Body.String(), "Incorrect username or password")
		})
	}
}

func TestAuthMe(t *testing.T) {
	e, _ := setupTestApp(t)

	user, token := registerAndLogin(t, e, "alice", "pw123456")

	rec := doJSON(t, e, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, user.ID, me.ID)
	assert.Equal(t, "alice", me.Username)
}

func TestAuthMe_RequiresToken(t *testing.T) {
	e, _ := setupTestApp(t)

	rec := doJSON(t, e, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/v1/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_RevokesToken(t *testing.T) {
	e, _ := setupTestApp(t)

	_, token := registerAndLogin(t, e, "alice", "pw123456")

	rec := doJSON(t, e, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Successfully logged out")

	// The unexpired token must now fail validation on every route
	rec = doJSON(t, e, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/v1/posts", token, map[string]string{
		"title": "Hi", "body": "First",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
