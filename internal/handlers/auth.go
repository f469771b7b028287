package handlers

import (
	"net/http"

	"github.com/devRaxx/blogsite-api/internal/auth"
	"github.com/devRaxx/blogsite-api/internal/models"
	"github.com/devRaxx/blogsite-api/internal/repositories"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	tokenService   *auth.TokenService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, tokenService *auth.TokenService) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		tokenService:   tokenService,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, authRequired echo.MiddlewareFunc) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/me", h.Me, authRequired)
	g.POST("/logout", h.Logout, authRequired)
}

// Register creates a new user from a username and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Check if user with this username already exists
	if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "The user with this username already exists in the system.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username:       req.Username,
		HashedPassword: string(hashedPassword),
		IsActive:       true,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}

// Login authenticates form credentials and issues an access token.
// Unknown username and wrong password return the same message.
func (h *AuthHandler) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect username or password")
	}

	token, err := h.tokenService.Issue(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c echo.Context) error {
	userID := c.Get("userID").(uint)

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
	}

	return c.JSON(http.StatusOK, user)
}

// Logout revokes the caller's token; it stays rejected until its
// natural expiry even though the signature remains valid.
func (h *AuthHandler) Logout(c echo.Context) error {
	userID := c.Get("userID").(uint)
	raw := c.Get("token").(string)

	if err := h.tokenService.Revoke(raw, userID); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Successfully logged out"})
}
