package router

import (
	"log"
	"time"

	"github.com/devRaxx/blogsite-api/internal/auth"
	"github.com/devRaxx/blogsite-api/internal/handlers"
	"github.com/devRaxx/blogsite-api/internal/middleware"
	"github.com/devRaxx/blogsite-api/internal/models"
	"github.com/devRaxx/blogsite-api/internal/repositories"
	"github.com/devRaxx/blogsite-api/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("Auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"message": "Welcome to Blogsite API"})
	})

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	postReactionRepo := repositories.NewPostgresPostReactionRepository(db)
	commentReactionRepo := repositories.NewPostgresCommentReactionRepository(db)
	tokenRepo := repositories.NewPostgresTokenRepository(db)

	// --- Token service and auth middleware ---
	ttl := time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute
	tokenService := auth.NewTokenService(cfg.JWTSecret, ttl, tokenRepo)
	authRequired := middleware.JWTAuthMiddleware(tokenService)
	authOptional := middleware.OptionalJWTAuthMiddleware(tokenService)

	api := e.Group("/api/v1")

	// Auth routes
	authHandler := handlers.NewAuthHandler(userRepo, tokenService)
	authHandler.RegisterAuthRoutes(api.Group("/auth"), authRequired)
	log.Println("Auth routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, postReactionRepo)
	postHandler.RegisterPostRoutes(api.Group("/posts"), authRequired, authOptional)
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, commentReactionRepo)
	commentHandler.RegisterCommentRoutes(api.Group("/comments"), authRequired)
	log.Println("Comment routes configured.")

	log.Println("All routes configured.")
}
