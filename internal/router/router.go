package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/readstack/backend/internal/handlers"
	"github.com/readstack/backend/internal/middleware"
	"github.com/readstack/backend/internal/models"
	"github.com/readstack/backend/internal/notify"
	"github.com/readstack/backend/internal/repositories"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, logger zerolog.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(middleware.RequestLogger(logger))
}

// SetupRoutes migrates the schema, wires every repository and handler, and
// registers all routes under /api/v1. Public reads stay open; mutations and
// per-user surfaces sit behind JWT authentication.
func SetupRoutes(e *echo.Echo, db *gorm.DB, notifier *notify.Notifier, jwtSecret string, logger zerolog.Logger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Author{},
		&models.Book{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Notification{},
		&models.NotificationPreference{},
	)
	if err != nil {
		return err
	}
	logger.Info().Msg("auto-migrations completed for all models")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	authorRepo := repositories.NewPostgresAuthorRepository(db)
	bookRepo := repositories.NewPostgresBookRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	tagRepo := repositories.NewPostgresTagRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(userRepo, jwtSecret)
	userHandler := handlers.NewUserHandler(userRepo, followRepo)
	authorHandler := handlers.NewAuthorHandler(authorRepo)
	bookHandler := handlers.NewBookHandler(bookRepo, authorRepo)
	postHandler := handlers.NewPostHandler(postRepo, userRepo, commentRepo, likeRepo)
	tagHandler := handlers.NewTagHandler(tagRepo)
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, notifier)
	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, userRepo, notifier)
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notifier)
	feedHandler := handlers.NewFeedHandler(postRepo, followRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)

	// --- Public routes ---
	public := e.Group("/api/v1")
	authHandler.RegisterAuthRoutes(public)
	authorHandler.RegisterPublicAuthorRoutes(public)
	bookHandler.RegisterPublicBookRoutes(public)
	postHandler.RegisterPublicPostRoutes(public)
	tagHandler.RegisterPublicTagRoutes(public)
	commentHandler.RegisterPublicCommentRoutes(public)
	likeHandler.RegisterPublicLikeRoutes(public)
	followHandler.RegisterPublicFollowRoutes(public)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtSecret))
	authHandler.RegisterProtectedAuthRoutes(api)
	userHandler.RegisterUserRoutes(api)
	authorHandler.RegisterProtectedAuthorRoutes(api)
	bookHandler.RegisterProtectedBookRoutes(api)
	postHandler.RegisterProtectedPostRoutes(api)
	tagHandler.RegisterProtectedTagRoutes(api)
	commentHandler.RegisterProtectedCommentRoutes(api)
	likeHandler.RegisterProtectedLikeRoutes(api)
	followHandler.RegisterProtectedFollowRoutes(api)
	feedHandler.RegisterFeedRoutes(api)
	notificationHandler.RegisterNotificationRoutes(api)

	logger.Info().Msg("all routes configured")
	return nil
}
