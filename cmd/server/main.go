package main

import (
	"github.com/labstack/echo/v4"
	"github.com/readstack/backend/internal/notify"
	"github.com/readstack/backend/internal/repositories"
	"github.com/readstack/backend/internal/router"
	"github.com/readstack/backend/pkg/config"
	"github.com/readstack/backend/pkg/logging"
	"github.com/readstack/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// Initialize database connection
	db, err := config.InitDB(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.CloseDB()

	// Notification email delivery, disabled when SMTP is not configured
	mailer, err := notify.NewMailer(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize mailer")
	}
	notifier := notify.NewNotifier(repositories.NewPostgresNotificationRepository(db.Postgres), mailer)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e, logger)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, notifier, cfg.JWTSecret, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to set up routes")
	}

	// Start server
	logger.Info().Str("port", cfg.Port).Msg("starting HTTP server")
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
