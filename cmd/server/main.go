package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cabgo/internal/config"
	"cabgo/internal/handlers"
	"cabgo/internal/middleware"
	"cabgo/internal/services"
	"cabgo/internal/utils"
	"cabgo/pkg/database"
	"cabgo/pkg/identity"
	"cabgo/pkg/logger"
	"cabgo/routes"

	repos "cabgo/internal/repositories/mongodb"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// External collaborators: document store and identity provider.
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	provider, err := identity.NewFirebaseProvider(context.Background(), &identity.FirebaseConfig{
		ProjectID:       cfg.Firebase.ProjectID,
		CredentialsFile: cfg.Firebase.CredentialsFile,
	})
	if err != nil {
		appLogger.Fatalf("Failed to initialize identity provider: %v", err)
	}

	// Repositories
	vehicleRepo := repos.NewVehicleRepository(db.Database)
	bookingRepo := repos.NewBookingRepository(db.Database)
	userRepo := repos.NewUserRepository(db.Database)

	// Services
	bookingService := services.NewBookingService(vehicleRepo, bookingRepo, cfg.App.Currency, appLogger)
	authService := services.NewAuthService(userRepo, provider, cfg.Security.BootstrapSecret, appLogger)

	// Role sync reactor: mirrors role writes on the users collection
	// into identity-provider claims, independent of the request path.
	userWatcher := database.NewFieldWatcher(db.Collection("users"), "role", func(err error) {
		appLogger.WithError(err).Error("Role sync handler failed")
	})
	roleSync := services.NewRoleSyncService(userWatcher, provider, appLogger)
	go func() {
		if err := roleSync.Run(context.Background()); err != nil {
			appLogger.WithError(err).Error("Role sync reactor stopped")
		}
	}()

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	bookingHandler := handlers.NewBookingHandler(bookingService, appLogger)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	// Wrong-method requests get a 405 error body instead of gin's 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		utils.MethodNotAllowedResponse(c)
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler, provider)
		routes.SetupBookingRoutes(v1, bookingHandler, provider)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		})
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.Infof("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}
