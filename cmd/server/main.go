package main

import (
	"context"                      // context package is needed for Redis operations
	"log"                          // log package is needed for logging
	"todo_app/internal/api"        // Custom package for API handlers
	"todo_app/internal/blob"       // Custom package for blob storage
	"todo_app/internal/cache"      // Custom package for the list cache
	"todo_app/internal/config"     // Custom package for configuration
	"todo_app/internal/middleware" // Custom package for middleware
	"todo_app/internal/repository" // Custom package for data access
	"todo_app/internal/service"    // Custom package for core services

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	gormDB, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire repositories, blob store and core services
	userRepo := repository.NewGormUserRepository(gormDB)           // User store
	todoRepo := repository.NewGormTodoRepository(gormDB)           // Todo store
	blobStore := blob.NewDiskStore(cfg.BlobDir, cfg.BlobBaseURL)   // Disk-backed blob store
	listCache := cache.NewRedisCache(redisClient)                  // Redis list cache
	todoService := service.NewTodoService(todoRepo, listCache)     // Todo service
	avatarService := service.NewAvatarService(userRepo, blobStore) // Avatar service

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Page routes behind the route guard
	r.Use(middleware.RouteGuardMiddleware(cfg.JWTSecret)) // Redirects between "/" and the auth pages
	r.GET("/", api.HomePageHandler())                     // Main application view
	r.GET("/auth/sign-in", api.SignInPageHandler())       // Sign-in entry point
	r.GET("/auth/sign-up", api.SignUpPageHandler())       // Sign-up entry point
	r.Static("/assets", cfg.BlobDir)                      // Serves uploaded avatars

	// Auth routes
	r.POST("/api/auth/register", api.RegisterHandler(userRepo))          // Registration endpoint
	r.POST("/api/auth/login", api.LoginHandler(userRepo, cfg.JWTSecret)) // Login endpoint
	r.POST("/api/auth/logout", api.LogoutHandler())                      // Logout endpoint

	// Application routes (protected by JWT)
	apiGroup := r.Group("/api")
	// Protect application routes with JWT middleware
	apiGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	apiGroup.GET("/profile", api.ProfileHandler(userRepo))                    // Profile endpoint
	apiGroup.GET("/todos", api.ListTodosHandler(todoService))                 // List todos endpoint
	apiGroup.POST("/todos", api.CreateTodoHandler(todoService))               // Create todo endpoint
	apiGroup.PATCH("/todos/:id", api.UpdateTodoHandler(todoService))          // Update todo endpoint
	apiGroup.DELETE("/todos/:id", api.DeleteTodoHandler(todoService))         // Delete todo endpoint
	apiGroup.POST("/upload/avatar", api.UploadAvatarHandler(avatarService))   // Avatar upload endpoint
	apiGroup.DELETE("/upload/avatar", api.RemoveAvatarHandler(avatarService)) // Avatar removal endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
