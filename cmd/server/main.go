package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/rentspot/rentspot-api/internal/config"
	"github.com/rentspot/rentspot-api/internal/constants"
	"github.com/rentspot/rentspot-api/internal/database"
	"github.com/rentspot/rentspot-api/internal/handlers"
	"github.com/rentspot/rentspot-api/internal/middleware"
	"github.com/rentspot/rentspot-api/internal/repository"
	"github.com/rentspot/rentspot-api/internal/services"
	"github.com/rentspot/rentspot-api/internal/storage"
	"github.com/rentspot/rentspot-api/internal/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.MigrateDatabase(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Image storage for listing galleries and avatars
	images, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	tokens := token.NewManager(cfg.JWTSecret, constants.TokenTTL)

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	imageRepo := repository.NewPropertyImageRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokens)
	propertyService := services.NewPropertyService(propertyRepo, imageRepo, favoriteRepo)
	bookingService := services.NewBookingService(bookingRepo, propertyRepo)
	userService := services.NewUserService(userRepo, propertyRepo, favoriteRepo, bookingRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	propertyHandler := handlers.NewPropertyHandler(propertyService, images)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	userHandler := handlers.NewUserHandler(userService, images)
	adminHandler := handlers.NewAdminHandler(userService)

	// Initialize Gin router
	r := gin.Default()
	r.MaxMultipartMemory = constants.MaxUploadSize

	// Serve uploaded images
	r.Static("/uploads", cfg.UploadDir)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "RentSpot API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Property routes
		properties := api.Group("/properties")
		{
			properties.GET("", propertyHandler.List)
			properties.GET("/user/me", middleware.RequireAuth(tokens), propertyHandler.ListMine)
			properties.POST("/upload", middleware.RequireAuth(tokens), middleware.LimitUploadSize(constants.MaxUploadSize), propertyHandler.Upload)
			properties.POST("/upload-multiple", middleware.RequireAuth(tokens), middleware.LimitUploadSize(constants.MaxUploadSize*constants.MaxUploadFiles), propertyHandler.UploadMultiple)
			properties.GET("/:id", propertyHandler.Get)
			properties.POST("", middleware.RequireAuth(tokens), middleware.RequireLandlord(), propertyHandler.Create)
			properties.PUT("/:id", middleware.RequireAuth(tokens), middleware.RequireLandlord(), propertyHandler.Update)
			properties.DELETE("/:id", middleware.RequireAuth(tokens), middleware.RequireLandlord(), propertyHandler.Delete)
			properties.GET("/:id/favorite", middleware.RequireAuth(tokens), propertyHandler.FavoriteStatus)
			properties.POST("/:id/favorite", middleware.RequireAuth(tokens), propertyHandler.AddFavorite)
			properties.DELETE("/:id/favorite", middleware.RequireAuth(tokens), propertyHandler.RemoveFavorite)
		}

		// Booking routes; the slot template is public, the rest is protected
		api.GET("/bookings/slots/:propertyId", bookingHandler.Slots)
		bookings := api.Group("/bookings")
		bookings.Use(middleware.RequireAuth(tokens))
		{
			bookings.GET("", bookingHandler.List)
			bookings.POST("", bookingHandler.Create)
			bookings.GET("/stats", middleware.RequireLandlord(), bookingHandler.Stats)
			bookings.GET("/property/:propertyId", middleware.RequireLandlord(), bookingHandler.ListForProperty)
			bookings.PUT("/:id", bookingHandler.UpdateStatus)
			bookings.DELETE("/:id", bookingHandler.Cancel)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(tokens))
		{
			users.GET("/profile", userHandler.Profile)
			users.PUT("/profile", userHandler.UpdateProfile)
			users.POST("/avatar", middleware.LimitUploadSize(constants.MaxUploadSize), userHandler.UploadAvatar)
			users.POST("/change-password", userHandler.ChangePassword)
			users.GET("/favorites", userHandler.Favorites)
			users.GET("/all", middleware.RequireAdmin(), adminHandler.ListUsers)
			users.GET("/:id", middleware.RequireAdmin(), adminHandler.GetUser)
			users.PUT("/:id", middleware.RequireAdmin(), adminHandler.UpdateUserRole)
			users.DELETE("/:id", middleware.RequireAdmin(), adminHandler.DeleteUser)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(tokens), middleware.RequireAdmin())
		{
			admin.GET("/stats", adminHandler.Stats)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
