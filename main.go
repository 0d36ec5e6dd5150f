package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"photostudio-server/config"
	"photostudio-server/database"
	"photostudio-server/jobs"
	"photostudio-server/middleware"
	"photostudio-server/routes"
	"photostudio-server/services"
	"photostudio-server/store"
	ws "photostudio-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Seed reference data and the admin account
	if err := seedPackages(); err != nil {
		log.Fatal("Failed to seed packages:", err)
	}
	if err := seedAddOns(); err != nil {
		log.Fatal("Failed to seed add-ons:", err)
	}
	if err := seedAdminUser(); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	// Connect to Redis for draft persistence
	rdb, err := database.NewRedisClient(config.AppConfig.Redis.Addr)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Build the shared collaborators
	db := database.GetDB()
	catalogStore := store.New(db)
	draftService := services.NewDraftService(
		services.NewRedisDraftStore(rdb, services.DraftTTL),
		services.DraftTTL,
	)
	mailer := services.NewResendMailer(
		config.AppConfig.Mail.ResendAPIKey,
		config.AppConfig.Mail.FromAddress,
	)
	jwtService := services.NewJWTService(db)
	authenticator := services.NewGormAuthenticator(db)

	// Admin event hub
	hub := ws.NewHub()
	go hub.Run()

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security middleware stack
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.InputValidationMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.CORSMiddleware())
	middleware.StartRateLimiterCleanup()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Photo Studio Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Handlers
	authHandler := &routes.AuthHandler{Auth: authenticator, Tokens: jwtService}
	packageHandler := &routes.PackageHandler{Store: catalogStore}
	bookingHandler := &routes.BookingHandler{
		Store:  catalogStore,
		Mailer: mailer,
		Drafts: draftService,
		Hub:    hub,
	}
	draftHandler := &routes.DraftHandler{Store: catalogStore, Drafts: draftService}
	adminHandler := &routes.AdminHandler{Store: catalogStore, Hub: hub}
	photoHandler := &routes.PhotoHandler{
		Store:    catalogStore,
		Uploader: routes.CloudinaryUploader{},
		Hub:      hub,
	}
	eventsHandler := &routes.EventsHandler{Hub: hub}

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes with stricter rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		authHandler.Register(authRoutes)

		// Public catalog
		packageHandler.Register(api.Group("/packages"))

		// Booking flow (submission public, reads authenticated)
		bookingHandler.Register(api.Group("/bookings"))

		// Resumable drafts
		draftHandler.Register(api.Group("/drafts"))

		// Admin area
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware())
		adminRoutes.Use(middleware.AdminMiddleware())
		{
			adminHandler.Register(adminRoutes)
			photoHandler.Register(adminRoutes)
		}

		// Admin event feed (token passed as query parameter)
		wsRoutes := api.Group("/ws")
		wsRoutes.Use(middleware.WebSocketAuthMiddleware())
		wsRoutes.GET("/events", eventsHandler.HandleEvents)
	}

	// Start background jobs
	expirationJob := jobs.NewExpirationJob(catalogStore)
	expirationJob.Start()
	defer expirationJob.Stop()

	// Daily refresh-token cleanup
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := jwtService.CleanupExpiredTokens(); err != nil {
				log.Printf("❌ Token cleanup failed: %v", err)
			}
		}
	}()

	// Get port from environment or use default
	port := config.AppConfig.Server.Port

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
