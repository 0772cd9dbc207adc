package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopsight/backend/internal/application/catalog"
	eventapp "github.com/shopsight/backend/internal/application/event"
	insightsapp "github.com/shopsight/backend/internal/application/insights"
	paymentsapp "github.com/shopsight/backend/internal/application/payments"
	profileapp "github.com/shopsight/backend/internal/application/profile"
	reviewapp "github.com/shopsight/backend/internal/application/review"
	"github.com/shopsight/backend/internal/infrastructure/auth"
	"github.com/shopsight/backend/internal/infrastructure/cache"
	"github.com/shopsight/backend/internal/infrastructure/config"
	"github.com/shopsight/backend/internal/infrastructure/event"
	"github.com/shopsight/backend/internal/infrastructure/logger"
	"github.com/shopsight/backend/internal/infrastructure/persistence"
	"github.com/shopsight/backend/internal/infrastructure/sentiment"
	"github.com/shopsight/backend/internal/infrastructure/storage"
	"github.com/shopsight/backend/internal/interfaces/http/handler"
	"github.com/shopsight/backend/internal/interfaces/http/middleware"
	"github.com/shopsight/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/shopsight/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			ShopSight Backend API
//	@version		1.0
//	@description	E-commerce catalog, reviews, and insight aggregation API

//	@contact.name	API Support
//	@contact.url	https://github.com/shopsight/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ShopSight Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	insightsRepo := persistence.NewGormInsightsRepository(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Initialize event serializer and register all event types
	eventSerializer := event.NewEventSerializer()
	event.RegisterAllEvents(eventSerializer)

	// Create outbox publisher for transactional event saving
	outboxPublisher := event.NewOutboxPublisher(eventSerializer)

	// Inject outbox publisher into repositories so domain events are persisted
	// in the same transaction as the aggregate
	productRepo.SetOutboxEventSaver(outboxPublisher)
	reviewRepo.SetOutboxEventSaver(outboxPublisher)
	profileRepo.SetOutboxEventSaver(outboxPublisher)
	paymentRepo.SetOutboxEventSaver(outboxPublisher)

	// Object storage for product images and avatars
	var objectStorage catalogapp.ObjectStorageService
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage initialized",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("endpoint", cfg.Storage.Endpoint),
		)
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("No storage bucket configured, using stub object storage")
	}

	// Sentiment analyzer backend
	var analyzer insightsapp.Analyzer
	switch cfg.Sentiment.Provider {
	case "comprehend":
		comprehendAnalyzer, err := sentiment.NewComprehendAnalyzer(&cfg.Sentiment, sentiment.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize Comprehend analyzer", zap.Error(err))
		}
		analyzer = comprehendAnalyzer
		log.Info("Sentiment analyzer initialized", zap.String("provider", "comprehend"))
	default:
		analyzer = sentiment.NewLexiconAnalyzer()
		log.Info("Sentiment analyzer initialized", zap.String("provider", "lexicon"))
	}

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo, objectStorage, log)
	reviewService := reviewapp.NewReviewService(reviewRepo, productRepo)
	profileService := profileapp.NewProfileService(profileRepo, objectStorage, log)
	paymentService := paymentsapp.NewPaymentService(paymentRepo)
	insightsService := insightsapp.NewInsightsService(insightsRepo, outboxRepo)
	outboxService := eventapp.NewOutboxService(outboxRepo, log)
	webhookService := paymentsapp.NewStripeWebhookService(paymentsapp.StripeWebhookServiceConfig{
		WebhookSecret: cfg.Stripe.WebhookSecret,
		PaymentRepo:   paymentRepo,
		Logger:        log,
	})

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Idempotency store for event handlers (Redis with in-memory fallback)
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	// Register aggregation handlers, each wrapped for exactly-once processing
	sentimentHandler := insightsapp.NewSentimentHandler(reviewRepo, insightsRepo, analyzer, log)
	generalAggregatesHandler := insightsapp.NewGeneralAggregatesHandler(insightsRepo, log)
	statusCountsHandler := insightsapp.NewStatusCountsHandler(insightsRepo, log)

	// The handlers' subscriptions overlap (review events feed both the
	// sentiment and general aggregates, product events feed both the
	// general and status aggregates), so each wrapper gets its own
	// dedupe scope in the shared store.
	eventBus.Subscribe(event.NewIdempotentHandler(sentimentHandler, idempotencyStore, log,
		event.WithIdempotencyScope("sentiment")))
	eventBus.Subscribe(event.NewIdempotentHandler(generalAggregatesHandler, idempotencyStore, log,
		event.WithIdempotencyScope("general-aggregates")))
	eventBus.Subscribe(event.NewIdempotentHandler(statusCountsHandler, idempotencyStore, log,
		event.WithIdempotencyScope("status-counts")))

	log.Info("Event handlers registered",
		zap.Strings("sentiment_events", sentimentHandler.EventTypes()),
		zap.Strings("general_aggregate_events", generalAggregatesHandler.EventTypes()),
		zap.Strings("status_count_events", statusCountsHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Outbox processor reads pending entries and publishes them to the event bus
	if cfg.Event.ProcessorEnabled {
		outboxProcessorConfig := event.DefaultOutboxProcessorConfig()
		if cfg.Event.BatchSize > 0 {
			outboxProcessorConfig.BatchSize = cfg.Event.BatchSize
		}
		if cfg.Event.PollInterval > 0 {
			outboxProcessorConfig.PollInterval = cfg.Event.PollInterval
		}
		outboxProcessorConfig.CleanupEnabled = cfg.Event.CleanupEnabled
		if cfg.Event.CleanupRetention > 0 {
			outboxProcessorConfig.CleanupRetention = cfg.Event.CleanupRetention
		}

		outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, outboxProcessorConfig, log)
		if err := outboxProcessor.Start(context.Background()); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
		defer func() {
			if err := outboxProcessor.Stop(context.Background()); err != nil {
				log.Error("Error stopping outbox processor", zap.Error(err))
			}
		}()
		log.Info("Outbox processor started",
			zap.Int("batch_size", outboxProcessorConfig.BatchSize),
			zap.Duration("poll_interval", outboxProcessorConfig.PollInterval),
		)
	}

	// Token validation against the external identity provider
	jwtValidator := auth.NewJWTValidator(cfg.JWT)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, reviewService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	profileHandler := handler.NewProfileHandler(profileService)
	insightsHandler := handler.NewInsightsHandler(insightsService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	webhookHandler := handler.NewStripeWebhookHandler(webhookService)
	outboxHandler := handler.NewOutboxHandler(outboxService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Swagger documentation endpoint, gated by config
	swaggerConfig := middleware.SwaggerConfig{
		Enabled:     cfg.Swagger.Enabled,
		RequireAuth: cfg.Swagger.RequireAuth,
		AllowedIPs:  cfg.Swagger.AllowedIPs,
	}
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(swaggerConfig, middleware.JWTAuthMiddleware(jwtValidator)),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// Stripe webhook endpoint (no authentication; verified by signature)
	engine.POST("/api/v1/payments/webhook/stripe", webhookHandler.HandleStripeWebhook)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.JWTMiddlewareConfig{
		Validator: jwtValidator,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
			"/api/v1/payments/webhook/stripe",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Catalog domain (products and their reviews)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/stats", productHandler.CountByStatus)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.GET("/products/sku/:sku", productHandler.GetBySKU)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.DELETE("/products/:id", productHandler.Delete)
	catalogRoutes.POST("/products/:id/publish", productHandler.Publish)
	catalogRoutes.POST("/products/:id/archive", productHandler.Archive)
	catalogRoutes.POST("/products/:id/image/upload", productHandler.RequestImageUpload)
	catalogRoutes.POST("/products/:id/image/confirm", productHandler.ConfirmImageUpload)
	catalogRoutes.GET("/products/:id/reviews", productHandler.ListReviews)

	// Review domain
	reviewRoutes := router.NewDomainGroup("reviews", "/reviews")
	reviewRoutes.POST("", reviewHandler.Create)
	reviewRoutes.GET("/mine", reviewHandler.ListOwn)
	reviewRoutes.GET("/:id", reviewHandler.GetByID)
	reviewRoutes.PUT("/:id", reviewHandler.Update)
	reviewRoutes.DELETE("/:id", reviewHandler.Delete)

	// Profile domain
	profileRoutes := router.NewDomainGroup("profiles", "/profiles")
	profileRoutes.POST("", profileHandler.Create)
	profileRoutes.GET("", middleware.RequireAdmin(), profileHandler.List)
	profileRoutes.GET("/me", profileHandler.GetOwn)
	profileRoutes.PUT("/me", profileHandler.Update)
	profileRoutes.POST("/me/avatar/upload", profileHandler.RequestAvatarUpload)
	profileRoutes.POST("/me/avatar/confirm", profileHandler.ConfirmAvatarUpload)
	profileRoutes.GET("/:id", profileHandler.GetByID)
	profileRoutes.DELETE("/:id", profileHandler.Delete)

	// Insights domain (event-maintained aggregates)
	insightsRoutes := router.NewDomainGroup("insights", "/insights")
	insightsRoutes.GET("/sentiment", insightsHandler.GetSentimentCounts)
	insightsRoutes.GET("/aggregates", insightsHandler.GetGeneralAggregates)
	insightsRoutes.GET("/product-status", insightsHandler.GetStatusCounts)
	insightsRoutes.GET("/outbox/stats", middleware.RequireAdmin(), insightsHandler.GetOutboxStats)

	// Payment records (written by the Stripe webhook, read by admins)
	paymentRoutes := router.NewDomainGroup("payments", "/payments")
	paymentRoutes.Use(middleware.RequireAdmin())
	paymentRoutes.GET("", paymentHandler.List)
	paymentRoutes.GET("/:id", paymentHandler.GetByID)

	// System routes (outbox administration, info, ping)
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/outbox/dead", middleware.RequireAdmin(), outboxHandler.GetDeadLetterEntries)
	systemRoutes.POST("/outbox/dead/retry-all", middleware.RequireAdmin(), outboxHandler.RetryAllDeadEntries)
	systemRoutes.GET("/outbox/:id", middleware.RequireAdmin(), outboxHandler.GetEntry)
	systemRoutes.POST("/outbox/:id/retry", middleware.RequireAdmin(), outboxHandler.RetryDeadEntry)

	// Register all domain groups
	r.Register(catalogRoutes).
		Register(reviewRoutes).
		Register(profileRoutes).
		Register(insightsRoutes).
		Register(paymentRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
