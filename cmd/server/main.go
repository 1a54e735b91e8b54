package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/fubble/backend/internal/application/billing"
	catalogapp "github.com/fubble/backend/internal/application/catalog"
	invoicingapp "github.com/fubble/backend/internal/application/invoicing"
	partnerapp "github.com/fubble/backend/internal/application/partner"
	"github.com/fubble/backend/internal/domain/catalog"
	"github.com/fubble/backend/internal/domain/pricing"
	"github.com/fubble/backend/internal/infrastructure/cache"
	"github.com/fubble/backend/internal/infrastructure/config"
	"github.com/fubble/backend/internal/infrastructure/logger"
	"github.com/fubble/backend/internal/infrastructure/persistence"
	"github.com/fubble/backend/internal/interfaces/http/handler"
	"github.com/fubble/backend/internal/interfaces/http/middleware"
	"github.com/fubble/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

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

	log.Info("Starting Fubble Backend",
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

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// Usage summary cache: Redis if enabled, in-memory otherwise
	summaryCache, err := cache.NewUsageSummaryCache(&cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize usage summary cache", zap.Error(err))
	}
	log.Info("Usage summary cache initialized", zap.Bool("redis", cfg.Redis.Enabled))

	// Initialize repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	usageEventRepo := persistence.NewGormUsageEventRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)

	// Pricing evaluator with all strategies registered
	evaluator := pricing.NewEvaluator()

	// Initialize application services
	planService := catalogapp.NewPlanService(planRepo, log)
	customerService := partnerapp.NewCustomerService(customerRepo, subscriptionRepo, log)
	usageService := billingapp.NewUsageService(usageEventRepo, customerRepo, summaryCache, cfg.Billing.SummaryCacheTTL, log)
	lifecycleService := invoicingapp.NewInvoiceLifecycleService(invoiceRepo, customerRepo, log)
	generationService := billingapp.NewInvoiceGenerationService(
		customerRepo,
		planRepo,
		subscriptionRepo,
		usageEventRepo,
		invoiceRepo,
		evaluator,
		billingapp.GenerationConfig{
			PaymentTermDays:  cfg.Billing.PaymentTermDays,
			DefaultFrequency: catalog.BillingFrequency(cfg.Billing.DefaultFrequency),
		},
		log,
	)

	// Initialize HTTP handlers
	planHandler := handler.NewPlanHandler(planService)
	customerHandler := handler.NewCustomerHandler(customerService)
	usageHandler := handler.NewUsageHandler(usageService)
	invoiceHandler := handler.NewInvoiceHandler(lifecycleService, generationService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging, CORS
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Register API routes and the health endpoint
	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithHealthCheck("database", db.Ping),
	)
	r.Register(planHandler).
		Register(customerHandler).
		Register(usageHandler).
		Register(invoiceHandler)
	r.Setup()

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
