package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"boardsuite/internal/caching"
	"boardsuite/internal/handlers"
	"boardsuite/internal/jobs/background"
	"boardsuite/internal/middleware"
	"boardsuite/internal/repositories"
	"boardsuite/internal/services"
)

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret; sessions will not survive restarts")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"

	receiptStore, err := services.NewReceiptStore(minioEndpoint, minioAccessKey, minioSecretKey, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize receipt store: %v", err)
	}
	if err := receiptStore.EnsureBucket(context.Background()); err != nil {
		log.Printf("WARNING: could not ensure receipt bucket: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	roomRepo := repositories.NewRoomRepo(pool)
	tenantRepo := repositories.NewTenantRepo(pool)
	billRepo := repositories.NewBillRepo(pool)
	paymentRepo := repositories.NewPaymentRepo(pool)
	reportRepo := repositories.NewReportRepo(pool)
	settingsRepo := repositories.NewSettingsRepo(pool)

	// Cache
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Services
	authSvc := services.NewAuthService(userRepo, cacheSvc, jwtSecret)
	billingSvc := services.NewBillingService(billRepo, settingsRepo)
	paymentSvc := services.NewPaymentService(pool, tenantRepo, paymentRepo, receiptStore)
	occupancySvc := services.NewOccupancyService(pool)
	roomSvc := services.NewRoomService(pool, roomRepo)
	tenantSvc := services.NewTenantService(pool, tenantRepo)
	reportSvc := services.NewReportService(reportRepo, cacheSvc)
	summarySvc := services.NewSummaryService(settingsRepo, os.Getenv("GEMINI_API_KEY"))

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	roomHandlers := handlers.NewRoomHandlers(roomSvc, occupancySvc)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc, occupancySvc, paymentSvc)
	paymentHandlers := handlers.NewPaymentHandlers(billingSvc, paymentSvc)
	reportHandlers := handlers.NewReportHandlers(reportSvc, summarySvc)
	settingsHandlers := handlers.NewSettingsHandlers(settingsRepo)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(reportSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Echo instance
	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Public routes
	e.GET("/health", healthHandlers.Health)
	e.POST("/auth/register", authHandlers.Register)
	e.POST("/auth/login", authHandlers.Login)
	e.POST("/auth/refresh", authHandlers.Refresh)

	// Protected routes
	protected := e.Group("")
	protected.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))

	// Rooms
	protected.GET("/rooms", roomHandlers.ListRooms)
	protected.POST("/rooms", roomHandlers.CreateRoom)
	protected.GET("/rooms/available", roomHandlers.ListAvailableRooms)
	protected.PUT("/rooms/:id", roomHandlers.UpdateRoom)
	protected.DELETE("/rooms/:id", roomHandlers.DeleteRoom)
	protected.POST("/rooms/:id/unassign", roomHandlers.UnassignRoom)

	// Tenants
	protected.GET("/tenants", tenantHandlers.ListTenants)
	protected.POST("/tenants", tenantHandlers.CreateTenant)
	protected.GET("/tenants/available", tenantHandlers.ListAvailableTenants)
	protected.PUT("/tenants/:id", tenantHandlers.UpdateTenant)
	protected.DELETE("/tenants/:id", tenantHandlers.DeleteTenant)
	protected.POST("/tenants/:id/relocate", tenantHandlers.RelocateTenant)
	protected.POST("/tenants/:id/mark-paid", tenantHandlers.MarkPaid)

	// Bills and payments
	protected.GET("/payments", paymentHandlers.ListBills)
	protected.POST("/payments/generate", paymentHandlers.GenerateBills)
	protected.POST("/payments/payment", paymentHandlers.RecordPayment)
	protected.POST("/payments/:id/receipt", paymentHandlers.UploadReceipt)
	protected.GET("/payments/:id/receipt", paymentHandlers.GetReceiptURL)

	// Reports
	protected.GET("/reports", reportHandlers.GetMonthlyReport)
	protected.POST("/reports/summarize", reportHandlers.Summarize)
	protected.GET("/dashboard/stats", reportHandlers.GetDashboardStats)

	// Settings
	protected.GET("/settings", settingsHandlers.GetSettings)
	protected.PUT("/settings", settingsHandlers.UpdateSettings)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(e.Start(":" + port))
}
