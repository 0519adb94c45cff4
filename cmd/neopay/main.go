package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"github.com/geraud82/NeoPay-sub000/internal/caching"
	"github.com/geraud82/NeoPay-sub000/internal/handlers"
	"github.com/geraud82/NeoPay-sub000/internal/jobs/background"
	"github.com/geraud82/NeoPay-sub000/internal/middleware"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/repositories"
	"github.com/geraud82/NeoPay-sub000/internal/services"
	"github.com/geraud82/NeoPay-sub000/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}
	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret; tokens will not survive a restart")
	}
	jwksURL := os.Getenv("NEOPAY_JWKS_URL")

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
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"
	receiptBucket := os.Getenv("RECEIPT_BUCKET")
	if receiptBucket == "" {
		receiptBucket = "neopay-receipts"
	}

	storage, err := services.NewMinioStorage(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storage.EnsureBucketExists(context.Background(), receiptBucket); err != nil {
		log.Printf("WARN: failed to ensure receipt bucket %s: %v", receiptBucket, err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	companyRepo := repositories.NewCompanyRepository(pool)
	companyUserRepo := repositories.NewCompanyUserRepository(pool)
	driverRepo := repositories.NewDriverRepository(pool)
	tripRepo := repositories.NewTripRepository(pool)
	loadRepo := repositories.NewLoadRepository(pool)
	expenseRepo := repositories.NewExpenseRepository(pool)
	receiptRepo := repositories.NewReceiptRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	statementRepo := repositories.NewStatementRepository(pool)

	// Cache
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Services
	authSvc := services.NewAuthService(userRepo, companyUserRepo, cacheSvc, jwtSecret)
	companySvc := services.NewCompanyService(companyRepo, companyUserRepo, userRepo)
	driverSvc := services.NewDriverService(driverRepo, cacheSvc)
	tripSvc := services.NewTripService(tripRepo, driverRepo, loadRepo)
	loadSvc := services.NewLoadService(loadRepo, driverRepo)
	expenseSvc := services.NewExpenseService(expenseRepo, driverRepo, receiptRepo)
	extractor := services.NewSimulatedExtractor()
	receiptSvc := services.NewReceiptService(receiptRepo, driverRepo, storage, extractor, receiptBucket)
	paymentSvc := services.NewPaymentService(paymentRepo, driverRepo)
	statementSvc := services.NewStatementService(statementRepo, driverRepo, tripRepo, expenseRepo, paymentRepo, cacheSvc)

	// Background scheduler; the receipt service enqueues extraction jobs on it.
	scheduler := background.NewJobScheduler(receiptSvc)
	receiptSvc.SetQueue(scheduler)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Middleware
	keyFn, err := middleware.NewKeyfunc(jwtSecret, jwksURL)
	if err != nil {
		log.Fatalf("Failed to configure token verification: %v", err)
	}
	jwtMiddleware := middleware.JWTMiddleware(keyFn)
	rbac := middleware.NewRBACMiddleware(driverSvc)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	companyHandlers := handlers.NewCompanyHandlers(companySvc)
	driverHandlers := handlers.NewDriverHandlers(driverSvc)
	tripHandlers := handlers.NewTripHandlers(tripSvc)
	loadHandlers := handlers.NewLoadHandlers(loadSvc)
	expenseHandlers := handlers.NewExpenseHandlers(expenseSvc)
	receiptHandlers := handlers.NewReceiptHandlers(receiptSvc)
	paymentHandlers := handlers.NewPaymentHandlers(paymentSvc, statementSvc)
	statementHandlers := handlers.NewStatementHandlers(statementSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, scheduler)

	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/metrics", healthHandlers.GetMetrics)

	api := e.Group("/api")

	// Authentication routes (no JWT required for register/login)
	auth := api.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/logout", authHandlers.Logout)

	// Protected routes
	protected := api.Group("", jwtMiddleware)
	protected.GET("/auth/me", authHandlers.Me)

	// Company routes
	protected.POST("/companies", companyHandlers.CreateCompany, rbac.Require(models.EntityCompanies, models.OpWrite))
	protected.GET("/companies", companyHandlers.ListCompanies, rbac.Require(models.EntityCompanies, models.OpRead))
	protected.GET("/companies/:id", companyHandlers.GetCompany, rbac.Require(models.EntityCompanies, models.OpRead))
	protected.PUT("/companies/:id", companyHandlers.UpdateCompany, rbac.Require(models.EntityCompanies, models.OpWrite))
	protected.DELETE("/companies/:id", companyHandlers.DeleteCompany, rbac.Require(models.EntityCompanies, models.OpWrite))
	protected.POST("/companies/:id/members", companyHandlers.AddMember, rbac.Require(models.EntityCompanies, models.OpWrite))
	protected.GET("/companies/:id/members", companyHandlers.ListMembers, rbac.Require(models.EntityCompanies, models.OpRead))
	protected.DELETE("/companies/:id/members/:userId", companyHandlers.RemoveMember, rbac.Require(models.EntityCompanies, models.OpWrite))

	// Driver routes
	protected.POST("/drivers", driverHandlers.CreateDriver, rbac.Require(models.EntityDrivers, models.OpWrite))
	protected.GET("/drivers", driverHandlers.ListDrivers, rbac.Require(models.EntityDrivers, models.OpRead))
	protected.GET("/drivers/me", driverHandlers.GetOwnDriver, rbac.Require(models.EntityDrivers, models.OpRead))
	protected.GET("/drivers/:id", driverHandlers.GetDriver, rbac.Require(models.EntityDrivers, models.OpRead), rbac.DriverAccess("id"))
	protected.PUT("/drivers/:id", driverHandlers.UpdateDriver, rbac.Require(models.EntityDrivers, models.OpWrite))
	protected.DELETE("/drivers/:id", driverHandlers.DeleteDriver, rbac.Require(models.EntityDrivers, models.OpWrite))

	// Trip routes
	protected.POST("/trips", tripHandlers.CreateTrip, rbac.Require(models.EntityTrips, models.OpWrite))
	protected.GET("/trips", tripHandlers.ListTrips, rbac.Require(models.EntityTrips, models.OpRead), rbac.DriverAccess(""))
	protected.GET("/trips/:id", tripHandlers.GetTrip, rbac.Require(models.EntityTrips, models.OpRead), rbac.DriverAccess(""))
	protected.PUT("/trips/:id", tripHandlers.UpdateTrip, rbac.Require(models.EntityTrips, models.OpWrite))
	protected.DELETE("/trips/:id", tripHandlers.DeleteTrip, rbac.Require(models.EntityTrips, models.OpWrite))
	protected.GET("/drivers/:driverId/trips", tripHandlers.ListDriverTrips, rbac.Require(models.EntityTrips, models.OpRead), rbac.DriverAccess("driverId"))
	protected.GET("/trips/driver/:driverId", tripHandlers.ListDriverTrips, rbac.Require(models.EntityTrips, models.OpRead), rbac.DriverAccess("driverId"))

	// Load routes
	protected.POST("/loads", loadHandlers.CreateLoad, rbac.Require(models.EntityLoads, models.OpWrite))
	protected.GET("/loads", loadHandlers.ListLoads, rbac.Require(models.EntityLoads, models.OpRead))
	protected.GET("/loads/:id", loadHandlers.GetLoad, rbac.Require(models.EntityLoads, models.OpRead))
	protected.PUT("/loads/:id", loadHandlers.UpdateLoad, rbac.Require(models.EntityLoads, models.OpWrite))
	protected.PATCH("/loads/:id/status", loadHandlers.UpdateLoadStatus, rbac.Require(models.EntityLoads, models.OpWrite))
	protected.POST("/loads/:id/status", loadHandlers.UpdateLoadStatus, rbac.Require(models.EntityLoads, models.OpWrite))
	protected.PATCH("/loads/:id/driver", loadHandlers.AssignLoadDriver, rbac.Require(models.EntityLoads, models.OpWrite))
	protected.POST("/loads/:id/assign", loadHandlers.AssignLoadDriver, rbac.Require(models.EntityLoads, models.OpWrite))
	protected.DELETE("/loads/:id", loadHandlers.DeleteLoad, rbac.Require(models.EntityLoads, models.OpWrite))
	protected.GET("/loads/company/:companyId", loadHandlers.ListCompanyLoads, rbac.Require(models.EntityLoads, models.OpRead))
	protected.GET("/drivers/:driverId/loads", loadHandlers.ListDriverLoads, rbac.Require(models.EntityLoads, models.OpRead), rbac.DriverAccess("driverId"))
	protected.GET("/loads/driver/:driverId", loadHandlers.ListDriverLoads, rbac.Require(models.EntityLoads, models.OpRead), rbac.DriverAccess("driverId"))

	// Expense routes
	protected.POST("/expenses", expenseHandlers.CreateExpense, rbac.Require(models.EntityExpenses, models.OpWrite), rbac.DriverAccess(""))
	protected.GET("/expenses", expenseHandlers.ListExpenses, rbac.Require(models.EntityExpenses, models.OpRead), rbac.DriverAccess(""))
	protected.GET("/expenses/summary/by-category", expenseHandlers.CategorySummary, rbac.Require(models.EntityExpenses, models.OpRead))
	protected.GET("/expenses/summary/by-driver", expenseHandlers.DriverSummary, rbac.Require(models.EntityExpenses, models.OpRead))
	protected.GET("/expenses/category/:category", expenseHandlers.ListExpensesByCategory, rbac.Require(models.EntityExpenses, models.OpRead), rbac.DriverAccess(""))
	protected.POST("/expenses/from-receipt/:receiptId", expenseHandlers.CreateFromReceipt, rbac.Require(models.EntityExpenses, models.OpWrite), rbac.DriverAccess(""))
	protected.GET("/expenses/:id", expenseHandlers.GetExpense, rbac.Require(models.EntityExpenses, models.OpRead), rbac.DriverAccess(""))
	protected.PUT("/expenses/:id", expenseHandlers.UpdateExpense, rbac.Require(models.EntityExpenses, models.OpWrite), rbac.DriverAccess(""))
	protected.DELETE("/expenses/:id", expenseHandlers.DeleteExpense, rbac.Require(models.EntityExpenses, models.OpWrite), rbac.DriverAccess(""))
	protected.GET("/drivers/:driverId/expenses", expenseHandlers.ListDriverExpenses, rbac.Require(models.EntityExpenses, models.OpRead), rbac.DriverAccess("driverId"))
	protected.GET("/expenses/driver/:driverId", expenseHandlers.ListDriverExpenses, rbac.Require(models.EntityExpenses, models.OpRead), rbac.DriverAccess("driverId"))

	// Receipt routes
	protected.POST("/drivers/:driverId/receipts", receiptHandlers.UploadReceipt, rbac.Require(models.EntityReceipts, models.OpWrite), rbac.DriverAccess("driverId"))
	protected.POST("/receipts/upload", receiptHandlers.UploadReceiptBase64, rbac.Require(models.EntityReceipts, models.OpWrite), rbac.DriverAccess(""))
	protected.GET("/drivers/:driverId/receipts", receiptHandlers.ListDriverReceipts, rbac.Require(models.EntityReceipts, models.OpRead), rbac.DriverAccess("driverId"))
	protected.GET("/receipts/driver/:driverId", receiptHandlers.ListDriverReceipts, rbac.Require(models.EntityReceipts, models.OpRead), rbac.DriverAccess("driverId"))
	protected.GET("/receipts/:id", receiptHandlers.GetReceipt, rbac.Require(models.EntityReceipts, models.OpRead), rbac.DriverAccess(""))
	protected.GET("/receipts/:id/file", receiptHandlers.GetReceiptFileURL, rbac.Require(models.EntityReceipts, models.OpRead), rbac.DriverAccess(""))
	protected.DELETE("/receipts/:id", receiptHandlers.DeleteReceipt, rbac.Require(models.EntityReceipts, models.OpWrite), rbac.DriverAccess(""))

	// Payment routes
	protected.POST("/payments", paymentHandlers.CreatePayment, rbac.Require(models.EntityPayments, models.OpWrite))
	protected.GET("/payments", paymentHandlers.ListPayments, rbac.Require(models.EntityPayments, models.OpRead), rbac.DriverAccess(""))
	protected.POST("/payments/generate-statement", paymentHandlers.GenerateStatement, rbac.Require(models.EntityStatements, models.OpWrite))
	protected.GET("/payments/:id", paymentHandlers.GetPayment, rbac.Require(models.EntityPayments, models.OpRead), rbac.DriverAccess(""))
	protected.PUT("/payments/:id", paymentHandlers.UpdatePayment, rbac.Require(models.EntityPayments, models.OpWrite))
	protected.PATCH("/payments/:id/paid", paymentHandlers.MarkPaymentPaid, rbac.Require(models.EntityPayments, models.OpWrite))
	protected.DELETE("/payments/:id", paymentHandlers.DeletePayment, rbac.Require(models.EntityPayments, models.OpWrite))
	protected.GET("/drivers/:driverId/payments", paymentHandlers.ListDriverPayments, rbac.Require(models.EntityPayments, models.OpRead), rbac.DriverAccess("driverId"))
	protected.GET("/payments/driver/:driverId", paymentHandlers.ListDriverPayments, rbac.Require(models.EntityPayments, models.OpRead), rbac.DriverAccess("driverId"))

	// Pay statement routes
	protected.POST("/statements", statementHandlers.GenerateStatement, rbac.Require(models.EntityStatements, models.OpWrite))
	protected.GET("/statements", statementHandlers.ListStatements, rbac.Require(models.EntityStatements, models.OpRead), rbac.DriverAccess(""))
	protected.GET("/statements/:id", statementHandlers.GetStatement, rbac.Require(models.EntityStatements, models.OpRead), rbac.DriverAccess(""))
	protected.PATCH("/statements/:id/status", statementHandlers.UpdateStatementStatus, rbac.Require(models.EntityStatements, models.OpWrite))
	protected.POST("/statements/:id/finalize", statementHandlers.FinalizeStatement, rbac.Require(models.EntityStatements, models.OpWrite))
	protected.POST("/statements/:id/pay", statementHandlers.PayStatement, rbac.Require(models.EntityStatements, models.OpWrite))
	protected.DELETE("/statements/:id", statementHandlers.DeleteStatement, rbac.Require(models.EntityStatements, models.OpWrite))
	protected.GET("/drivers/:driverId/statements", statementHandlers.ListDriverStatements, rbac.Require(models.EntityStatements, models.OpRead), rbac.DriverAccess("driverId"))

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	go func() {
		log.Printf("NeoPay server v%s starting on port %d", version, port)
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
