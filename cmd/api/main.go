package main

import (
	"fmt"
	"net/http"
	"os"

	"bolso/internal/config"
	"bolso/internal/database"
	"bolso/internal/handlers"
	"bolso/internal/logger"
	"bolso/internal/middleware"
	"bolso/internal/services"
	"bolso/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "bolso/internal/docs" // Import swagger docs
)

// @title           Bolso API
// @version         1.0
// @description     Bolso is a personal budgeting application: envelope budgets per category, a confirmation inbox for transactions forwarded over WhatsApp or email, savings goals, and derived dashboard figures, all in integer centavos.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	budgetService := services.NewBudgetService(db)
	transactionService := services.NewTransactionService(db, accountService)
	inboxService := services.NewInboxService(db, transactionService)
	goalService := services.NewGoalService(db)
	summaryService := services.NewSummaryService(accountService, categoryService, budgetService, transactionService, goalService)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	accountHandler := handlers.NewAccountHandler(accountService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	inboxHandler := handlers.NewInboxHandler(inboxService, userService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Ingestion routes (WhatsApp/email bridges, API-key authenticated)
	ingest := v1.Group("/ingest")
	ingest.Use(middleware.IngestAuthMiddleware(appConfig.IngestAPIKey))
	ingest.POST("/transactions", inboxHandler.Ingest)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Account routes
	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeactivateAccount)

	// Category routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.POST("/groups", categoryHandler.CreateGroup)
	categories.GET("/groups", categoryHandler.GetGroups)
	categories.DELETE("/groups/:id", categoryHandler.DeleteGroup)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.PUT("", budgetHandler.SetBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("/rollover", budgetHandler.ApplyRollover)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.POST("/transfer", transactionHandler.CreateTransfer)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PATCH("/:id/cleared", transactionHandler.SetCleared)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Inbox routes
	inbox := protected.Group("/inbox")
	inbox.GET("", inboxHandler.GetPending)
	inbox.POST("/:id/confirm", inboxHandler.Confirm)
	inbox.POST("/:id/reject", inboxHandler.Reject)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/contributions", goalHandler.AddContribution)
	goals.GET("/:id/contributions", goalHandler.GetContributions)
	goals.GET("/:id/progress", goalHandler.GetGoalProgress)

	// Summary routes
	summary := protected.Group("/summary")
	summary.GET("/dashboard", summaryHandler.GetDashboard)
	summary.GET("/budget", summaryHandler.GetBudgetSummary)
	summary.GET("/savings", summaryHandler.GetSavings)
	summary.GET("/age-of-money", summaryHandler.GetAgeOfMoney)

	log.Infof("Starting Bolso backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
