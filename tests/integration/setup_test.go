package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bolso/internal/handlers"
	"bolso/internal/logger"
	"bolso/internal/middleware"
	"bolso/internal/models"
	"bolso/internal/services"
	"bolso/internal/validator"
)

// testIngestKey is the shared secret used by the ingest routes in tests.
const testIngestKey = "test-ingest-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Account{},
		&models.CategoryGroup{},
		&models.Category{},
		&models.Budget{},
		&models.Transaction{},
		&models.InboxItem{},
		&models.Goal{},
		&models.GoalContribution{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	budgetService := services.NewBudgetService(db)
	transactionService := services.NewTransactionService(db, accountService)
	inboxService := services.NewInboxService(db, transactionService)
	goalService := services.NewGoalService(db)
	summaryService := services.NewSummaryService(accountService, categoryService, budgetService, transactionService, goalService)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	accountHandler := handlers.NewAccountHandler(accountService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	inboxHandler := handlers.NewInboxHandler(inboxService, userService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Ingest routes authenticated with the shared API key
	ingest := v1.Group("/ingest")
	ingest.Use(middleware.IngestAuthMiddleware(testIngestKey))
	ingest.POST("/transactions", inboxHandler.Ingest)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeactivateAccount)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.POST("/groups", categoryHandler.CreateGroup)
	categories.GET("/groups", categoryHandler.GetGroups)
	categories.DELETE("/groups/:id", categoryHandler.DeleteGroup)

	budgets := protected.Group("/budgets")
	budgets.PUT("", budgetHandler.SetBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("/rollover", budgetHandler.ApplyRollover)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.POST("/transfer", transactionHandler.CreateTransfer)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PATCH("/:id/cleared", transactionHandler.SetCleared)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	inbox := protected.Group("/inbox")
	inbox.GET("", inboxHandler.GetPending)
	inbox.POST("/:id/confirm", inboxHandler.Confirm)
	inbox.POST("/:id/reject", inboxHandler.Reject)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/contributions", goalHandler.AddContribution)
	goals.GET("/:id/contributions", goalHandler.GetContributions)
	goals.GET("/:id/progress", goalHandler.GetGoalProgress)

	summary := protected.Group("/summary")
	summary.GET("/dashboard", summaryHandler.GetDashboard)
	summary.GET("/budget", summaryHandler.GetBudgetSummary)
	summary.GET("/savings", summaryHandler.GetSavings)
	summary.GET("/age-of-money", summaryHandler.GetAgeOfMoney)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// ingestRequest posts a body to the ingest channel with the shared API key.
func (app *testApp) ingestRequest(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/v1/ingest/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testIngestKey)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"name":"Test User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createAccount creates an account and returns its ID.
func (app *testApp) createAccount(t *testing.T, token, name, kind string, balance int64) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"kind":%q,"initial_balance":%d}`, name, kind, balance)
	rec := app.request("POST", "/api/v1/accounts", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create account failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["id"].(string)
}

// createCategory creates a category and returns its ID.
func (app *testApp) createCategory(t *testing.T, token, name, categoryType string, budgeted int64) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"type":%q,"budgeted_amount":%d}`, name, categoryType, budgeted)
	rec := app.request("POST", "/api/v1/categories", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["id"].(string)
}
