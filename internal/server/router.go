// Package server assembles the HTTP surface of the finance tracker: the
// middleware chain, the swagger UI and every /api/v1 route.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "fintrack/internal/docs" // Import swagger docs
	"fintrack/internal/events"
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
)

// Services bundles the business services the router dispatches to.
type Services struct {
	Categories   services.CategoryServicer
	Transactions services.TransactionServicer
	Budgets      services.BudgetServicer
	Summaries    services.SummaryServicer
	Setup        services.SetupServicer
	Audit        services.AuditServicer
}

// NewServices wires every service against one database and one event publisher.
func NewServices(db *gorm.DB, publisher events.Publisher) *Services {
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, categoryService, publisher)
	budgetService := services.NewBudgetService(db, categoryService, publisher)

	return &Services{
		Categories:   categoryService,
		Transactions: transactionService,
		Budgets:      budgetService,
		Summaries:    services.NewSummaryService(categoryService, transactionService, budgetService),
		Setup:        services.NewSetupService(categoryService),
		Audit:        services.NewAuditService(db),
	}
}

// NewRouter builds the gin engine serving the API.
func NewRouter(svc *Services, allowedOrigin string) *gin.Engine {
	categoryHandler := handlers.NewCategoryHandler(svc.Categories, svc.Audit)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Audit)
	budgetHandler := handlers.NewBudgetHandler(svc.Budgets, svc.Audit)
	summaryHandler := handlers.NewSummaryHandler(svc.Summaries)
	setupHandler := handlers.NewSetupHandler(svc.Setup, svc.Audit)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(allowedOrigin))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := v1.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	v1.GET("/summaries/month", summaryHandler.GetMonthSummary)
	v1.POST("/setup/default-categories", setupHandler.CreateDefaultCategories)

	return router
}
