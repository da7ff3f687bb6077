package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"splitledger_app_echo/internal/auth"
	"splitledger_app_echo/internal/handlers"
	appMiddleware "splitledger_app_echo/internal/middleware"
	"splitledger_app_echo/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize Database
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := services.InitDB(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migration
	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Redis is optional, currency rate lookups just skip caching without it
	var cache *services.RedisCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err = services.NewRedisCache(redisURL)
		if err != nil {
			log.Printf("Warning: Redis initialization failed: %v", err)
			cache = nil
		}
	} else {
		log.Println("Warning: REDIS_URL not set, rate caching disabled")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	jwtManager := auth.NewJWTManager(jwtSecret, 24*time.Hour)

	// Initialize services
	userService := services.NewUserService(db)
	groupService := services.NewGroupService(db)
	currencyService := services.NewCurrencyService(cache)
	expenseService := services.NewExpenseService(db, currencyService)
	balanceService := services.NewBalanceService(db)

	// Create Echo instance
	e := echo.New()
	e.HTTPErrorHandler = appMiddleware.CustomErrorHandler

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, jwtManager)
	userHandler := handlers.NewUserHandler(userService, expenseService, groupService, balanceService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	groupHandler := handlers.NewGroupHandler(groupService, expenseService, balanceService)
	currencyHandler := handlers.NewCurrencyHandler(currencyService)

	// Public routes
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// Protected routes
	protected := e.Group("")
	protected.Use(appMiddleware.RequireAuth(jwtManager))

	// User routes
	protected.POST("/users", userHandler.CreateUser)
	protected.GET("/users", userHandler.ListUsers)
	protected.GET("/users/:id", userHandler.GetUser)
	protected.GET("/users/:id/expenses", userHandler.ListUserExpenses)
	protected.GET("/users/:id/groups", userHandler.ListUserGroups)
	protected.GET("/users/:id/balance", userHandler.GetUserBalance)

	// Expense routes
	protected.POST("/expenses", expenseHandler.CreateExpense)
	protected.GET("/expenses/:expenseId", expenseHandler.GetExpense)
	protected.PUT("/expenses/:expenseId/splits", expenseHandler.UpdateExpenseSplits)

	// Group routes
	protected.POST("/groups", groupHandler.CreateGroup)
	protected.GET("/groups/:groupId", groupHandler.GetGroup)
	protected.POST("/groups/:groupId/users", groupHandler.AddUsers)
	protected.GET("/groups/:groupId/expenses", groupHandler.ListExpenses)
	protected.POST("/groups/:groupId/expenses", groupHandler.ModifyExpenses)
	protected.GET("/groups/:groupId/balances", groupHandler.GetBalances)
	protected.GET("/groups/:groupId/settlements", groupHandler.GetSettlementPlan)
	protected.POST("/groups/:groupId/settlements", groupHandler.RecordSettlement)

	// Currency routes
	protected.GET("/convert", currencyHandler.Convert)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
