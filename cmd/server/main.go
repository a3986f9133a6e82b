package main

import (
	"context"
	"log"
	"time"

	"cafe_pos/internal/config"
	"cafe_pos/internal/database"
	"cafe_pos/internal/handlers"
	"cafe_pos/internal/middleware"
	"cafe_pos/internal/migrations"
	"cafe_pos/internal/models"
	"cafe_pos/internal/redis"
	"cafe_pos/internal/repository"
	"cafe_pos/internal/services"
	"cafe_pos/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Background worker for post-receipt cleanup
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cleanupWorker := worker.New(cfg.CleanupQueueSize)
	cleanupWorker.Start(ctx)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuItemRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, redisClient, cfg.JWTSecret, time.Duration(cfg.TokenTTL)*time.Second)
	userService := services.NewUserService(userRepo)
	menuService := services.NewMenuService(menuRepo)
	tableService := services.NewTableService(tableRepo)
	transactionService := services.NewTransactionService(db, orderRepo, cleanupWorker, cfg.CafeName)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(authService, userService)
	menuHandler := handlers.NewMenuHandler(menuService)
	tableHandler := handlers.NewTableHandler(tableService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	// Setup routes
	router := gin.Default()

	authenticate := middleware.Authenticate(authService)
	admin := string(models.RoleAdmin)
	manager := string(models.RoleManager)
	kasir := string(models.RoleKasir)

	users := router.Group("/users")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.POST("/logout", authenticate, userHandler.Logout)
		users.GET("", authenticate, userHandler.ListUsers)
		users.GET("/:id", authenticate, userHandler.GetUser)
		users.PATCH("/:id", authenticate, userHandler.UpdateUser)
		users.DELETE("/:id", authenticate, middleware.Authorize(admin), userHandler.DeleteUser)
	}

	adminRoutes := router.Group("/admin", authenticate, middleware.Authorize(admin))
	{
		adminRoutes.GET("/menu", menuHandler.ListMenuItems)
		adminRoutes.GET("/menu/:id", menuHandler.GetMenuItem)
		adminRoutes.POST("/menu", menuHandler.CreateMenuItems)
		adminRoutes.PATCH("/menu/:id", menuHandler.UpdateMenuItem)
		adminRoutes.DELETE("/menu/:id", menuHandler.DeleteMenuItem)

		adminRoutes.GET("/tables", tableHandler.ListTables)
		adminRoutes.GET("/tables/:id", tableHandler.GetTable)
		adminRoutes.POST("/tables", tableHandler.CreateTables)
		adminRoutes.PATCH("/tables/:id", tableHandler.UpdateTable)
		adminRoutes.DELETE("/tables/:id", tableHandler.DeleteTable)
	}

	transactions := router.Group("/transactions", authenticate)
	{
		transactions.POST("", middleware.Authorize(kasir), transactionHandler.CreateOrder)
		transactions.GET("", middleware.Authorize(kasir, manager), transactionHandler.ListTransactions)
		transactions.PATCH("/:orderId", middleware.Authorize(kasir), transactionHandler.UpdateOrder)
		transactions.DELETE("/:orderId", middleware.Authorize(kasir), transactionHandler.DeleteOrder)
		transactions.GET("/:orderId/receipt", middleware.Authorize(kasir), transactionHandler.PrintReceipt)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
