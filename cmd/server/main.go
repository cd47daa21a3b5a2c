package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/planhive/planhive-api/internal/auth"
	"github.com/planhive/planhive-api/internal/config"
	"github.com/planhive/planhive-api/internal/database"
	"github.com/planhive/planhive-api/internal/handlers"
	"github.com/planhive/planhive-api/internal/logger"
	"github.com/planhive/planhive-api/internal/middleware"
	"github.com/planhive/planhive-api/internal/repository"
	"github.com/planhive/planhive-api/internal/services"
)

func main() {
	// Load configuration. Refuses to start without a JWT secret.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg)
	zlog := logger.Get()
	defer zlog.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		zlog.Fatal("Failed to add indexes", zap.Error(err))
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.GetDB())
	planRepo := repository.NewPlanRepository(database.GetDB())
	participantRepo := repository.NewParticipantRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())

	// Initialize services
	authService := services.NewAuthService(userRepo, jwtManager)
	planService := services.NewPlanService(planRepo, participantRepo)
	inviteService := services.NewInviteService(participantRepo, userRepo, cfg.BaseURL)
	taskService := services.NewTaskService(taskRepo, planRepo, participantRepo, userRepo)

	// Background cleanup of cancelled plans past the retention window
	sweeper := services.NewPlanSweeper(planRepo, cfg.PlanRetention, cfg.SweepInterval, zlog)
	sweeper.Start(context.Background())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	planHandler := handlers.NewPlanHandler(planService, inviteService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.Metrics())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "PlanHive API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/profile", middleware.RequireAuth(jwtManager), authHandler.GetProfile)
			authRoutes.PUT("/update-profile", middleware.RequireAuth(jwtManager), authHandler.UpdateProfile)
			authRoutes.DELETE("/delete-account", middleware.RequireAuth(jwtManager), authHandler.DeleteAccount)
		}

		// Plan and invitation routes
		plans := api.Group("/plan")
		{
			// Invite responses authenticate by token possession alone
			plans.GET("/invite/:inviteToken", planHandler.RespondToInvite)

			plans.POST("/create-plan", middleware.RequireAuth(jwtManager), planHandler.CreatePlan)
			plans.POST("/:planId/invite", middleware.RequireAuth(jwtManager), middleware.RequirePlanOrganizer(), planHandler.InviteFriend)
			plans.GET("/invitations", middleware.RequireAuth(jwtManager), planHandler.ListInvitations)
			plans.DELETE("/:planId/cancel", middleware.RequireAuth(jwtManager), planHandler.CancelPlan)
			plans.GET("/events", middleware.RequireAuth(jwtManager), planHandler.ListPlans)
			plans.GET("/events/user", middleware.RequireAuth(jwtManager), planHandler.ListUserPlans)
			plans.GET("/events/:planId", middleware.RequireAuth(jwtManager), planHandler.GetPlan)
			plans.PUT("/events/update/:planId", middleware.RequireAuth(jwtManager), planHandler.UpdatePlan)
			plans.GET("/plans/:planId/expenses", middleware.RequireAuth(jwtManager), planHandler.GetPlanExpenses)
		}

		// Task routes
		tasks := api.Group("/resp")
		tasks.Use(middleware.RequireAuth(jwtManager))
		{
			tasks.POST("/:planId/assign", middleware.RequirePlanOrganizer(), taskHandler.AssignTask)
			tasks.POST("/:planId/tasks/bulk", taskHandler.CreateTaskList)
			tasks.POST("/:planId/pick", taskHandler.PickTask)
			tasks.POST("/complete/:taskId", taskHandler.CompleteTask)
			tasks.GET("/assigned/me", taskHandler.ListMyTasks)
			tasks.GET("/:planId", taskHandler.ListPlanTasks)
		}
	}

	// Start server
	zlog.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}
