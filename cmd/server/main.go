package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/ryoptimus/DevStorm-backend/internal/auth"
	"github.com/ryoptimus/DevStorm-backend/internal/config"
	"github.com/ryoptimus/DevStorm-backend/internal/database"
	"github.com/ryoptimus/DevStorm-backend/internal/handlers"
	"github.com/ryoptimus/DevStorm-backend/internal/mailer"
	"github.com/ryoptimus/DevStorm-backend/internal/middleware"
	"github.com/ryoptimus/DevStorm-backend/internal/repository"
	"github.com/ryoptimus/DevStorm-backend/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Token blocklist backed by Redis
	blocklist := auth.NewBlocklist(cfg.RedisHost + ":" + cfg.RedisPort)
	if err := blocklist.Ping(context.Background()); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize AI service
	var aiService *services.AIService
	if cfg.GroqKey != "" {
		aiService = services.NewAIService(cfg.GroqKey)
	}

	// Confirmation mailer (nil when SMTP is not configured)
	mail := mailer.New(cfg)

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.GetDB())
	projectRepo := repository.NewProjectRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())

	// Initialize services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)

	var generator services.TaskGenerator
	if aiService != nil {
		generator = aiService
	}
	projectService := services.NewProjectService(projectRepo, userRepo, generator)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, blocklist, mail, cfg)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	aiHandler := handlers.NewAIHandler(aiService)

	// Initialize Gin router
	r := gin.Default()

	requireAuth := middleware.RequireAuth(cfg.JWTSecret, blocklist)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "DevStorm API is running",
		})
	})

	// Auth routes (public)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.POST("/token/refresh", authHandler.Refresh)

	// User routes
	user := r.Group("/user")
	{
		user.GET("", userHandler.ListUsers)
		user.GET("/:username", userHandler.GetUser)
		user.GET("/me", requireAuth, userHandler.GetCurrentUser)
		user.PUT("/:username/password", requireAuth, userHandler.UpdatePassword)
		user.POST("/:username/confirm", requireAuth, userHandler.ConfirmAccount)
		user.DELETE("/:username", requireAuth, userHandler.DeleteAccount)
	}

	// Project routes
	project := r.Group("/project")
	{
		project.GET("", projectHandler.ListProjects)
		project.GET("/by-user", requireAuth, projectHandler.ListProjectsByUser)
		project.GET("/:id", requireAuth, projectHandler.GetProject)
		project.POST("/create", requireAuth, projectHandler.CreateProject)
		project.PUT("/:id/add-collaborator", requireAuth, projectHandler.AddCollaborator)
		project.PUT("/:id/remove-collaborator", requireAuth, projectHandler.RemoveCollaborator)
		project.PUT("/:id/update-status", requireAuth, projectHandler.UpdateProjectStatus)
		project.DELETE("/:id", requireAuth, projectHandler.DeleteProject)
	}

	// Task routes (all protected)
	task := r.Group("/task")
	task.Use(requireAuth)
	{
		task.GET("/by-project/:pid", taskHandler.ListTasksByProject)
		task.POST("/create", taskHandler.CreateTask)
		task.GET("/:id", taskHandler.GetTask)
		task.PUT("/:id/update-status", taskHandler.UpdateTaskStatus)
		task.PUT("/:id/update-description", taskHandler.UpdateTaskDescription)
		task.DELETE("/:id", taskHandler.DeleteTask)
	}

	// Brainstorm endpoint (protected)
	r.POST("/api/prompt", requireAuth, aiHandler.Brainstorm)

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
