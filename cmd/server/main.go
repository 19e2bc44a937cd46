package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/hanamura/taskdesk/internal/config"
	"github.com/hanamura/taskdesk/internal/constants"
	"github.com/hanamura/taskdesk/internal/database"
	"github.com/hanamura/taskdesk/internal/handlers"
	"github.com/hanamura/taskdesk/internal/middleware"
	"github.com/hanamura/taskdesk/internal/notify"
	"github.com/hanamura/taskdesk/internal/repository"
	"github.com/hanamura/taskdesk/internal/services"
	"github.com/hanamura/taskdesk/internal/tracker"
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

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	priorityRepo := repository.NewPriorityRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Services
	seed := func(userID uint64) error {
		return database.SeedDefaults(db, userID, cfg.DefaultPriorities, cfg.DefaultCategories)
	}
	authService := services.NewAuthService(userRepo, activityRepo, seed)
	taskService := services.NewTaskService(taskRepo, categoryRepo, priorityRepo, activityRepo)
	prefService := services.NewPreferenceService(prefRepo, activityRepo)

	// One tracker per active session, built on login.
	trackerFactory := func(userID uint64) *tracker.Tracker {
		return tracker.New(taskRepo, prefRepo, buildNotifier(cfg, userRepo, userID),
			userID, cfg.PollInterval, cfg.LookAheadWindow, cfg.QueryTimeout)
	}
	trackers := tracker.NewManager(trackerFactory)

	// Initialize Gin router
	r := gin.Default()

	// Session middleware backed by an in-process cookie store
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.GinMode == "release",
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionName, store))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, trackers)
	taskHandler := handlers.NewTaskHandler(taskService)
	lookupHandler := handlers.NewLookupHandler(taskService)
	prefHandler := handlers.NewPreferenceHandler(prefService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Desk is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.PUT("/profile", middleware.RequireAuth(), authHandler.UpdateProfile)
			auth.PUT("/password", middleware.RequireAuth(), authHandler.ChangePassword)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/stats", taskHandler.GetStats)
			tasks.GET("/export", taskHandler.ExportTasks)
			tasks.POST("/import", taskHandler.ImportTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Lookup routes (protected)
		categories := api.Group("/categories")
		categories.Use(middleware.RequireAuth())
		{
			categories.GET("", lookupHandler.ListCategories)
			categories.POST("", lookupHandler.CreateCategory)
		}
		priorities := api.Group("/priorities")
		priorities.Use(middleware.RequireAuth())
		{
			priorities.GET("", lookupHandler.ListPriorities)
			priorities.POST("", lookupHandler.CreatePriority)
		}

		// Preference routes (protected)
		prefs := api.Group("/preferences")
		prefs.Use(middleware.RequireAuth())
		{
			prefs.GET("", prefHandler.GetPreferences)
			prefs.PUT("", prefHandler.PutPreference)
		}
	}

	// Serve until interrupted, then drain in-flight requests and stop the
	// tracker between ticks.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	trackers.Stop()
	log.Println("Shutdown complete")
}

// buildNotifier picks the notification channel for a session. The email
// channel needs the user's address; a user without one falls back to the
// desktop channel.
func buildNotifier(cfg *config.Config, userRepo repository.UserRepository, userID uint64) notify.Notifier {
	if cfg.NotifyChannel == "email" {
		user, err := userRepo.FindByID(userID)
		if err == nil && user.Email != "" {
			return notify.NewEmailNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, user.Email)
		}
		log.Printf("Email channel selected but user %d has no address; using desktop notifications", userID)
	}
	return notify.NewDesktopNotifier()
}
