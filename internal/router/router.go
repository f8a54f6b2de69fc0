// Package router assembles the gin engine: middleware, pages and routes.
package router

import (
	"fmt"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/yukikurage/todo-web/internal/constants"
	"github.com/yukikurage/todo-web/internal/handlers"
	"github.com/yukikurage/todo-web/internal/middleware"
	"github.com/yukikurage/todo-web/internal/repository"
	"github.com/yukikurage/todo-web/internal/services"
	"github.com/yukikurage/todo-web/internal/validation"
	"github.com/yukikurage/todo-web/internal/web"
	"gorm.io/gorm"
)

// Deps are the collaborators the routes need.
type Deps struct {
	DB           *gorm.DB
	Logger       zerolog.Logger
	SessionStore sessions.Store
	// Redis backs the login rate limiter; nil disables limiting.
	Redis           redis.Cmdable
	LoginRateLimit  int
	LoginRateWindow time.Duration
	// HashCost overrides the bcrypt cost when non-zero.
	HashCost int
}

// Setup builds the application's HTTP handler.
func Setup(deps Deps) (*gin.Engine, error) {
	if err := validation.Register(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	taskRepo := repository.NewTaskRepository(deps.DB)
	userRepo := repository.NewUserRepository(deps.DB)

	taskService := services.NewTaskService(taskRepo)
	authService := services.NewAuthService(userRepo)
	if deps.HashCost != 0 {
		authService.WithHashCost(deps.HashCost)
	}

	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(authService, taskService)
	taskHandler := handlers.NewTaskHandler(taskService)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	loginLimiter := middleware.NewRateLimiter(deps.Redis, deps.LoginRateLimit, deps.LoginRateWindow, "/login?blocked")

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(
		middleware.RequestLogger(deps.Logger),
		middleware.Recovery(),
		middleware.Metrics(),
		sessions.Sessions(constants.SessionCookieName, deps.SessionStore),
	)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public pages
	r.GET("/", authHandler.Home)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", loginLimiter.Middleware(), authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.POST("/logout", authHandler.Logout)
	r.GET("/register", authHandler.RegisterPage)
	r.POST("/register/save", authHandler.Register)

	// Signed-in pages
	authed := r.Group("")
	authed.Use(middleware.RequireAuth(authService))
	{
		authed.GET("/profile", profileHandler.ShowProfile)
		authed.POST("/profile/update", profileHandler.UpdatePassword)

		tasks := authed.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/export", taskHandler.ExportTasks)
			tasks.GET("/profile", profileHandler.ShowProfile)
			tasks.POST("/profile/update", profileHandler.UpdatePassword)
			tasks.GET("/:id/edit", middleware.RequireOwnedTask(taskService), taskHandler.EditTask)
			// ownership is decided by the service so the outcome can be masked
			tasks.POST("/:id/update", taskHandler.UpdateTask)
			tasks.POST("/:id/delete", taskHandler.DeleteTask)
		}
	}

	return r, nil
}
