// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP handlers. A nil controller leaves its routes
// unregistered.
type Controllers struct {
	Health    *controller.HealthController
	Auth      *controller.AuthController
	User      *controller.UserController
	Category  *controller.CategoryController
	Expense   *controller.ExpenseController
	Settings  *controller.SettingsController
	Dashboard *controller.DashboardController
	Report    *controller.ReportController
	Note      *controller.NoteController
	Reminder  *controller.ReminderController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine          *gin.Engine
	controllers     Controllers
	authRateLimiter *middleware.RateLimiter
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	authRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		controllers:     controllers,
		authRateLimiter: authRateLimiter,
		authMiddleware:  authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test", "e2e":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), middleware.RequestLogger())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	if r.controllers.Health != nil {
		r.engine.GET("/health", r.controllers.Health.Check)
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	c := r.controllers
	v1 := r.engine.Group("/api/v1")

	if c.Auth != nil {
		limited := gin.HandlerFunc(func(ctx *gin.Context) { ctx.Next() })
		if r.authRateLimiter != nil {
			limited = r.authRateLimiter.Middleware()
		}
		auth := v1.Group("/auth")
		{
			auth.POST("/register", limited, c.Auth.Register)
			auth.POST("/login", limited, c.Auth.Login)
			auth.POST("/refresh", c.Auth.RefreshToken)
			auth.POST("/logout", c.Auth.Logout)
			auth.POST("/forgot-password", limited, c.Auth.ForgotPassword)
			auth.POST("/reset-password", c.Auth.ResetPassword)
		}
	}

	// Everything below requires a bearer token
	if r.authMiddleware == nil {
		return
	}
	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	if c.User != nil {
		protected.DELETE("/users/me", c.User.DeleteAccount)
	}

	if c.Category != nil {
		protected.GET("/categories", c.Category.List)
	}

	if c.Expense != nil {
		expenses := protected.Group("/expenses")
		{
			expenses.GET("", c.Expense.List)
			expenses.POST("", c.Expense.Create)
			expenses.POST("/voice", c.Expense.CreateFromVoice)
			expenses.DELETE("/:id", c.Expense.Delete)
		}
	}

	if c.Settings != nil {
		settings := protected.Group("/settings")
		{
			settings.GET("", c.Settings.Get)
			settings.PATCH("", c.Settings.Update)
			settings.POST("/fixed-expenses", c.Settings.AddFixedExpense)
			settings.PUT("/fixed-expenses/:id", c.Settings.UpdateFixedExpense)
			settings.DELETE("/fixed-expenses/:id", c.Settings.RemoveFixedExpense)
		}
	}

	if c.Dashboard != nil {
		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/categories", c.Dashboard.GetCategoryBreakdown)
			dashboard.GET("/summary", c.Dashboard.GetPeriodSummary)
			dashboard.GET("/yearly", c.Dashboard.GetYearlyOverview)
			dashboard.GET("/years", c.Dashboard.GetSelectableYears)
		}
	}

	if c.Report != nil {
		protected.POST("/reports/monthly-summary", c.Report.SendMonthlySummary)
	}

	if c.Note != nil {
		notes := protected.Group("/notes")
		{
			notes.GET("", c.Note.List)
			notes.POST("", c.Note.Create)
			notes.PUT("/:id", c.Note.Update)
			notes.DELETE("/:id", c.Note.Delete)
		}
	}

	if c.Reminder != nil {
		reminders := protected.Group("/reminders/water")
		{
			reminders.GET("", c.Reminder.Get)
			reminders.PUT("", c.Reminder.Update)
			reminders.GET("/status", c.Reminder.Status)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
