// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/playbookTV/Kora/internal/integration/entrypoint/controller"
	"github.com/playbookTV/Kora/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	profileController     *controller.ProfileController
	transactionController *controller.TransactionController
	insightController     *controller.InsightController
	patternController     *controller.PatternController
	alertController       *controller.AlertController
	advisorController     *controller.AdvisorController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	profileController *controller.ProfileController,
	transactionController *controller.TransactionController,
	insightController *controller.InsightController,
	patternController *controller.PatternController,
	alertController *controller.AlertController,
	advisorController *controller.AdvisorController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		profileController:     profileController,
		transactionController: transactionController,
		insightController:     insightController,
		patternController:     patternController,
		alertController:       alertController,
		advisorController:     advisorController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		if r.profileController != nil && r.authMiddleware != nil {
			profile := v1.Group("/profile")
			profile.Use(r.authMiddleware.Authenticate())
			{
				profile.GET("", r.profileController.Get)
				profile.PATCH("", r.profileController.Update)
				profile.POST("/expenses", r.profileController.AddExpense)
				profile.PUT("/expenses/:id", r.profileController.UpdateExpense)
				profile.DELETE("/expenses/:id", r.profileController.DeleteExpense)
			}
		}

		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.LogSpend)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		if r.insightController != nil && r.authMiddleware != nil {
			insights := v1.Group("/insights")
			insights.Use(r.authMiddleware.Authenticate())
			{
				insights.GET("/state", r.insightController.GetState)
			}
		}

		if r.patternController != nil && r.authMiddleware != nil {
			patterns := v1.Group("/patterns")
			patterns.Use(r.authMiddleware.Authenticate())
			{
				patterns.GET("", r.patternController.Get)
				patterns.POST("/refresh", r.patternController.Refresh)
				patterns.POST("/close-day", r.patternController.CloseDay)
			}
		}

		if r.alertController != nil && r.authMiddleware != nil {
			alerts := v1.Group("/alerts")
			alerts.Use(r.authMiddleware.Authenticate())
			{
				alerts.POST("/evaluate", r.alertController.Evaluate)
				alerts.POST("/follow-up", r.alertController.FollowUp)
				alerts.GET("/history", r.alertController.History)
			}
		}

		if r.advisorController != nil && r.authMiddleware != nil {
			advisor := v1.Group("/advisor")
			advisor.Use(r.authMiddleware.Authenticate())
			{
				advisor.POST("/ask", r.advisorController.Ask)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
