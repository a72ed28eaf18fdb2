package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LucasFJU/portfolio-flow-ai/internal/config"
	"github.com/LucasFJU/portfolio-flow-ai/internal/http/handlers"
	"github.com/LucasFJU/portfolio-flow-ai/internal/http/middleware"
	"github.com/LucasFJU/portfolio-flow-ai/internal/service"
)

// SetupRouter собирает все маршруты приложения.
func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	projectHandler *handlers.ProjectHandler,
	proposalHandler *handlers.ProposalHandler,
	settingsHandler *handlers.SettingsHandler,
	portfolioHandler *handlers.PortfolioHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	aiHandler *handlers.AIHandler,
	mediaHandler *handlers.MediaHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	// Публичная HTML страница портфолио.
	r.GET("/p/:username", portfolioHandler.GetPage)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authRateLimit := middleware.RateLimitMiddleware(5, cfg.RateLimitPeriod)
	authGroup.Use(authRateLimit)
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Публичные маршруты: страница портфолио, шаринг предложений, форма заявки.
	publicRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	api.GET("/ws", wsHandler.Handle)
	api.GET("/portfolio/:username", portfolioHandler.GetJSON)
	api.POST("/portfolio/:username/leads", publicRateLimit, portfolioHandler.CreateLead)
	api.POST("/portfolio/:username/events", publicRateLimit, portfolioHandler.TrackEvent)
	api.GET("/proposals/shared/:token", proposalHandler.GetShared)
	api.POST("/proposals/shared/:token/respond", publicRateLimit, proposalHandler.Respond)

	// Защищённые маршруты кабинета.
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/profile", profileHandler.GetMe)
		protected.PUT("/profile", profileHandler.UpdateMe)
		protected.POST("/profile/upgrade", profileHandler.UpgradePlan)

		protected.GET("/projects", projectHandler.List)
		protected.POST("/projects", projectHandler.Create)
		protected.POST("/projects/quick", projectHandler.QuickCreate)
		protected.PUT("/projects/order", projectHandler.Reorder)
		protected.GET("/projects/:id", middleware.UUIDValidator("id"), projectHandler.Get)
		protected.PUT("/projects/:id", middleware.UUIDValidator("id"), projectHandler.Update)
		protected.DELETE("/projects/:id", middleware.UUIDValidator("id"), projectHandler.Delete)

		protected.GET("/proposals", proposalHandler.List)
		protected.POST("/proposals", proposalHandler.Create)
		protected.GET("/proposals/:id", middleware.UUIDValidator("id"), proposalHandler.Get)
		protected.PUT("/proposals/:id", middleware.UUIDValidator("id"), proposalHandler.Update)
		protected.DELETE("/proposals/:id", middleware.UUIDValidator("id"), proposalHandler.Delete)
		protected.POST("/proposals/:id/publish", middleware.UUIDValidator("id"), proposalHandler.Publish)
		protected.POST("/proposals/:id/duplicate", middleware.UUIDValidator("id"), proposalHandler.Duplicate)

		protected.GET("/settings", settingsHandler.Get)
		protected.PUT("/settings", settingsHandler.Save)

		protected.GET("/analytics/summary", analyticsHandler.Summary)
		protected.GET("/leads", analyticsHandler.ListLeads)

		protected.POST("/ai/generate", aiHandler.Generate)

		protected.POST("/media", mediaHandler.Upload)
		protected.GET("/media", mediaHandler.List)
		protected.DELETE("/media/:id", middleware.UUIDValidator("id"), mediaHandler.Delete)
	}

	return r
}
