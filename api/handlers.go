package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/AndrewOch/ClapperRoughCutBackend/internal/analytics"
	"github.com/AndrewOch/ClapperRoughCutBackend/services"
)

// API holds dependencies for API handlers, primarily the matching engine.
type API struct {
	engine    services.Engine
	analytics *analytics.Service
	logger    *slog.Logger
}

// NewAPI creates a new API handler structure. A nil analytics service gets an
// in-memory one.
func NewAPI(engine services.Engine, analyticsService *analytics.Service, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	if analyticsService == nil {
		analyticsService = analytics.NewService(engine, "", logger)
	}
	return &API{
		engine:    engine,
		analytics: analyticsService,
		logger:    logger.With("component", "api"),
	}
}

// RouterOptions configures the middleware chain.
type RouterOptions struct {
	MaxBodyBytes int64
}

// NewRouter builds a gin engine with the standard middleware chain and every route.
func NewRouter(api *API, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggerMiddleware(api.logger))
	router.Use(CORSMiddleware())
	if opts.MaxBodyBytes > 0 {
		router.Use(RequestSizeLimitMiddleware(opts.MaxBodyBytes))
	}
	SetupRoutes(router, api)
	return router
}

// SetupRoutes defines all the API routes for the matching service.
func SetupRoutes(router *gin.Engine, api *API) {
	// Health check route
	router.GET("/health", api.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", api.GetAnalyticsHandler)

	// Script management routes
	scriptRoutes := router.Group("/scripts")
	{
		scriptRoutes.GET("", api.ListScriptsHandler)                              // List all scripts
		scriptRoutes.PUT("/:scriptId", api.PutScriptHandler)                      // Create or reconcile a script
		scriptRoutes.GET("/:scriptId", api.GetScriptHandler)                      // Get script summary
		scriptRoutes.DELETE("/:scriptId", api.DeleteScriptHandler)                // Delete script
		scriptRoutes.GET("/:scriptId/statistics", api.GetScriptStatisticsHandler) // Class statistics

		// Matching routes per script
		scriptRoutes.POST("/:scriptId/match_phrases", api.MatchPhrasesHandler)
		scriptRoutes.POST("/:scriptId/match_actions", api.MatchActionsHandler)
	}

	// Free text comparison routes
	compareRoutes := router.Group("/compare")
	{
		compareRoutes.POST("/longest_run", api.LongestRunHandler) // Longest shared word run
		compareRoutes.POST("/run_lengths", api.RunLengthsHandler) // Every shared run of two or more words
	}
}
