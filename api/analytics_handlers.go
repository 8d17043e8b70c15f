package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AndrewOch/ClapperRoughCutBackend/internal/jobs"
)

// workerMetricsProvider is implemented by engines that expose their worker pool.
type workerMetricsProvider interface {
	WorkerMetrics() jobs.MetricsData
}

// GetAnalyticsHandler handles the request to get analytics data
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.analytics.GetDashboardData())
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	response := gin.H{
		"status":    "healthy",
		"service":   "roughcut",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
		"scripts":   len(api.engine.ListScripts()),
	}
	if provider, ok := api.engine.(workerMetricsProvider); ok {
		response["workers"] = provider.WorkerMetrics()
	}
	c.JSON(http.StatusOK, response)
}
