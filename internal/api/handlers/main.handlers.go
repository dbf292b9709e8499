package routes

import (
	"github.com/gin-gonic/gin"

	"navtrack/internal/service/route"
)

// SetupMainHandlers registers the main application endpoints
func SetupMainHandlers(router *gin.RouterGroup, config map[string]string) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "navtrack",
			"port":    config["port"],
			"unit":    config["defaultUnit"],
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"routes": route.GetRouteService().RouteCount(),
		})
	})
}
