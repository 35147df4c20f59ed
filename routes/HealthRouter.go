package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HealthRouter(incomingRoutes *gin.Engine, metricsHandler http.Handler) {
	incomingRoutes.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	incomingRoutes.GET("/metrics", gin.WrapH(metricsHandler))
}
