package routes

import (
	"github.com/gin-gonic/gin"

	"matchup/controllers"
)

func HubRouter(incomingRoutes *gin.RouterGroup, hub *controllers.Hub, media *controllers.MediaController, requireAuth gin.HandlerFunc) {
	incomingRoutes.GET("/ws", requireAuth, hub.HandleWS)
	incomingRoutes.GET("/images/:id", media.GetImage)
}
