package routes

import (
	"github.com/gin-gonic/gin"

	"matchup/controllers"
)

func AuthRouter(incomingRoutes *gin.RouterGroup, ctl *controllers.AuthController, requireAuth, limit gin.HandlerFunc) {
	auth := incomingRoutes.Group("/auth")
	auth.POST("/register", ctl.Register)
	auth.POST("/login", limit, ctl.Login)
	auth.POST("/logout", ctl.Logout)
	auth.GET("/me", requireAuth, ctl.Me)
	auth.POST("/send-otp", limit, ctl.SendOTP)
	auth.POST("/verify-otp", limit, ctl.VerifyOTP)
}
