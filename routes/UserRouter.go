package routes

import (
	"github.com/gin-gonic/gin"

	"matchup/controllers"
)

type UserControllers struct {
	Users         *controllers.UserController
	Messages      *controllers.MessageController
	Notifications *controllers.NotificationController
	Media         *controllers.MediaController
}

func UserRouter(incomingRoutes *gin.RouterGroup, ctl UserControllers, requireAuth gin.HandlerFunc) {
	users := incomingRoutes.Group("/users")

	users.GET("", ctl.Users.GetAllUsers)
	users.GET("/search/:name", ctl.Users.SearchUsers)
	users.GET("/:id", ctl.Users.GetUserById)
	users.GET("/:id/events", ctl.Users.GetUserEvents)

	// caller's own account
	me := users.Group("", requireAuth)
	me.GET("/events", ctl.Users.GetMyEvents)
	me.GET("/messages", ctl.Messages.GetMyMessages)
	me.POST("/messages", ctl.Messages.SendMessage)
	me.GET("/notifications", ctl.Notifications.GetMyNotifications)
	me.PATCH("/notifications/:id", ctl.Notifications.ToggleRead)
	me.POST("/picture", ctl.Media.UploadPicture)
	me.PUT("", ctl.Users.UpdateMe)
	me.PATCH("", ctl.Users.PatchMe)
	me.DELETE("", ctl.Users.DeleteMe)
}
