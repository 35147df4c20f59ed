package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"matchup/helper"
	"matchup/models"
	"matchup/services"
)

type NotificationController struct {
	*CrudController[models.Notification, models.NotificationInput, models.NotificationPatch]
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{
		CrudController: NewCrudController[models.Notification, models.NotificationInput, models.NotificationPatch](notifications),
		notifications:  notifications,
	}
}

func (ctl *NotificationController) GetMyNotifications(c *gin.Context) {
	id, err := helper.CurrentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ctx, cancel := opContext(c)
	defer cancel()

	notifications, err := ctl.notifications.ForRecipient(ctx, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (ctl *NotificationController) ToggleRead(c *gin.Context) {
	id, err := helper.CurrentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ctx, cancel := opContext(c)
	defer cancel()

	n, err := ctl.notifications.ToggleRead(ctx, id, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, n)
}
