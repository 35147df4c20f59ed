package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"matchup/helper"
	"matchup/models"
	"matchup/services"
)

type MessageController struct {
	*CrudController[models.Message, models.MessageInput, models.MessagePatch]
	messages *services.MessageService
	users    *services.UserService
}

func NewMessageController(messages *services.MessageService, users *services.UserService) *MessageController {
	return &MessageController{
		CrudController: NewCrudController[models.Message, models.MessageInput, models.MessagePatch](messages),
		messages:       messages,
		users:          users,
	}
}

// GetMyMessages lists the messages addressed to the caller.
func (ctl *MessageController) GetMyMessages(c *gin.Context) {
	id, err := helper.CurrentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ctx, cancel := opContext(c)
	defer cancel()

	messages, err := ctl.users.ReceivedMessages(ctx, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// SendMessage stores a message with the caller as sender.
func (ctl *MessageController) SendMessage(c *gin.Context) {
	id, err := helper.CurrentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	var in models.MessageInput
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := opContext(c)
	defer cancel()

	msg, err := ctl.messages.Send(ctx, id, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
