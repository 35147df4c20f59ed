package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"matchup/helper"
	"matchup/models"
	"matchup/services"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

func (ctl *UserController) GetAllUsers(c *gin.Context) {
	ctx, cancel := opContext(c)
	defer cancel()

	users, err := ctl.users.GetAll(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ctl *UserController) GetUserById(c *gin.Context) {
	ctx, cancel := opContext(c)
	defer cancel()

	user, err := ctl.users.GetByID(ctx, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctl *UserController) SearchUsers(c *gin.Context) {
	ctx, cancel := opContext(c)
	defer cancel()

	users, err := ctl.users.Search(ctx, c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUserEvents lists the events created by the user in the path.
func (ctl *UserController) GetUserEvents(c *gin.Context) {
	ctl.createdEvents(c, c.Param("id"))
}

// GetMyEvents lists the events created by the caller.
func (ctl *UserController) GetMyEvents(c *gin.Context) {
	id, err := helper.CurrentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ctl.createdEvents(c, id)
}

func (ctl *UserController) createdEvents(c *gin.Context, id string) {
	ctx, cancel := opContext(c)
	defer cancel()

	events, err := ctl.users.CreatedEvents(ctx, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (ctl *UserController) UpdateMe(c *gin.Context) {
	id, err := helper.CurrentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	var in models.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := opContext(c)
	defer cancel()

	user, err := ctl.users.Update(ctx, id, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctl *UserController) PatchMe(c *gin.Context) {
	id, err := helper.CurrentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	var patch models.UserPatch
	if !bindJSON(c, &patch) {
		return
	}
	ctx, cancel := opContext(c)
	defer cancel()

	user, err := ctl.users.Patch(ctx, id, patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctl *UserController) DeleteMe(c *gin.Context) {
	id, err := helper.CurrentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ctx, cancel := opContext(c)
	defer cancel()

	if err := ctl.users.Delete(ctx, id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
