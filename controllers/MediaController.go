package controllers

import (
	"bufio"
	"net/http"

	"github.com/gin-gonic/gin"

	"matchup/helper"
	"matchup/services"
)

type MediaController struct {
	media *services.MediaService
}

func NewMediaController(media *services.MediaService) *MediaController {
	return &MediaController{media: media}
}

// UploadPicture stores the multipart `picture` file as the caller's profile picture.
func (ctl *MediaController) UploadPicture(c *gin.Context) {
	id, err := helper.CurrentUserID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxPictureSize+1<<20)
	file, err := c.FormFile("picture")
	if err != nil {
		_ = c.Error(&helper.AppError{Status: http.StatusBadRequest, Message: "picture file is required", Err: err})
		return
	}

	src, err := file.Open()
	if err != nil {
		_ = c.Error(helper.BadRequest(err.Error()))
		return
	}
	defer src.Close()

	ctx, cancel := opContext(c)
	defer cancel()

	user, err := ctl.media.UploadProfilePicture(ctx, id, file.Filename, file.Size, src)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetImage streams a stored image with a sniffed content type.
func (ctl *MediaController) GetImage(c *gin.Context) {
	ctx, cancel := opContext(c)
	defer cancel()

	file, err := ctl.media.OpenImage(ctx, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer file.Close()

	br := bufio.NewReaderSize(file, 512)
	head, _ := br.Peek(512)
	c.DataFromReader(http.StatusOK, -1, http.DetectContentType(head), br, nil)
}
