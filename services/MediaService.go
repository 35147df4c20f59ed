package services

import (
	"context"
	"errors"
	"io"

	"matchup/database"
	"matchup/helper"
	"matchup/models"
)

const MaxPictureSize = 5 << 20

// ImageStore keeps uploaded image bytes.
type ImageStore interface {
	Upload(ctx context.Context, filename string, src io.Reader) (string, error)
	Open(ctx context.Context, id string) (io.ReadCloser, error)
}

type MediaService struct {
	images ImageStore
	users  *UserService
}

func NewMediaService(images ImageStore, users *UserService) *MediaService {
	return &MediaService{images: images, users: users}
}

// UploadProfilePicture stores the image and points the user's profile at it.
func (s *MediaService) UploadProfilePicture(ctx context.Context, userID, filename string, size int64, src io.Reader) (models.User, error) {
	if size > MaxPictureSize {
		return models.User{}, helper.BadRequest("picture must be at most 5 MiB")
	}
	if _, err := ParseID(userResource, userID); err != nil {
		return models.User{}, err
	}

	id, err := s.images.Upload(ctx, filename, io.LimitReader(src, MaxPictureSize))
	if err != nil {
		return models.User{}, helper.Internal("Could not store picture.", err)
	}
	return s.users.SetProfilePicture(ctx, userID, ImageURL(id))
}

func (s *MediaService) OpenImage(ctx context.Context, id string) (io.ReadCloser, error) {
	rc, err := s.images.Open(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, helper.NotFound("Image", id)
	}
	if err != nil {
		return nil, err
	}
	return rc, nil
}

func ImageURL(id string) string {
	return "/api/images/" + id
}
