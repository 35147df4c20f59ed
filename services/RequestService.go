package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"matchup/database"
	"matchup/models"
)

const (
	requestResource       = "Request"
	defaultRequestContent = "New request to join your event."
)

// RequestService stores join requests and notifies the addressee.
type RequestService struct {
	*Crud[models.Request, models.RequestInput, models.RequestPatch]
	notifications *NotificationService
}

func NewRequestService(repo database.Repository[models.Request], notifications *NotificationService, log zerolog.Logger) *RequestService {
	s := &RequestService{
		Crud:          NewCrud[models.Request, models.RequestInput, models.RequestPatch](requestResource, repo, log),
		notifications: notifications,
	}
	s.OnCreate(s.notifyAddressee)
	return s
}

func (s *RequestService) notifyAddressee(ctx context.Context, r models.Request) error {
	id, from, event := r.ID, r.From, r.Event
	content := r.Message
	if content == "" {
		content = defaultRequestContent
	}
	_, err := s.notifications.Create(ctx, models.NotificationInput{
		Recipient: r.To,
		Type:      models.NotificationRequest,
		From:      &from,
		Event:     &event,
		Request:   &id,
		Content:   content,
	})
	if err != nil {
		return fmt.Errorf("notify request addressee: %w", err)
	}
	return nil
}
