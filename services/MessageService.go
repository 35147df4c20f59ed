package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"matchup/database"
	"matchup/models"
)

const messageResource = "Message"

// MessageService stores messages and notifies the recipient of each new one.
// A message whose notification cannot be stored is removed again.
type MessageService struct {
	*Crud[models.Message, models.MessageInput, models.MessagePatch]
	notifications *NotificationService
}

func NewMessageService(repo database.Repository[models.Message], notifications *NotificationService, log zerolog.Logger) *MessageService {
	s := &MessageService{
		Crud:          NewCrud[models.Message, models.MessageInput, models.MessagePatch](messageResource, repo, log),
		notifications: notifications,
	}
	s.OnCreate(s.notifyRecipient)
	return s
}

func (s *MessageService) notifyRecipient(ctx context.Context, m models.Message) error {
	id := m.ID
	sender := m.Sender
	_, err := s.notifications.Create(ctx, models.NotificationInput{
		Recipient: m.Recipient,
		Type:      models.NotificationMessage,
		From:      &sender,
		Event:     m.Event,
		Message:   &id,
		Content:   m.Content,
	})
	if err != nil {
		return fmt.Errorf("notify message recipient: %w", err)
	}
	return nil
}

// Send stores a message from the given user.
func (s *MessageService) Send(ctx context.Context, senderID string, in models.MessageInput) (models.Message, error) {
	sender, err := ParseID(userResource, senderID)
	if err != nil {
		return models.Message{}, err
	}
	in.Sender = sender
	return s.Create(ctx, in)
}
