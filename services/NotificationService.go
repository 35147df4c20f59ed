package services

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"matchup/database"
	"matchup/helper"
	"matchup/metrics"
	"matchup/models"
)

const notificationResource = "Notification"

// Notifier delivers a stored notification to its recipient's live sessions.
type Notifier interface {
	Notify(recipient primitive.ObjectID, n models.Notification)
}

type NotificationService struct {
	*Crud[models.Notification, models.NotificationInput, models.NotificationPatch]
	notifier Notifier
	metrics  *metrics.Metrics
}

func NewNotificationService(repo database.Repository[models.Notification], m *metrics.Metrics, log zerolog.Logger) *NotificationService {
	s := &NotificationService{
		Crud:    NewCrud[models.Notification, models.NotificationInput, models.NotificationPatch](notificationResource, repo, log),
		metrics: m,
	}
	s.OnCreate(s.deliver)
	return s
}

// SetNotifier attaches the push channel. Until one is set notifications are
// only stored.
func (s *NotificationService) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *NotificationService) deliver(_ context.Context, n models.Notification) error {
	if s.metrics != nil {
		s.metrics.NotificationCreated(n.Type)
	}
	if s.notifier != nil {
		s.notifier.Notify(n.Recipient, n)
	}
	return nil
}

// ForRecipient lists a user's notifications, newest first.
func (s *NotificationService) ForRecipient(ctx context.Context, userID string) ([]models.Notification, error) {
	oid, err := ParseID(userResource, userID)
	if err != nil {
		return nil, err
	}
	ns, err := findRelated(ctx, s.repo, notificationResource, bson.M{"recipient": oid})
	if err != nil {
		return nil, err
	}
	sortNewestFirst(ns)
	return ns, nil
}

// ToggleRead flips a notification between read and unread. Archived
// notifications become read. Only the recipient may toggle.
func (s *NotificationService) ToggleRead(ctx context.Context, userID, id string) (models.Notification, error) {
	n, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Notification{}, err
	}
	if n.Recipient.Hex() != userID {
		return models.Notification{}, helper.Forbidden("Not allowed to modify this notification.")
	}

	next := models.NotificationRead
	if n.Status == models.NotificationRead {
		next = models.NotificationUnread
	}
	updated, err := s.repo.Update(ctx, n.ID, bson.M{"status": next})
	if err != nil {
		return models.Notification{}, s.translate(err, id)
	}
	return updated, nil
}
