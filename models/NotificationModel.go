package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotificationMessage = "message"
	NotificationRequest = "request"

	NotificationUnread   = "unread"
	NotificationRead     = "read"
	NotificationArchived = "archived"
)

type Notification struct {
	ID        primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Recipient primitive.ObjectID  `json:"recipient" bson:"recipient"`
	Type      string              `json:"type" bson:"type"`
	From      *primitive.ObjectID `json:"from,omitempty" bson:"from,omitempty"`
	Event     *primitive.ObjectID `json:"event,omitempty" bson:"event,omitempty"`
	Message   *primitive.ObjectID `json:"message,omitempty" bson:"message,omitempty"`
	Request   *primitive.ObjectID `json:"request,omitempty" bson:"request,omitempty"`
	Status    string              `json:"status" bson:"status"`
	Content   string              `json:"content" bson:"content"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type NotificationInput struct {
	Recipient primitive.ObjectID  `json:"recipient" validate:"required"`
	Type      string              `json:"type" validate:"required,oneof=message request"`
	From      *primitive.ObjectID `json:"from"`
	Event     *primitive.ObjectID `json:"event"`
	Message   *primitive.ObjectID `json:"message"`
	Request   *primitive.ObjectID `json:"request"`
	Status    string              `json:"status" validate:"omitempty,oneof=unread read archived"`
	Content   string              `json:"content" validate:"required"`
}

func (in NotificationInput) Build() Notification {
	status := in.Status
	if status == "" {
		status = NotificationUnread
	}
	return Notification{
		Recipient: in.Recipient,
		Type:      in.Type,
		From:      in.From,
		Event:     in.Event,
		Message:   in.Message,
		Request:   in.Request,
		Status:    status,
		Content:   in.Content,
	}
}

type NotificationPatch struct {
	Recipient *primitive.ObjectID `json:"recipient" bson:"recipient,omitempty"`
	Type      *string             `json:"type" bson:"type,omitempty" validate:"omitempty,oneof=message request"`
	From      *primitive.ObjectID `json:"from" bson:"from,omitempty"`
	Event     *primitive.ObjectID `json:"event" bson:"event,omitempty"`
	Message   *primitive.ObjectID `json:"message" bson:"message,omitempty"`
	Request   *primitive.ObjectID `json:"request" bson:"request,omitempty"`
	Status    *string             `json:"status" bson:"status,omitempty" validate:"omitempty,oneof=unread read archived"`
	Content   *string             `json:"content" bson:"content,omitempty" validate:"omitempty,min=1"`
}
