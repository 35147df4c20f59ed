package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Message struct {
	ID        primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Sender    primitive.ObjectID  `json:"sender" bson:"sender"`
	Recipient primitive.ObjectID  `json:"recipient" bson:"recipient"`
	Event     *primitive.ObjectID `json:"event,omitempty" bson:"event,omitempty"`
	Subject   string              `json:"subject" bson:"subject"`
	Content   string              `json:"content" bson:"content"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type MessageInput struct {
	Sender    primitive.ObjectID  `json:"sender" validate:"required"`
	Recipient primitive.ObjectID  `json:"recipient" validate:"required"`
	Event     *primitive.ObjectID `json:"event"`
	Subject   string              `json:"subject" validate:"required"`
	Content   string              `json:"content" validate:"required"`
}

func (in MessageInput) Build() Message {
	return Message{
		Sender:    in.Sender,
		Recipient: in.Recipient,
		Event:     in.Event,
		Subject:   in.Subject,
		Content:   in.Content,
	}
}

type MessagePatch struct {
	Sender    *primitive.ObjectID `json:"sender" bson:"sender,omitempty"`
	Recipient *primitive.ObjectID `json:"recipient" bson:"recipient,omitempty"`
	Event     *primitive.ObjectID `json:"event" bson:"event,omitempty"`
	Subject   *string             `json:"subject" bson:"subject,omitempty" validate:"omitempty,min=1"`
	Content   *string             `json:"content" bson:"content,omitempty" validate:"omitempty,min=1"`
}
