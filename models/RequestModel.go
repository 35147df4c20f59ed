package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RequestPending   = "pending"
	RequestAccepted  = "accepted"
	RequestRejected  = "rejected"
	RequestCancelled = "cancelled"
)

// Request is a user's ask to join an event, addressed to the event creator.
type Request struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Event           primitive.ObjectID `json:"event" bson:"event"`
	From            primitive.ObjectID `json:"from" bson:"from"`
	To              primitive.ObjectID `json:"to" bson:"to"`
	Status          string             `json:"status" bson:"status"`
	Message         string             `json:"message,omitempty" bson:"message,omitempty"`
	ResponseMessage string             `json:"responseMessage,omitempty" bson:"responseMessage,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type RequestInput struct {
	Event           primitive.ObjectID `json:"event" validate:"required"`
	From            primitive.ObjectID `json:"from" validate:"required"`
	To              primitive.ObjectID `json:"to" validate:"required"`
	Status          string             `json:"status" validate:"omitempty,oneof=pending accepted rejected cancelled"`
	Message         string             `json:"message"`
	ResponseMessage string             `json:"responseMessage"`
}

func (in RequestInput) Build() Request {
	status := in.Status
	if status == "" {
		status = RequestPending
	}
	return Request{
		Event:           in.Event,
		From:            in.From,
		To:              in.To,
		Status:          status,
		Message:         in.Message,
		ResponseMessage: in.ResponseMessage,
	}
}

type RequestPatch struct {
	Event           *primitive.ObjectID `json:"event" bson:"event,omitempty"`
	From            *primitive.ObjectID `json:"from" bson:"from,omitempty"`
	To              *primitive.ObjectID `json:"to" bson:"to,omitempty"`
	Status          *string             `json:"status" bson:"status,omitempty" validate:"omitempty,oneof=pending accepted rejected cancelled"`
	Message         *string             `json:"message" bson:"message,omitempty"`
	ResponseMessage *string             `json:"responseMessage" bson:"responseMessage,omitempty"`
}
