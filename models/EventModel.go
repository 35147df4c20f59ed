package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventOpen      = "open"
	EventClosed    = "closed"
	EventCancelled = "cancelled"
	EventFull      = "full"
)

type Event struct {
	ID                   primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Title                string               `json:"title" bson:"title"`
	Description          string               `json:"description,omitempty" bson:"description,omitempty"`
	Hobby                primitive.ObjectID   `json:"hobby" bson:"hobby"`
	Creator              primitive.ObjectID   `json:"creator" bson:"creator"`
	Location             GeoPoint             `json:"location" bson:"location"`
	Address              string               `json:"address" bson:"address"`
	Time                 time.Time            `json:"time" bson:"time"`
	Duration             int                  `json:"duration" bson:"duration"`
	MinParticipants      int                  `json:"minParticipants" bson:"minParticipants"`
	MaxParticipants      int                  `json:"maxParticipants" bson:"maxParticipants"`
	AcceptedParticipants []primitive.ObjectID `json:"acceptedParticipants" bson:"acceptedParticipants"`
	PendingParticipants  []primitive.ObjectID `json:"pendingParticipants" bson:"pendingParticipants"`
	Status               string               `json:"status" bson:"status"`
	IsPrivate            bool                 `json:"isPrivate" bson:"isPrivate"`
	CreatedAt            time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt" bson:"updatedAt"`
}

type EventInput struct {
	Title                string               `json:"title" validate:"required"`
	Description          string               `json:"description"`
	Hobby                primitive.ObjectID   `json:"hobby" validate:"required"`
	Creator              primitive.ObjectID   `json:"creator" validate:"required"`
	Location             GeoPoint             `json:"location"`
	Address              string               `json:"address" validate:"required"`
	Time                 time.Time            `json:"time" validate:"required"`
	Duration             int                  `json:"duration" validate:"required,min=1"`
	MinParticipants      *int                 `json:"minParticipants" validate:"required,min=0"`
	MaxParticipants      int                  `json:"maxParticipants" validate:"required,min=1,gtefield=MinParticipants"`
	AcceptedParticipants []primitive.ObjectID `json:"acceptedParticipants"`
	PendingParticipants  []primitive.ObjectID `json:"pendingParticipants"`
	Status               string               `json:"status" validate:"omitempty,oneof=open closed cancelled full"`
	IsPrivate            bool                 `json:"isPrivate"`
}

// Build fills the defaults a stored event must carry. It expects a validated
// input, so MinParticipants is set.
func (in EventInput) Build() Event {
	if in.AcceptedParticipants == nil {
		in.AcceptedParticipants = []primitive.ObjectID{}
	}
	if in.PendingParticipants == nil {
		in.PendingParticipants = []primitive.ObjectID{}
	}
	if in.Status == "" {
		in.Status = EventOpen
	}
	return Event{
		Title:                in.Title,
		Description:          in.Description,
		Hobby:                in.Hobby,
		Creator:              in.Creator,
		Location:             in.Location.orDefault(),
		Address:              in.Address,
		Time:                 in.Time,
		Duration:             in.Duration,
		MinParticipants:      *in.MinParticipants,
		MaxParticipants:      in.MaxParticipants,
		AcceptedParticipants: in.AcceptedParticipants,
		PendingParticipants:  in.PendingParticipants,
		Status:               in.Status,
		IsPrivate:            in.IsPrivate,
	}
}

type EventPatch struct {
	Title                *string               `json:"title" bson:"title,omitempty" validate:"omitempty,min=1"`
	Description          *string               `json:"description" bson:"description,omitempty"`
	Hobby                *primitive.ObjectID   `json:"hobby" bson:"hobby,omitempty"`
	Creator              *primitive.ObjectID   `json:"creator" bson:"creator,omitempty"`
	Location             *GeoPoint             `json:"location" bson:"location,omitempty"`
	Address              *string               `json:"address" bson:"address,omitempty" validate:"omitempty,min=1"`
	Time                 *time.Time            `json:"time" bson:"time,omitempty"`
	Duration             *int                  `json:"duration" bson:"duration,omitempty" validate:"omitempty,min=1"`
	MinParticipants      *int                  `json:"minParticipants" bson:"minParticipants,omitempty" validate:"omitempty,min=0"`
	MaxParticipants      *int                  `json:"maxParticipants" bson:"maxParticipants,omitempty" validate:"omitempty,min=1"`
	AcceptedParticipants *[]primitive.ObjectID `json:"acceptedParticipants" bson:"acceptedParticipants,omitempty"`
	PendingParticipants  *[]primitive.ObjectID `json:"pendingParticipants" bson:"pendingParticipants,omitempty"`
	Status               *string               `json:"status" bson:"status,omitempty" validate:"omitempty,oneof=open closed cancelled full"`
	IsPrivate            *bool                 `json:"isPrivate" bson:"isPrivate,omitempty"`
}
