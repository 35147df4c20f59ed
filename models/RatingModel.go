package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Rating struct {
	ID        primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	From      primitive.ObjectID  `json:"from" bson:"from"`
	To        primitive.ObjectID  `json:"to" bson:"to"`
	Score     int                 `json:"score" bson:"score"`
	Comment   string              `json:"comment,omitempty" bson:"comment,omitempty"`
	Event     *primitive.ObjectID `json:"event,omitempty" bson:"event,omitempty"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type RatingInput struct {
	From    primitive.ObjectID  `json:"from" validate:"required"`
	To      primitive.ObjectID  `json:"to" validate:"required"`
	Score   int                 `json:"score" validate:"required,min=1,max=5"`
	Comment string              `json:"comment"`
	Event   *primitive.ObjectID `json:"event"`
}

func (in RatingInput) Build() Rating {
	return Rating{From: in.From, To: in.To, Score: in.Score, Comment: in.Comment, Event: in.Event}
}

type RatingPatch struct {
	From    *primitive.ObjectID `json:"from" bson:"from,omitempty"`
	To      *primitive.ObjectID `json:"to" bson:"to,omitempty"`
	Score   *int                `json:"score" bson:"score,omitempty" validate:"omitempty,min=1,max=5"`
	Comment *string             `json:"comment" bson:"comment,omitempty"`
	Event   *primitive.ObjectID `json:"event" bson:"event,omitempty"`
}
