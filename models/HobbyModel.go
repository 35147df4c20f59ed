package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Hobby struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Icon      string             `json:"icon" bson:"icon"`
	Category  string             `json:"category" bson:"category"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type HobbyInput struct {
	Name     string `json:"name" validate:"required"`
	Icon     string `json:"icon" validate:"required"`
	Category string `json:"category" validate:"required"`
}

func (in HobbyInput) Build() Hobby {
	return Hobby{Name: in.Name, Icon: in.Icon, Category: in.Category}
}

type HobbyPatch struct {
	Name     *string `json:"name" bson:"name,omitempty" validate:"omitempty,min=1"`
	Icon     *string `json:"icon" bson:"icon,omitempty" validate:"omitempty,min=1"`
	Category *string `json:"category" bson:"category,omitempty" validate:"omitempty,min=1"`
}
