package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AvailabilitySlot struct {
	Day  string `json:"day" bson:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	From string `json:"from" bson:"from" validate:"required"`
	To   string `json:"to" bson:"to" validate:"required"`
}

// User never serializes its password hash to JSON.
type User struct {
	ID             primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Email          string               `json:"email" bson:"email"`
	Password       string               `json:"-" bson:"password"`
	Name           string               `json:"name" bson:"name"`
	Phone          string               `json:"phone" bson:"phone"`
	Location       GeoPoint             `json:"location" bson:"location"`
	Hobbies        []primitive.ObjectID `json:"hobbies" bson:"hobbies"`
	Availability   []AvailabilitySlot   `json:"availability" bson:"availability"`
	ProfilePicture string               `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
	Online         bool                 `json:"online" bson:"online"`
	CreatedAt      time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// UserProfile is a user together with every relation derived from other collections.
type UserProfile struct {
	User
	OwnEvents         []Event        `json:"ownEvents"`
	ParticipantEvents []Event        `json:"participantEvents"`
	Messages          []Message      `json:"messages"`
	Notifications     []Notification `json:"notifications"`
	Ratings           []Rating       `json:"ratings"`
	RequestsSent      []Request      `json:"requestsSent"`
	RequestsReceived  []Request      `json:"requestsReceived"`
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}

func (in RegisterInput) Build() User {
	return User{
		Email:        in.Email,
		Password:     in.Password,
		Name:         in.Name,
		Phone:        in.Phone,
		Location:     NewGeoPoint(0, 0),
		Hobbies:      []primitive.ObjectID{},
		Availability: []AvailabilitySlot{},
	}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserPatch struct {
	Email          *string               `json:"email" bson:"email,omitempty" validate:"omitempty,email"`
	Password       *string               `json:"password" bson:"password,omitempty" validate:"omitempty,min=6"`
	Name           *string               `json:"name" bson:"name,omitempty" validate:"omitempty,min=1"`
	Phone          *string               `json:"phone" bson:"phone,omitempty" validate:"omitempty,min=1"`
	Location       *GeoPoint             `json:"location" bson:"location,omitempty"`
	Hobbies        *[]primitive.ObjectID `json:"hobbies" bson:"hobbies,omitempty"`
	Availability   *[]AvailabilitySlot   `json:"availability" bson:"availability,omitempty" validate:"omitempty,dive"`
	ProfilePicture *string               `json:"profilePicture" bson:"profilePicture,omitempty"`
}
