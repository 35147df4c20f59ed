package database

import (
	"go.mongodb.org/mongo-driver/mongo"

	"matchup/models"
)

// Stores holds one repository per collection.
type Stores struct {
	Users         Repository[models.User]
	Events        Repository[models.Event]
	Hobbies       Repository[models.Hobby]
	Messages      Repository[models.Message]
	Notifications Repository[models.Notification]
	Ratings       Repository[models.Rating]
	Requests      Repository[models.Request]
}

func NewMongoStores(db *mongo.Database) Stores {
	return Stores{
		Users:         NewMongoRepository[models.User](OpenCollection(db, UserCollection)),
		Events:        NewMongoRepository[models.Event](OpenCollection(db, EventCollection)),
		Hobbies:       NewMongoRepository[models.Hobby](OpenCollection(db, HobbyCollection)),
		Messages:      NewMongoRepository[models.Message](OpenCollection(db, MessageCollection)),
		Notifications: NewMongoRepository[models.Notification](OpenCollection(db, NotificationCollection)),
		Ratings:       NewMongoRepository[models.Rating](OpenCollection(db, RatingCollection)),
		Requests:      NewMongoRepository[models.Request](OpenCollection(db, RequestCollection)),
	}
}

// NewMemoryStores mirrors the unique indexes created by EnsureIndexes.
func NewMemoryStores() Stores {
	return Stores{
		Users:         NewMemoryRepository[models.User]([]string{"email"}, []string{"phone"}),
		Events:        NewMemoryRepository[models.Event]([]string{"creator", "time"}),
		Hobbies:       NewMemoryRepository[models.Hobby]([]string{"name"}),
		Messages:      NewMemoryRepository[models.Message](),
		Notifications: NewMemoryRepository[models.Notification](),
		Ratings:       NewMemoryRepository[models.Rating](),
		Requests:      NewMemoryRepository[models.Request](),
	}
}
