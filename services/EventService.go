package services

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"matchup/database"
	"matchup/helper"
	"matchup/models"
	"matchup/utils"
)

const eventResource = "Event"

// EventQuery narrows an event listing. Radius is in meters and only applies
// when Near is set.
type EventQuery struct {
	Hobby   string
	Creator string
	Status  string
	Near    *models.GeoPoint
	Radius  float64
}

type EventService struct {
	*Crud[models.Event, models.EventInput, models.EventPatch]
}

func NewEventService(repo database.Repository[models.Event], log zerolog.Logger) *EventService {
	return &EventService{
		Crud: NewCrud[models.Event, models.EventInput, models.EventPatch](eventResource, repo, log),
	}
}

func (s *EventService) Search(ctx context.Context, q EventQuery) ([]models.Event, error) {
	filter := bson.M{}
	if q.Hobby != "" {
		oid, err := primitive.ObjectIDFromHex(q.Hobby)
		if err != nil {
			return nil, helper.BadRequest("hobby must be a valid id")
		}
		filter["hobby"] = oid
	}
	if q.Creator != "" {
		oid, err := primitive.ObjectIDFromHex(q.Creator)
		if err != nil {
			return nil, helper.BadRequest("creator must be a valid id")
		}
		filter["creator"] = oid
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}

	events, err := s.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if q.Near == nil {
		return events, nil
	}

	nearby := make([]models.Event, 0, len(events))
	for _, e := range events {
		d := utils.HaversineDistance(q.Near.Lat(), q.Near.Lng(), e.Location.Lat(), e.Location.Lng())
		if d <= q.Radius {
			nearby = append(nearby, e)
		}
	}
	return nearby, nil
}
