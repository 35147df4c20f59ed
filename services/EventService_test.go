package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"matchup/models"
)

func eventInput(title string, hobby, creator primitive.ObjectID, lng, lat float64) models.EventInput {
	return models.EventInput{
		Title:           title,
		Hobby:           hobby,
		Creator:         creator,
		Location:        models.NewGeoPoint(lng, lat),
		Address:         "Somewhere",
		Time:            time.Date(2026, 11, 1, 19, 0, 0, 0, time.UTC),
		Duration:        120,
		MinParticipants: intPtr(2),
		MaxParticipants: 4,
	}
}

func intPtr(v int) *int { return &v }

func TestEventCreateDefaults(t *testing.T) {
	f := newFixture()
	events := NewEventService(f.events, zerolog.Nop())

	e, err := events.Create(context.Background(), eventInput("Chess", primitive.NewObjectID(), primitive.NewObjectID(), 34.78, 32.08))
	require.NoError(t, err)
	assert.Equal(t, models.EventOpen, e.Status)
	assert.NotNil(t, e.AcceptedParticipants)
	assert.Empty(t, e.AcceptedParticipants)
	assert.Equal(t, "Point", e.Location.Type)
}

func TestEventCapacityMustCoverMinimum(t *testing.T) {
	f := newFixture()
	events := NewEventService(f.events, zerolog.Nop())

	in := eventInput("Chess", primitive.NewObjectID(), primitive.NewObjectID(), 0, 0)
	in.MinParticipants = intPtr(5)
	in.MaxParticipants = 3
	_, err := events.Create(context.Background(), in)
	requireStatus(t, err, http.StatusBadRequest)
}

func TestEventRejectsInvalidLocation(t *testing.T) {
	f := newFixture()
	events := NewEventService(f.events, zerolog.Nop())
	ctx := context.Background()

	in := eventInput("Chess", primitive.NewObjectID(), primitive.NewObjectID(), 0, 0)
	in.Location = models.GeoPoint{Type: "Polygon", Coordinates: [2]float64{34.78, 32.08}}
	_, err := events.Create(ctx, in)
	appErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, appErr.Message, "type must be Point")

	in.Location = models.GeoPoint{Type: "Point", Coordinates: [2]float64{500, 500}}
	_, err = events.Create(ctx, in)
	requireStatus(t, err, http.StatusBadRequest)

	in.Location = models.NewGeoPoint(34.78, 91)
	_, err = events.Create(ctx, in)
	requireStatus(t, err, http.StatusBadRequest)

	all, err := events.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	e, err := events.Create(ctx, eventInput("Chess", primitive.NewObjectID(), primitive.NewObjectID(), -180, 90))
	require.NoError(t, err)
	bad := models.NewGeoPoint(-181, 0)
	_, err = events.Patch(ctx, e.ID.Hex(), models.EventPatch{Location: &bad})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestEventRequiresMinParticipants(t *testing.T) {
	f := newFixture()
	events := NewEventService(f.events, zerolog.Nop())

	in := eventInput("Chess", primitive.NewObjectID(), primitive.NewObjectID(), 0, 0)
	in.MinParticipants = nil
	_, err := events.Create(context.Background(), in)
	appErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, appErr.Message, "minParticipants is required")

	in.MinParticipants = intPtr(0)
	_, err = events.Create(context.Background(), in)
	require.NoError(t, err)
}

func TestEventPatchParticipants(t *testing.T) {
	f := newFixture()
	events := NewEventService(f.events, zerolog.Nop())
	ctx := context.Background()
	joiner := primitive.NewObjectID()

	e, err := events.Create(ctx, eventInput("Chess", primitive.NewObjectID(), primitive.NewObjectID(), 0, 0))
	require.NoError(t, err)

	// no dedupe on the participant list
	list := []primitive.ObjectID{joiner, joiner}
	_, err = events.Patch(ctx, e.ID.Hex(), models.EventPatch{AcceptedParticipants: &list})
	require.NoError(t, err)

	got, err := events.GetByID(ctx, e.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, list, got.AcceptedParticipants)
	assert.Equal(t, "Chess", got.Title)
}

func TestEventSearch(t *testing.T) {
	f := newFixture()
	events := NewEventService(f.events, zerolog.Nop())
	ctx := context.Background()
	chess, hiking := primitive.NewObjectID(), primitive.NewObjectID()
	ron, dana := primitive.NewObjectID(), primitive.NewObjectID()

	_, err := events.Create(ctx, eventInput("Tel Aviv chess", chess, ron, 34.7818, 32.0853))
	require.NoError(t, err)
	_, err = events.Create(ctx, eventInput("Jerusalem chess", chess, dana, 35.2137, 31.7683))
	require.NoError(t, err)
	_, err = events.Create(ctx, eventInput("Carmel hike", hiking, dana, 35.0, 32.7))
	require.NoError(t, err)

	all, err := events.Search(ctx, EventQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byHobby, err := events.Search(ctx, EventQuery{Hobby: chess.Hex()})
	require.NoError(t, err)
	assert.Len(t, byHobby, 2)

	byCreator, err := events.Search(ctx, EventQuery{Hobby: chess.Hex(), Creator: dana.Hex()})
	require.NoError(t, err)
	require.Len(t, byCreator, 1)
	assert.Equal(t, "Jerusalem chess", byCreator[0].Title)

	near := models.NewGeoPoint(34.78, 32.08)
	nearby, err := events.Search(ctx, EventQuery{Near: &near, Radius: 10000})
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, "Tel Aviv chess", nearby[0].Title)

	closed, err := events.Search(ctx, EventQuery{Status: models.EventClosed})
	require.NoError(t, err)
	assert.Empty(t, closed)

	_, err = events.Search(ctx, EventQuery{Hobby: "chess"})
	requireStatus(t, err, http.StatusBadRequest)
}
