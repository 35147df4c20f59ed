package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"matchup/models"
)

func TestUserCreateHashesPassword(t *testing.T) {
	f := newFixture()
	u := f.register("ron@example.com", "0500000001")

	assert.NotEqual(t, "secret123", u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")))
	cost, err := bcrypt.Cost([]byte(u.Password))
	require.NoError(t, err)
	assert.Equal(t, passwordCost, cost)

	assert.Equal(t, []float64{0, 0}, u.Location.Coordinates[:])
	assert.Empty(t, u.Hobbies)
	assert.False(t, u.Online)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	f := newFixture()
	f.register("ron@example.com", "0500000001")

	_, err := f.userService.Create(context.Background(), models.RegisterInput{
		Email: "ron@example.com", Password: "secret123", Name: "Other", Phone: "0500000002",
	})
	appErr := requireStatus(t, err, http.StatusConflict)
	assert.Equal(t, "Email already in use.", appErr.Message)

	// distinct email succeeds
	f.register("dana@example.com", "0500000002")
}

func TestUserCreateDuplicatePhone(t *testing.T) {
	f := newFixture()
	f.register("ron@example.com", "0500000001")

	_, err := f.userService.Create(context.Background(), models.RegisterInput{
		Email: "dana@example.com", Password: "secret123", Name: "Dana", Phone: "0500000001",
	})
	requireStatus(t, err, http.StatusConflict)
}

func TestUserFindByEmailUnknown(t *testing.T) {
	f := newFixture()

	_, err := f.userService.FindByEmail(context.Background(), "ghost@example.com")
	appErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Invalid credentials.", appErr.Message)
}

func TestUserSearchIsCaseInsensitive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.register("ron@example.com", "0500000001")
	f.register("dana@example.com", "0500000002")

	found, err := f.userService.Search(ctx, "RON@")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "ron@example.com", found[0].Email)

	found, err = f.userService.Search(ctx, "(")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestUserProfileRelations(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ron := f.register("ron@example.com", "0500000001")
	dana := f.register("dana@example.com", "0500000002")

	event, err := f.events.Insert(ctx, models.EventInput{
		Title: "Chess night", Hobby: primitive.NewObjectID(), Creator: ron.ID,
		AcceptedParticipants: []primitive.ObjectID{dana.ID},
	}.Build())
	require.NoError(t, err)
	_, err = f.messages.Insert(ctx, models.Message{Sender: dana.ID, Recipient: ron.ID, Subject: "hi", Content: "hello"})
	require.NoError(t, err)
	_, err = f.ratings.Insert(ctx, models.Rating{From: dana.ID, To: ron.ID, Score: 5})
	require.NoError(t, err)
	_, err = f.requests.Insert(ctx, models.Request{Event: event.ID, From: dana.ID, To: ron.ID, Status: models.RequestPending})
	require.NoError(t, err)

	profile, err := f.userService.GetByID(ctx, ron.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, profile.OwnEvents, 1)
	assert.Empty(t, profile.ParticipantEvents)
	assert.Len(t, profile.Messages, 1)
	assert.Len(t, profile.Ratings, 1)
	assert.Len(t, profile.RequestsReceived, 1)
	assert.Empty(t, profile.RequestsSent)

	profile, err = f.userService.GetByID(ctx, dana.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, profile.OwnEvents)
	assert.Len(t, profile.ParticipantEvents, 1)
	assert.Len(t, profile.RequestsSent, 1)

	joined, err := f.userService.JoinedEvents(ctx, dana.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, joined, 1)
	created, err := f.userService.CreatedEvents(ctx, ron.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, created, 1)
}

func TestUserUpdateRehashesPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ron := f.register("ron@example.com", "0500000001")

	profile, err := f.userService.Update(ctx, ron.ID.Hex(), models.RegisterInput{
		Email: "ron@matchup.dev", Password: "another1", Name: "Ron M", Phone: "0500000009",
	})
	require.NoError(t, err)
	assert.Equal(t, "ron@matchup.dev", profile.Email)

	stored, err := f.users.FindByID(ctx, ron.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("another1")))
}

func TestUserPatch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ron := f.register("ron@example.com", "0500000001")

	name := "Ronnie"
	password := "changed1"
	profile, err := f.userService.Patch(ctx, ron.ID.Hex(), models.UserPatch{Name: &name, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "Ronnie", profile.Name)
	assert.Equal(t, "ron@example.com", profile.Email)

	stored, err := f.users.FindByID(ctx, ron.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("changed1")))

	bad := "nope"
	_, err = f.userService.Patch(ctx, ron.ID.Hex(), models.UserPatch{Email: &bad})
	requireStatus(t, err, http.StatusBadRequest)

	polygon := models.GeoPoint{Type: "Polygon", Coordinates: [2]float64{1, 1}}
	_, err = f.userService.Patch(ctx, ron.ID.Hex(), models.UserPatch{Location: &polygon})
	requireStatus(t, err, http.StatusBadRequest)

	home := models.NewGeoPoint(34.78, 32.08)
	profile, err = f.userService.Patch(ctx, ron.ID.Hex(), models.UserPatch{Location: &home})
	require.NoError(t, err)
	assert.Equal(t, 32.08, profile.Location.Lat())
}

func TestUserDeleteAndOnline(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ron := f.register("ron@example.com", "0500000001")

	require.NoError(t, f.userService.SetOnline(ctx, ron.ID, true))
	stored, err := f.users.FindByID(ctx, ron.ID)
	require.NoError(t, err)
	assert.True(t, stored.Online)

	require.NoError(t, f.userService.Delete(ctx, ron.ID.Hex()))
	requireStatus(t, f.userService.Delete(ctx, ron.ID.Hex()), http.StatusNotFound)
	_, err = f.userService.GetByID(ctx, ron.ID.Hex())
	requireStatus(t, err, http.StatusNotFound)
}
