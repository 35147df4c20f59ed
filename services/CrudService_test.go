package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"matchup/database"
	"matchup/helper"
	"matchup/models"
)

func newHobbyCrud() (*Crud[models.Hobby, models.HobbyInput, models.HobbyPatch], *database.MemoryRepository[models.Hobby]) {
	repo := database.NewMemoryRepository[models.Hobby]([]string{"name"})
	return NewCrud[models.Hobby, models.HobbyInput, models.HobbyPatch]("Hobby", repo, zerolog.Nop()), repo
}

func requireStatus(t *testing.T, err error, status int) *helper.AppError {
	t.Helper()
	appErr, ok := helper.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.Status)
	return appErr
}

func TestCrudCreateAndGet(t *testing.T) {
	crud, _ := newHobbyCrud()
	ctx := context.Background()

	created, err := crud.Create(ctx, models.HobbyInput{Name: "Chess", Icon: "♞", Category: "Games"})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	found, err := crud.GetByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Chess", found.Name)

	all, err := crud.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCrudCreateValidates(t *testing.T) {
	crud, repo := newHobbyCrud()

	_, err := crud.Create(context.Background(), models.HobbyInput{Name: "Chess"})
	requireStatus(t, err, http.StatusBadRequest)

	all, _ := repo.Find(context.Background(), nil)
	assert.Empty(t, all)
}

func TestCrudDuplicateIsConflict(t *testing.T) {
	crud, _ := newHobbyCrud()
	ctx := context.Background()
	in := models.HobbyInput{Name: "Chess", Icon: "♞", Category: "Games"}

	_, err := crud.Create(ctx, in)
	require.NoError(t, err)

	_, err = crud.Create(ctx, in)
	requireStatus(t, err, http.StatusConflict)
}

func TestCrudMissingAndMalformedIDs(t *testing.T) {
	crud, _ := newHobbyCrud()
	ctx := context.Background()
	missing := primitive.NewObjectID().Hex()

	_, err := crud.GetByID(ctx, missing)
	appErr := requireStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "Hobby with ID: "+missing+" not found.", appErr.Message)

	_, err = crud.GetByID(ctx, "not-an-id")
	requireStatus(t, err, http.StatusNotFound)

	requireStatus(t, crud.Delete(ctx, missing), http.StatusNotFound)
	requireStatus(t, crud.Delete(ctx, "zzz"), http.StatusNotFound)

	_, err = crud.Update(ctx, missing, models.HobbyInput{Name: "a", Icon: "b", Category: "c"})
	requireStatus(t, err, http.StatusNotFound)
}

func TestCrudUpdateReplacesDocument(t *testing.T) {
	crud, _ := newHobbyCrud()
	ctx := context.Background()

	created, err := crud.Create(ctx, models.HobbyInput{Name: "Chess", Icon: "♞", Category: "Games"})
	require.NoError(t, err)

	updated, err := crud.Update(ctx, created.ID.Hex(), models.HobbyInput{Name: "Go", Icon: "●", Category: "Board"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Go", updated.Name)
	assert.Equal(t, "Board", updated.Category)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
}

func TestCrudPatchOnlyTouchesGivenFields(t *testing.T) {
	crud, _ := newHobbyCrud()
	ctx := context.Background()

	created, err := crud.Create(ctx, models.HobbyInput{Name: "Chess", Icon: "♞", Category: "Games"})
	require.NoError(t, err)

	category := "Strategy"
	patched, err := crud.Patch(ctx, created.ID.Hex(), models.HobbyPatch{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, "Chess", patched.Name)
	assert.Equal(t, "Strategy", patched.Category)
}

func TestCrudDelete(t *testing.T) {
	crud, _ := newHobbyCrud()
	ctx := context.Background()

	created, err := crud.Create(ctx, models.HobbyInput{Name: "Chess", Icon: "♞", Category: "Games"})
	require.NoError(t, err)

	require.NoError(t, crud.Delete(ctx, created.ID.Hex()))
	_, err = crud.GetByID(ctx, created.ID.Hex())
	requireStatus(t, err, http.StatusNotFound)
}

func TestCrudFailedHookRemovesDocument(t *testing.T) {
	crud, repo := newHobbyCrud()
	ctx := context.Background()
	hookErr := errors.New("fan-out failed")
	crud.OnCreate(func(context.Context, models.Hobby) error { return hookErr })

	_, err := crud.Create(ctx, models.HobbyInput{Name: "Chess", Icon: "♞", Category: "Games"})
	assert.ErrorIs(t, err, hookErr)

	all, err := repo.Find(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}
