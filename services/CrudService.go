package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"matchup/database"
	"matchup/helper"
)

// Input is a full create/replace payload that knows how to build its document.
type Input[T any] interface {
	Build() T
}

// Crud implements the create/read/update/patch/delete surface shared by every
// resource. T is the stored document, I the full input and P the partial patch
// whose nil fields are left untouched.
type Crud[T any, I Input[T], P any] struct {
	resource    string
	repo        database.Repository[T]
	afterCreate func(ctx context.Context, doc T) error
	log         zerolog.Logger
}

func NewCrud[T any, I Input[T], P any](resource string, repo database.Repository[T], log zerolog.Logger) *Crud[T, I, P] {
	return &Crud[T, I, P]{
		resource: resource,
		repo:     repo,
		log:      log.With().Str("resource", resource).Logger(),
	}
}

// OnCreate registers a step that runs after a document is stored. When it
// fails the document is deleted again and the step's error is returned.
func (s *Crud[T, I, P]) OnCreate(hook func(ctx context.Context, doc T) error) {
	s.afterCreate = hook
}

func (s *Crud[T, I, P]) Resource() string { return s.resource }

func (s *Crud[T, I, P]) GetAll(ctx context.Context) ([]T, error) {
	return s.Find(ctx, bson.M{})
}

func (s *Crud[T, I, P]) Find(ctx context.Context, filter bson.M) ([]T, error) {
	docs, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, s.translate(err, "")
	}
	return docs, nil
}

func (s *Crud[T, I, P]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	oid, err := ParseID(s.resource, id)
	if err != nil {
		return zero, err
	}
	doc, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return zero, s.translate(err, id)
	}
	return doc, nil
}

func (s *Crud[T, I, P]) Create(ctx context.Context, in I) (T, error) {
	var zero T
	if err := helper.ValidateStruct(in); err != nil {
		return zero, err
	}

	saved, err := s.repo.Insert(ctx, in.Build())
	if err != nil {
		return zero, s.translate(err, "")
	}

	if s.afterCreate != nil {
		if err := s.afterCreate(ctx, saved); err != nil {
			s.compensate(ctx, saved, err)
			return zero, err
		}
	}
	return saved, nil
}

func (s *Crud[T, I, P]) Update(ctx context.Context, id string, in I) (T, error) {
	var zero T
	oid, err := ParseID(s.resource, id)
	if err != nil {
		return zero, err
	}
	if err := helper.ValidateStruct(in); err != nil {
		return zero, err
	}

	doc, err := s.repo.Replace(ctx, oid, in.Build())
	if err != nil {
		return zero, s.translate(err, id)
	}
	return doc, nil
}

func (s *Crud[T, I, P]) Patch(ctx context.Context, id string, patch P) (T, error) {
	var zero T
	oid, err := ParseID(s.resource, id)
	if err != nil {
		return zero, err
	}
	if err := helper.ValidateStruct(patch); err != nil {
		return zero, err
	}

	set, err := database.ToDocument(patch)
	if err != nil {
		return zero, helper.BadRequest(err.Error())
	}
	doc, err := s.repo.Update(ctx, oid, set)
	if err != nil {
		return zero, s.translate(err, id)
	}
	return doc, nil
}

func (s *Crud[T, I, P]) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(s.resource, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		return s.translate(err, id)
	}
	return nil
}

func (s *Crud[T, I, P]) compensate(ctx context.Context, saved T, cause error) {
	oid, err := documentID(saved)
	if err == nil {
		err = s.repo.Delete(context.WithoutCancel(ctx), oid)
	}
	if err != nil {
		s.log.Error().Err(err).AnErr("cause", cause).Msg("compensating delete failed")
		return
	}
	s.log.Warn().Err(cause).Str("id", oid.Hex()).Msg("rolled back create after follow-up step failed")
}

func (s *Crud[T, I, P]) translate(err error, id string) error {
	return translateStoreError(s.resource, id, err)
}

// ParseID turns a hex id into an ObjectID. A malformed id cannot name an
// existing document, so it is reported as not found.
func ParseID(resource, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, helper.NotFound(resource, id)
	}
	return oid, nil
}

func translateStoreError(resource, id string, err error) error {
	if _, ok := helper.AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, database.ErrNotFound):
		return helper.NotFound(resource, id)
	case errors.Is(err, database.ErrDuplicateKey):
		return &helper.AppError{Status: 409, Message: fmt.Sprintf("%s already exists.", resource), Err: err}
	default:
		return fmt.Errorf("%s store: %w", resource, err)
	}
}

func documentID(doc any) (primitive.ObjectID, error) {
	m, err := database.ToDocument(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, ok := m["_id"].(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("document has no _id")
	}
	return oid, nil
}
