package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Repository is the document-store surface every resource service works against.
// Filters support equality, array membership, $in, $or and regex matches.
type Repository[T any] interface {
	Find(ctx context.Context, filter bson.M) ([]T, error)
	FindOne(ctx context.Context, filter bson.M) (T, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (T, error)
	// Insert assigns the id and timestamps and returns the stored document.
	Insert(ctx context.Context, doc T) (T, error)
	// Replace overwrites every field but _id and createdAt.
	Replace(ctx context.Context, id primitive.ObjectID, doc T) (T, error)
	// Update merges set into the document.
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (T, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ToDocument converts any bson-tagged value into a bson.M.
func ToDocument(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, nil
}

func fromDocument[T any](doc bson.M) (T, error) {
	var out T
	raw, err := bson.Marshal(doc)
	if err != nil {
		return out, fmt.Errorf("marshal document: %w", err)
	}
	if err := bson.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode document: %w", err)
	}
	return out, nil
}
