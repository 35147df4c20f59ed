package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository[T any] struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewMongoRepository[T any](collection *mongo.Collection) *MongoRepository[T] {
	return &MongoRepository[T]{collection: collection, now: time.Now}
}

func (r *MongoRepository[T]) Find(ctx context.Context, filter bson.M) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", r.collection.Name(), err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.collection.Name(), err)
	}
	return out, nil
}

func (r *MongoRepository[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	var out T
	err := r.collection.FindOne(ctx, filter).Decode(&out)
	return out, r.translate(err)
}

func (r *MongoRepository[T]) FindByID(ctx context.Context, id primitive.ObjectID) (T, error) {
	return r.FindOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository[T]) Insert(ctx context.Context, doc T) (T, error) {
	var zero T
	m, err := ToDocument(doc)
	if err != nil {
		return zero, err
	}

	id := primitive.NewObjectID()
	now := r.now().UTC()
	m["_id"] = id
	m["createdAt"] = now
	m["updatedAt"] = now

	insertCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if _, err := r.collection.InsertOne(insertCtx, m); err != nil {
		return zero, r.translate(err)
	}
	return r.FindByID(ctx, id)
}

func (r *MongoRepository[T]) Replace(ctx context.Context, id primitive.ObjectID, doc T) (T, error) {
	var zero T
	current, err := r.rawByID(ctx, id)
	if err != nil {
		return zero, err
	}

	m, err := ToDocument(doc)
	if err != nil {
		return zero, err
	}
	delete(m, "_id")
	m["createdAt"] = current["createdAt"]
	m["updatedAt"] = r.now().UTC()

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var out T
	err = r.collection.FindOneAndReplace(ctx, bson.M{"_id": id}, m,
		options.FindOneAndReplace().SetReturnDocument(options.After)).Decode(&out)
	return out, r.translate(err)
}

func (r *MongoRepository[T]) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (T, error) {
	fields := bson.M{}
	for k, v := range set {
		if k == "_id" || k == "createdAt" {
			continue
		}
		fields[k] = v
	}
	fields["updatedAt"] = r.now().UTC()

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var out T
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	return out, r.translate(err)
}

func (r *MongoRepository[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return r.translate(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository[T]) rawByID(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var m bson.M
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	return m, r.translate(err)
}

func (r *MongoRepository[T]) translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	default:
		return fmt.Errorf("%s: %w", r.collection.Name(), err)
	}
}
