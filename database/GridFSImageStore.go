package database

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GridFSImageStore keeps uploaded pictures in the "images" GridFS bucket.
type GridFSImageStore struct {
	bucket *gridfs.Bucket
}

func NewGridFSImageStore(db *mongo.Database) (*GridFSImageStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("images"))
	if err != nil {
		return nil, fmt.Errorf("open gridfs bucket: %w", err)
	}
	return &GridFSImageStore{bucket: bucket}, nil
}

func (s *GridFSImageStore) Upload(_ context.Context, filename string, src io.Reader) (string, error) {
	fileID := primitive.NewObjectID()
	uploadStream, err := s.bucket.OpenUploadStreamWithID(fileID, filename)
	if err != nil {
		return "", fmt.Errorf("open upload stream: %w", err)
	}
	if _, err := io.Copy(uploadStream, src); err != nil {
		_ = uploadStream.Abort()
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	if err := uploadStream.Close(); err != nil {
		return "", fmt.Errorf("finish upload %s: %w", filename, err)
	}
	return fileID.Hex(), nil
}

func (s *GridFSImageStore) Open(_ context.Context, id string) (io.ReadCloser, error) {
	fileID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	stream, err := s.bucket.OpenDownloadStream(fileID)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open download stream: %w", err)
	}
	return stream, nil
}
