package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository provides the small set of keyed CRUD operations the session
// cache needs, generic over the cached document type.
type Repository[T any] struct {
	collection *mongo.Collection
}

// NewRepository creates a repository over the named collection.
func NewRepository[T any](db *mongo.Database, collectionName string) *Repository[T] {
	return &Repository[T]{
		collection: db.Collection(collectionName),
	}
}

// OpenConnection connects to MongoDB and verifies the connection.
func OpenConnection(uri string, database string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client.Database(database), nil
}

// Get finds the document stored under key. A missing document is reported
// via mongo.ErrNoDocuments.
func (r *Repository[T]) Get(ctx context.Context, keyField, key string) (*T, error) {
	var result T
	err := r.collection.FindOne(ctx, bson.M{keyField: key}).Decode(&result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Put stores the document under key, replacing any previous value.
func (r *Repository[T]) Put(ctx context.Context, keyField, key string, document T) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{keyField: key}, document, opts)
	return err
}

// Remove deletes the document stored under key, if any.
func (r *Repository[T]) Remove(ctx context.Context, keyField, key string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{keyField: key})
	return err
}
