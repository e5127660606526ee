package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	writeTimeout = time.Second
	readTimeout  = 2 * time.Second
)

// RenderRepo handles the persistence of render records.
type RenderRepo struct {
	collection *mongo.Collection
}

// NewRenderRepo creates a new RenderRepo with the given MongoDB client, database name, and collection name.
func NewRenderRepo(client *mongo.Client, dbName, collectionName string) *RenderRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RenderRepo{
		collection: collection,
	}
}

// EnsureIndexes creates the index backing Recent.
func (r *RenderRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("creating createdAt index: %w", err)
	}
	return nil
}

// Save inserts a record, replacing any record with the same ID.
func (r *RenderRepo) Save(ctx context.Context, record *dmn.RenderRecord) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	filter := bson.M{"_id": record.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, record, opts); err != nil {
		return fmt.Errorf("saving render %s: %w", record.ID, err)
	}
	return nil
}

// ByID retrieves a record by its ID.
func (r *RenderRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.RenderRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	var record dmn.RenderRecord
	if err := r.collection.FindOne(ctx, filter).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrRenderNotFound
		}
		return nil, fmt.Errorf("loading render %s: %w", id, err)
	}
	return &record, nil
}

// Recent returns up to limit records, newest first.
func (r *RenderRepo) Recent(ctx context.Context, limit int) ([]*dmn.RenderRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	opts := recentOptions(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing renders: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]*dmn.RenderRecord, 0, limit)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decoding renders: %w", err)
	}
	return records, nil
}

func recentOptions(limit int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
}
