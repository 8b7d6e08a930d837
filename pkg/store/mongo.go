package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/refgraph/refgraph/pkg/report"
)

const (
	defaultDatabase   = "refgraph"
	reportsCollection = "reports"
)

// MongoStore persists reports in a MongoDB collection. Reports serialize
// through their bson tags; the report ID maps to the document _id.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to the MongoDB instance at uri and verifies the
// connection with a ping. An empty database name selects "refgraph".
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = defaultDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", uri, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping %s: %w", uri, err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(reportsCollection),
	}, nil
}

// Save upserts the report by ID, assigning a fresh UUID when it has none.
func (s *MongoStore) Save(ctx context.Context, r report.Report) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": r.ID}, r, options.Replace().SetUpsert(true))
	if err != nil {
		return "", fmt.Errorf("save report %s: %w", r.ID, err)
	}
	return r.ID, nil
}

// Get returns the stored report or ErrNotFound.
func (s *MongoStore) Get(ctx context.Context, id string) (report.Report, error) {
	var r report.Report
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return report.Report{}, ErrNotFound
	}
	if err != nil {
		return report.Report{}, fmt.Errorf("get report %s: %w", id, err)
	}
	return r, nil
}

// List returns summaries of all stored reports, newest first.
// The graph snapshot is projected away to keep listings light.
func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	opts := options.Find().
		SetProjection(bson.M{"graph": 0, "most_referenced": 0, "most_dependent": 0, "orphans": 0, "cycles": 0}).
		SetSort(bson.M{"generated_at": -1})

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer cursor.Close(ctx)

	var summaries []Summary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}
	return summaries, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
