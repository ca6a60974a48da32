package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOptions configures a [MongoStore].
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// Default database and collection names.
const (
	DefaultMongoDatabase   = "scenepatch"
	DefaultMongoCollection = "scenes"
)

// MongoStore keeps one BSON document per scene.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	db := opts.Database
	if db == "" {
		db = DefaultMongoDatabase
	}
	coll := opts.Collection
	if coll == "" {
		coll = DefaultMongoCollection
	}
	s := &MongoStore{client: client, coll: client.Database(db).Collection(coll)}

	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "updated_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}
	return s, nil
}

// Put implements [Store].
func (s *MongoStore) Put(ctx context.Context, doc *Document) (string, error) {
	if doc.ID != "" && doc.CreatedAt.IsZero() {
		var old struct {
			CreatedAt time.Time `bson:"created_at"`
		}
		err := s.coll.FindOne(ctx, bson.M{"_id": doc.ID},
			options.FindOne().SetProjection(bson.M{"created_at": 1})).Decode(&old)
		switch {
		case err == nil:
			doc.CreatedAt = old.CreatedAt
		case !errors.Is(err, mongo.ErrNoDocuments):
			return "", fmt.Errorf("find document %s: %w", doc.ID, err)
		}
	}
	prepare(doc, time.Now().UTC().Truncate(time.Millisecond))

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return "", fmt.Errorf("put document %s: %w", doc.ID, err)
	}
	return doc.ID, nil
}

// Get implements [Store].
func (s *MongoStore) Get(ctx context.Context, id string) (*Document, error) {
	var doc Document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	return &doc, nil
}

// Delete implements [Store].
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List implements [Store]. Element counts are computed server-side.
func (s *MongoStore) List(ctx context.Context, limit int) ([]Summary, error) {
	size := func(field string) bson.D {
		return bson.D{{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{field, bson.A{}}}}}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.D{
		{Key: "name", Value: 1},
		{Key: "updated_at", Value: 1},
		{Key: "nodes", Value: size("$scene.nodes")},
		{Key: "edges", Value: size("$scene.edges")},
	}}})

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	out := []Summary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return out, nil
}

// Close implements [Store].
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
