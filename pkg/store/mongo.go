package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/wordcloud/pkg/model"
)

// DefaultCollection is the MongoDB collection holding layouts.
const DefaultCollection = "layouts"

// MongoStore keeps layouts in a MongoDB collection, one document per layout
// with the layout ID as _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri, verifies the connection and ensures the
// creation-time index used by List and Prune.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := NewMongoStoreFromClient(client, database)
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// NewMongoStoreFromClient wraps an existing client. Close disconnects it.
func NewMongoStoreFromClient(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(DefaultCollection),
	}
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("mongo create index: %w", err)
	}
	return nil
}

func (s *MongoStore) Save(ctx context.Context, l *model.Layout) error {
	if err := prepare(l); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": l.ID}, l, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo save layout: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (model.Layout, error) {
	if err := ValidateID(id); err != nil {
		return model.Layout{}, err
	}
	var l model.Layout
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Layout{}, notFound(id)
	}
	if err != nil {
		return model.Layout{}, fmt.Errorf("mongo get layout: %w", err)
	}
	return l, nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]Summary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(listLimit(limit))).
		SetProjection(bson.M{"words": 0, "dropped": 0, "attempts": 0})

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo list layouts: %w", err)
	}
	var layouts []model.Layout
	if err := cur.All(ctx, &layouts); err != nil {
		return nil, fmt.Errorf("mongo list layouts: %w", err)
	}

	out := make([]Summary, len(layouts))
	for i, l := range layouts {
		out[i] = Summarize(l)
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongo delete layout: %w", err)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("mongo prune layouts: %w", err)
	}
	return int(res.DeletedCount), nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
