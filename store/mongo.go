package store

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/huddle-api/schema"
)

const (
	mongoLogPrefix = "mongo"
	defaultTimeout = 5 * time.Second
)

// MongoStore - interface for mongodb operations
type MongoStore interface {
	MemberCache
	Closer
	Pinger
}

// MemberCache - cached copy of the workspace member directory
type MemberCache interface {
	ListMembers(ctx context.Context) ([]schema.Member, error)
	ReplaceMembers(ctx context.Context, members []schema.Member) (int64, error)
}

// Closer - close db connection
type Closer interface {
	Close()
}

// Pinger - ping database
type Pinger interface {
	Ping() error
}

type mongoDB struct {
	client   *mongo.Client
	database string
}

// NewMongoStore - return mongo db operations
func NewMongoStore(client *mongo.Client, database string) MongoStore {
	return &mongoDB{
		client:   client,
		database: database,
	}
}

// Ping - ping mongo db
func (m mongoDB) Ping() error {
	return m.client.Ping(context.Background(), nil)
}

// Close - close mongo db connections
func (m mongoDB) Close() {
	log.WithField("prefix", mongoLogPrefix).Info("closing mongo db connections")
	_ = m.client.Disconnect(context.Background())
}

func (m *mongoDB) members() *mongo.Collection {
	return m.client.Database(m.database).Collection(schema.MemberCollection)
}

// ListMembers returns owners first, then admins, then everyone else
func (m *mongoDB) ListMembers(ctx context.Context) ([]schema.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "is_owner", Value: -1},
		{Key: "is_admin", Value: -1},
		{Key: "id", Value: 1},
	})
	cursor, err := m.members().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	members := make([]schema.Member, 0)
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// ReplaceMembers upserts every member by id and returns the number of
// documents inserted or modified.
func (m *mongoDB) ReplaceMembers(ctx context.Context, members []schema.Member) (int64, error) {
	if len(members) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 4*defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	models := make([]mongo.WriteModel, 0, len(members))
	for _, member := range members {
		member.UpdatedAt = now
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"id": member.ID}).
			SetReplacement(member).
			SetUpsert(true))
	}

	result, err := m.members().BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, err
	}

	log.WithField("prefix", mongoLogPrefix).
		WithField("upserted", result.UpsertedCount).
		WithField("modified", result.ModifiedCount).
		Debug("member cache replaced")

	return result.UpsertedCount + result.ModifiedCount, nil
}
