package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	ColUsers           = "users"
	ColBiodatas        = "biodatas"
	ColSuccessStories  = "successStories"
	ColContactRequests = "contactRequests"
	ColCounters        = "counters"
)

// biodataCounterID names the counters document holding the last biodataId.
const biodataCounterID = "biodataId"

// MongoStore implements Store on MongoDB.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects, verifies the connection, creates indexes and
// aligns the biodata sequence with the data already stored.
func NewMongoStore(uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect failed: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping failed: %w", err)
	}

	s := &MongoStore{client: client, db: client.Database(dbName)}

	if err := s.ensureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("mongo: ensure indexes failed")
	}
	seq, err := s.SyncBiodataSequence(ctx)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info().Str("db", dbName).Int("biodataSeq", seq).Msg("connected to MongoDB")
	return s, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		{ColUsers, bson.D{{Key: "email", Value: 1}}, false},

		// biodataId doubles as a guard against duplicate allocation
		{ColBiodatas, bson.D{{Key: "biodataId", Value: 1}}, true},
		{ColBiodatas, bson.D{{Key: "email", Value: 1}}, false},
		{ColBiodatas, bson.D{{Key: "bioDataStatus", Value: 1}, {Key: "age", Value: 1}}, false},
		{ColBiodatas, bson.D{{Key: "biodataType", Value: 1}}, false},

		{ColSuccessStories, bson.D{{Key: "marriageDate", Value: -1}}, false},

		{ColContactRequests, bson.D{{Key: "userEmail", Value: 1}}, false},
		{ColContactRequests, bson.D{{Key: "status", Value: 1}}, false},
		{ColContactRequests, bson.D{{Key: "biodataId", Value: 1}, {Key: "userEmail", Value: 1}}, false},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}
	return nil
}
