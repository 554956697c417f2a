package driver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/datazip-inc/tap-mongodb/types"
	"github.com/datazip-inc/tap-mongodb/utils/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"golang.org/x/sync/errgroup"
)

// documents sampled per collection while probing its schema
const discoverSampleSize = 100

type Mongo struct {
	config *Config
	client *mongo.Client
}

// config reference; must be pointer
func (m *Mongo) GetConfigRef() any {
	m.config = &Config{}
	return m.config
}

func (m *Mongo) Spec() any {
	return Config{}
}

func (m *Mongo) Type() string {
	return "MongoDB"
}

func (m *Mongo) Setup(ctx context.Context) error {
	if err := m.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %s", err)
	}

	opts := options.Client()
	opts.ApplyURI(m.config.URI())
	opts.SetCompressors([]string{"snappy"}) // using Snappy compression; read here https://en.wikipedia.org/wiki/Snappy_(compression)
	opts.SetMaxPoolSize(1000)
	conn, err := mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}

	m.client = conn
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	return conn.Ping(pingCtx, opts.ReadPreference)
}

func (m *Mongo) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}

	return m.client.Disconnect(ctx)
}

// Discover lists the database's collections as streams, probing a sample of
// documents per collection to seed the schema and the cursor candidates
func (m *Mongo) Discover(ctx context.Context) ([]*types.Stream, error) {
	discoverCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	database := m.client.Database(m.config.Database)
	collections, err := database.ListCollections(discoverCtx, bson.M{})
	if err != nil {
		return nil, err
	}

	var streams []*types.Stream
	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(discoverCtx)
	group.SetLimit(m.config.MaxThreads)

	for collections.Next(discoverCtx) {
		var collectionInfo bson.M
		if err := collections.Decode(&collectionInfo); err != nil {
			return nil, fmt.Errorf("failed to decode collection: %s", err)
		}

		// views cannot be bookmarked reliably
		if collectionType, ok := collectionInfo["type"].(string); ok && collectionType == "view" {
			continue
		}

		collectionName, ok := collectionInfo["name"].(string)
		if !ok {
			continue
		}

		group.Go(func() error {
			stream, err := m.produceCollectionSchema(groupCtx, database, collectionName)
			if err != nil {
				return fmt.Errorf("failed to process collection[%s]: %s", collectionName, err)
			}

			mu.Lock()
			streams = append(streams, stream)
			mu.Unlock()
			return nil
		})
	}
	if err := collections.Err(); err != nil {
		return nil, err
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return streams, nil
}

// fetch sample records from mongo and infer stream schema
func (m *Mongo) produceCollectionSchema(ctx context.Context, db *mongo.Database, collectionName string) (*types.Stream, error) {
	logger.Infof("producing type schema for stream [%s]", collectionName)

	stream := types.NewStream(collectionName, db.Name())
	collection := db.Collection(collectionName)

	opts := options.Find().
		SetLimit(discoverSampleSize).
		SetSort(bson.D{{Key: "$natural", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}

		record := normalizeDocument(doc)
		mergeStreamSchema(stream, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return stream, nil
}

func (m *Mongo) collection(stream *types.ConfiguredStream) *mongo.Collection {
	return m.client.
		Database(stream.Namespace(), options.Database().SetReadConcern(readconcern.Majority())).
		Collection(stream.Name())
}
