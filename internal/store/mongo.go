// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Defaults for the MongoDB backend.
const (
	DefaultMongoURI            = "mongodb://localhost:27017"
	DefaultMongoDatabase       = "diet_recommendation"
	DefaultMongoConnectTimeout = 10 * time.Second
)

// Mongo stores documents in MongoDB.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	logger zerolog.Logger
}

type mongoCollection struct {
	coll *mongo.Collection
}

// OpenMongo connects, verifies the server answers and creates unique
// indexes. Index failures are logged; uniqueness is then not enforced.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func OpenMongo(ctx context.Context, cfg MongoConfig, unique map[string]string, logger zerolog.Logger) (*Mongo, error) {
	if cfg.URI == "" {
		cfg.URI = DefaultMongoURI
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultMongoConnectTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.ConnectTimeout).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	m := &Mongo{
		client: client,
		db:     client.Database(cfg.Database),
		logger: logger,
	}

	for collection, field := range unique {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
		if _, err := m.db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
			logger.Warn().Err(err).
				Str("collection", collection).
				Str("field", field).
				Msg("Failed to create unique index")
		}
	}

	logger.Info().Str("database", cfg.Database).Msg("Connected to MongoDB")
	return m, nil
}

// Collection implements Store.
func (m *Mongo) Collection(name string) Collection {
	return &mongoCollection{coll: m.db.Collection(name)}
}

// Ping implements Store.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Backend implements Store.
func (m *Mongo) Backend() string { return BackendMongo }

func mapMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	case errors.Is(err, mongo.ErrClientDisconnected):
		return ErrClosed
	}
	return err
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc Document) (string, error) {
	res, err := c.coll.InsertOne(ctx, bson.M(doc.WithoutID()))
	if err != nil {
		return "", mapMongoError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

func (c *mongoCollection) Find(ctx context.Context, filter Filter) ([]Document, error) {
	opts := options.Find().
		SetProjection(bson.M{IDField: 0}).
		SetSort(bson.D{{Key: IDField, Value: 1}})

	cur, err := c.coll.Find(ctx, bson.M(filter), opts)
	if err != nil {
		return nil, mapMongoError(err)
	}

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, mapMongoError(err)
	}

	out := make([]Document, 0, len(raw))
	for _, m := range raw {
		out = append(out, fromBSON(m))
	}
	return out, nil
}

func (c *mongoCollection) FindOne(ctx context.Context, filter Filter) (Document, error) {
	opts := options.FindOne().
		SetProjection(bson.M{IDField: 0}).
		SetSort(bson.D{{Key: IDField, Value: 1}})

	var m bson.M
	if err := c.coll.FindOne(ctx, bson.M(filter), opts).Decode(&m); err != nil {
		return nil, mapMongoError(err)
	}
	return fromBSON(m), nil
}

func (c *mongoCollection) UpdateOne(ctx context.Context, filter Filter, patch Document) (int64, error) {
	set := patch.WithoutID()
	if len(set) == 0 {
		return 0, nil
	}

	res, err := c.coll.UpdateOne(ctx, bson.M(filter), bson.M{"$set": bson.M(set)})
	if err != nil {
		return 0, mapMongoError(err)
	}
	return res.ModifiedCount, nil
}

var _ Store = (*Mongo)(nil)

// fromBSON converts decoded BSON containers to the plain maps and slices
// the other backends return.
func fromBSON(m bson.M) Document {
	out := make(Document, len(m))
	for k, v := range m {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v interface{}) interface{} {
	switch t := v.(type) {
	case bson.M:
		return map[string]interface{}(fromBSON(t))
	case bson.A:
		s := make([]interface{}, len(t))
		for i, e := range t {
			s[i] = plainValue(e)
		}
		return s
	case bson.D:
		m := make(map[string]interface{}, len(t))
		for _, e := range t {
			m[e.Key] = plainValue(e.Value)
		}
		return m
	}
	return v
}
