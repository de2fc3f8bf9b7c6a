package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"hipis/internal/config"
)

// Collection names; one collection per entity.
const (
	CollUsers            = "users"
	CollAppointments     = "appointments"
	CollMoodEntries      = "mood_entries"
	CollAssessments      = "assessments"
	CollForumPosts       = "forum_posts"
	CollResources        = "resources"
	CollComments         = "comments"
	CollNotifications    = "notifications"
	CollCounselorClients = "counselor_clients"
	CollCounselorNotes   = "counselor_notes"
	CollContactRequests  = "contact_requests"
)

// Database owns the Mongo client lifecycle. It is created once at startup,
// shared read-only across requests and closed on shutdown; there is no
// ad-hoc connection flag and no silent reconnection.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    *config.MongoConfig
}

// New connects to the document store and verifies the connection with a ping.
func New(cfg *config.MongoConfig) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Database{
		client: client,
		db:     client.Database(cfg.Database),
		cfg:    cfg,
	}, nil
}

// Collection returns a handle to a named collection.
func (d *Database) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// QueryTimeout is the per-operation deadline repositories apply to every call.
func (d *Database) QueryTimeout() time.Duration {
	return d.cfg.QueryTimeout
}

// Close disconnects the client.
func (d *Database) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.ConnectTimeout)
	defer cancel()
	return d.client.Disconnect(ctx)
}

// HealthCheck pings the primary.
func (d *Database) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.QueryTimeout)
	defer cancel()
	if err := d.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the queries rely on. Safe to run at
// every startup; Mongo index creation is idempotent.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.ConnectTimeout)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		CollUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollAppointments: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "counsellor", Value: 1}, {Key: "date", Value: 1}}},
		},
		CollMoodEntries: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		CollAssessments: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		CollNotifications: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		CollCounselorClients: {
			{Keys: bson.D{{Key: "counselorId", Value: 1}, {Key: "clientId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollCounselorNotes: {
			{Keys: bson.D{{Key: "counselorId", Value: 1}, {Key: "sessionDate", Value: -1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := d.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
