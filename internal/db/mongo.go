package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhive/taskhive/internal/utils"
)

// Mongo wraps the document database connection and the two collections the
// application uses.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
	Users    *mongo.Collection
	Tasks    *mongo.Collection
}

func NewMongo(ctx context.Context, cfg utils.MongoConfig) (*Mongo, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo: uri is required")
	}

	clientOpts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	ctx, cancel := context.WithTimeout(ctx, timeoutOrDefault(cfg.ConnectTimeout))
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	database := client.Database(cfg.Database)
	store := &Mongo{
		Client:   client,
		Database: database,
		Users:    database.Collection("users"),
		Tasks:    database.Collection("tasks"),
	}

	return store, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return m.Client.Disconnect(ctx)
}

// EnsureIndexes creates the unique email index that backs the duplicate
// signup check and the owner index the task listings rely on.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	if m == nil || m.Database == nil {
		return fmt.Errorf("mongo: database not initialised")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := m.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongo: ensure user email index: %w", err)
	}

	_, err = m.Tasks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("mongo: ensure task owner index: %w", err)
	}

	return nil
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value > 0 {
		return value
	}
	return 10 * time.Second
}
