// Package database owns the MongoDB client lifecycle. The client is built
// once at startup and handed to the repositories; nothing in the application
// reaches for a package-level connection.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names, one per entity.
const (
	ColUsers    = "users"
	ColProducts = "products"
	ColOrders   = "orders"
	ColLogs     = "api_logs"
)

// DB wraps a connected client and the application database handle.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB, verifies the connection, and returns the handle.
// The caller must eventually call Close.
func Connect(ctx context.Context, uri, name string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return &DB{client: client, db: client.Database(name)}, nil
}

// Collection returns a handle to the named collection.
func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// EnsureIndexes creates the indexes the application relies on. Idempotent;
// run via `foodnest db:index` or at server startup.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	type spec struct {
		col    string
		models []mongo.IndexModel
	}

	specs := []spec{
		{ColUsers, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		}},
		{ColProducts, []mongo.IndexModel{
			{Keys: bson.D{{Key: "seller_id", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		}},
		{ColOrders, []mongo.IndexModel{
			{Keys: bson.D{{Key: "buyer_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "seller_id", Value: 1}, {Key: "status", Value: 1}}},
		}},
		{ColLogs, []mongo.IndexModel{
			{Keys: bson.D{{Key: "time", Value: -1}}},
		}},
	}

	for _, s := range specs {
		if _, err := d.db.Collection(s.col).Indexes().CreateMany(ctx, s.models); err != nil {
			return fmt.Errorf("database: index %s: %w", s.col, err)
		}
	}

	return nil
}

// Close disconnects the client, flushing in-flight operations.
func (d *DB) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := d.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	return nil
}
