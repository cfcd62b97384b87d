// internal/infrastructure/persistence/mongodb.go
package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoDatabase connects to MongoDB and returns a handle to the named
// database. Credentials are optional; when empty the URI is used as-is.
func NewMongoDatabase(ctx context.Context, uri, dbName, user, password string) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().ApplyURI(uri)
	if user != "" {
		opts = opts.SetAuth(options.Credential{
			Username: user,
			Password: password,
		})
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, client.Database(dbName), nil
}
