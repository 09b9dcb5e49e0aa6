// Package database contains the logic for establishing
// connections to the MongoDB deployment that stores books.
//
// It handles:
//   - building client options (pool sizing, timeouts) from config
//   - creating the client and verifying connectivity with a ping
//   - wiring command logging in the local environment
//   - releasing the client on shutdown
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/deppfellow/bookstore/internal/config"
)

// DatabasePingTimeout is the number of seconds to wait for a ping before
// considering the deployment unreachable.
const DatabasePingTimeout = 10

// Database wraps the MongoDB client and the application database handle.
//
// The client owns a connection pool shared by every request; it is safe
// for concurrent use.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database

	// OperationTimeout bounds every repository call.
	OperationTimeout time.Duration

	log *zerolog.Logger
}

// New connects to MongoDB using cfg and pings the primary.
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	clientOptions := ClientOptions(cfg, logger)

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("database", cfg.Database.Name).
		Msg("connected to the database")

	return &Database{
		Client:           client,
		DB:               client.Database(cfg.Database.Name),
		OperationTimeout: cfg.Database.OperationTimeout,
		log:              logger,
	}, nil
}

// ClientOptions builds the driver options for cfg.
//
// In the local environment every command is logged through logger at
// debug level.
func ClientOptions(cfg *config.Config, logger *zerolog.Logger) *options.ClientOptions {
	clientOptions := options.Client().
		ApplyURI(cfg.Database.URI).
		SetAppName(config.ServiceName).
		SetConnectTimeout(cfg.Database.ConnectTimeout).
		SetMaxPoolSize(cfg.Database.MaxPoolSize).
		SetMinPoolSize(cfg.Database.MinPoolSize)

	if cfg.Database.MaxConnIdleTime > 0 {
		clientOptions.SetMaxConnIdleTime(cfg.Database.MaxConnIdleTime)
	}

	if cfg.Primary.Env == "local" {
		threshold := cfg.Observability.Logging.SlowCommandThreshold
		clientOptions.SetMonitor(NewCommandLogger(logger, threshold).Monitor())
	}

	return clientOptions
}

// Collection returns a handle to the named collection.
func (db *Database) Collection(name string) *mongo.Collection {
	return db.DB.Collection(name)
}

// Ping checks connectivity to the primary.
func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, waiting for in-use connections to be
// returned to the pool until ctx expires.
func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Msg("closing database connection pool")
	return db.Client.Disconnect(ctx)
}
