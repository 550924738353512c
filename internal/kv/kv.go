// Package kv defines the durable string-keyed storage the progress
// scheduler persists into, along with its backends.
package kv

import (
	"context"
	"fmt"
)

// Store is a key-value store holding serialized JSON documents.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent;
	// absence is never reported as an error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Backend kinds accepted by Open.
const (
	KindSQLite   = "sqlite"
	KindRedis    = "redis"
	KindPostgres = "postgres"
	KindMemory   = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Kind        string
	SQLitePath  string
	RedisURL    string
	PostgresURL string
}

// Open connects to the backend named by opts.Kind.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Kind {
	case KindSQLite, "":
		return OpenSQLite(opts.SQLitePath)
	case KindRedis:
		return NewRedis(ctx, opts.RedisURL)
	case KindPostgres:
		return NewPostgres(ctx, opts.PostgresURL)
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", opts.Kind)
	}
}
