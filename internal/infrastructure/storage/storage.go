package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set (or has
// been deleted).
var ErrNotFound = errors.New("storage: key not found")

// Well-known keys of the persisted state layout. Values are JSON.
const (
	KeyUsers     = "users"
	KeySession   = "session"
	KeyPatients  = "patients"
	KeyIncidents = "incidents"
)

// Store is the injectable persistence backend the session and entity
// stores write through. Every mutation of a collection is persisted as a
// full JSON snapshot under its key; there is no delta persistence and no
// transaction primitive.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Driver identifies a storage backend implementation.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverSQLite   Driver = "sqlite"
	DriverRedis    Driver = "redis"
	DriverPostgres Driver = "postgres"
)
