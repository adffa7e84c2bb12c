package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// QueryRecord model related methods.
	CreateQueryRecord(ctx context.Context, create *QueryRecord) (*QueryRecord, error)
	ListQueryRecords(ctx context.Context, find *FindQueryRecord) ([]*QueryRecord, error)
	DeleteQueryRecords(ctx context.Context, delete *DeleteQueryRecord) (int64, error)
}
