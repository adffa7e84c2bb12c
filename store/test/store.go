package test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hrygo/epochwf/internal/profile"
	"github.com/hrygo/epochwf/store"
	"github.com/hrygo/epochwf/store/db"
)

// NewTestingStore opens a migrated store for the driver named by the DRIVER
// environment variable (sqlite when unset).
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	t.Helper()
	p := getTestingProfile(t)
	dbDriver, err := db.NewDBDriver(p)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	s := store.New(dbDriver, p)
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	t.Cleanup(func() {
		if p.Driver == "postgres" {
			_, _ = s.DeleteQueryRecords(context.Background(), &store.DeleteQueryRecord{})
		}
		s.Close()
	})
	return s
}

func getTestingProfile(t *testing.T) *profile.Profile {
	dir := t.TempDir()
	p := &profile.Profile{
		Mode:    "dev",
		Data:    dir,
		Driver:  getDriverFromEnv(),
		History: true,
	}
	switch p.Driver {
	case "postgres":
		p.DSN = GetPostgresDSN(t)
	default:
		p.DSN = filepath.Join(dir, "epochwf_test.db")
	}
	return p
}

func getDriverFromEnv() string {
	if driver := os.Getenv("DRIVER"); driver != "" {
		return driver
	}
	return "sqlite"
}
