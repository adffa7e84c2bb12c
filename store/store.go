package store

import (
	"context"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/hrygo/epochwf/internal/profile"
)

// Store provides database access to the query history.
type Store struct {
	profile *profile.Profile
	driver  Driver

	now func() time.Time
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
		now:     time.Now,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// CreateQueryRecord assigns a UID and creation time when the caller left them empty.
func (s *Store) CreateQueryRecord(ctx context.Context, create *QueryRecord) (*QueryRecord, error) {
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	if create.CreatedTs == 0 {
		create.CreatedTs = s.now().Unix()
	}
	return s.driver.CreateQueryRecord(ctx, create)
}

func (s *Store) ListQueryRecords(ctx context.Context, find *FindQueryRecord) ([]*QueryRecord, error) {
	return s.driver.ListQueryRecords(ctx, find)
}

func (s *Store) GetQueryRecord(ctx context.Context, uid string) (*QueryRecord, error) {
	limit := 1
	list, err := s.driver.ListQueryRecords(ctx, &FindQueryRecord{UID: &uid, Limit: &limit})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) DeleteQueryRecords(ctx context.Context, delete *DeleteQueryRecord) (int64, error) {
	return s.driver.DeleteQueryRecords(ctx, delete)
}
