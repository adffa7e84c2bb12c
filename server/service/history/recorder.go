package history

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/hrygo/epochwf/plugin/epoch"
	"github.com/hrygo/epochwf/store"
)

// Recorder writes resolved queries to the history store. A Recorder without
// a store records nothing, so callers need no history-enabled checks.
type Recorder struct {
	store *store.Store
}

// NewRecorder creates a recorder; s may be nil.
func NewRecorder(s *store.Store) *Recorder {
	return &Recorder{store: s}
}

// Enabled reports whether records are persisted.
func (r *Recorder) Enabled() bool {
	return r != nil && r.store != nil
}

// Record stores the outcome of one resolution. res is nil for failed queries.
// Empty queries are not recorded.
func (r *Recorder) Record(ctx context.Context, query string, res *epoch.Resolution) (*store.QueryRecord, error) {
	if !r.Enabled() || query == "" {
		return nil, nil
	}

	create := &store.QueryRecord{Query: query}
	if res != nil {
		create.Succeeded = true
		create.Timestamp = res.Timestamp
		create.IsEpochInput = res.IsEpochInput
		create.RepresentsNow = res.RepresentsNow
	}

	record, err := r.store.CreateQueryRecord(ctx, create)
	if err != nil {
		slog.Warn("failed to record query", slog.String("query", query), slog.String("error", err.Error()))
		return nil, errors.Wrap(err, "failed to record query")
	}
	return record, nil
}

// List returns the newest records first; limit <= 0 means no limit.
func (r *Recorder) List(ctx context.Context, limit int) ([]*store.QueryRecord, error) {
	if !r.Enabled() {
		return nil, errors.New("history is disabled")
	}
	find := &store.FindQueryRecord{}
	if limit > 0 {
		find.Limit = &limit
	}
	list, err := r.store.ListQueryRecords(ctx, find)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list history")
	}
	return list, nil
}

// Clear deletes every record and returns how many were removed.
func (r *Recorder) Clear(ctx context.Context) (int64, error) {
	if !r.Enabled() {
		return 0, errors.New("history is disabled")
	}
	deleted, err := r.store.DeleteQueryRecords(ctx, &store.DeleteQueryRecord{})
	if err != nil {
		return 0, errors.Wrap(err, "failed to clear history")
	}
	return deleted, nil
}
