package store

// QueryRecord is one resolved (or rejected) query kept in the history.
type QueryRecord struct {
	ID        int32
	UID       string
	CreatedTs int64

	Query         string
	Timestamp     float64
	IsEpochInput  bool
	RepresentsNow bool
	Succeeded     bool
}

// FindQueryRecord specifies the conditions for listing history.
// Records are returned newest first.
type FindQueryRecord struct {
	UID       *string
	Succeeded *bool
	Limit     *int
}

// DeleteQueryRecord specifies which records to purge. A nil CreatedTsBefore
// deletes every record.
type DeleteQueryRecord struct {
	CreatedTsBefore *int64
}
