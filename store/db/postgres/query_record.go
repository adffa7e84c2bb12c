package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrygo/epochwf/store"
)

func (d *DB) CreateQueryRecord(ctx context.Context, create *store.QueryRecord) (*store.QueryRecord, error) {
	fields := []string{"uid", "created_ts", "query", "resolved_ts", "is_epoch_input", "represents_now", "succeeded"}
	args := []any{create.UID, create.CreatedTs, create.Query, create.Timestamp, create.IsEpochInput, create.RepresentsNow, create.Succeeded}

	stmt := `INSERT INTO query_history (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create query_history: %w", err)
	}
	return create, nil
}

func (d *DB) ListQueryRecords(ctx context.Context, find *store.FindQueryRecord) ([]*store.QueryRecord, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Succeeded; v != nil {
		where, args = append(where, "succeeded = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT id, uid, created_ts, query, resolved_ts, is_epoch_input, represents_now, succeeded
		FROM query_history WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC, id DESC`
	if find.Limit != nil {
		query, args = query+" LIMIT "+placeholder(len(args)+1), append(args, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list query_history: %w", err)
	}
	defer rows.Close()

	list := make([]*store.QueryRecord, 0)
	for rows.Next() {
		r := &store.QueryRecord{}
		if err := rows.Scan(&r.ID, &r.UID, &r.CreatedTs, &r.Query, &r.Timestamp, &r.IsEpochInput, &r.RepresentsNow, &r.Succeeded); err != nil {
			return nil, fmt.Errorf("failed to scan query_history: %w", err)
		}
		list = append(list, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate query_history: %w", err)
	}
	return list, nil
}

func (d *DB) DeleteQueryRecords(ctx context.Context, delete *store.DeleteQueryRecord) (int64, error) {
	stmt, args := `DELETE FROM query_history`, []any{}
	if v := delete.CreatedTsBefore; v != nil {
		stmt, args = stmt+` WHERE created_ts < `+placeholder(1), append(args, *v)
	}

	result, err := d.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete query_history: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
