package storage

import (
	"context"
	"fmt"
	"time"
)

// AppendQueryLog records one engine invocation.
func (s *SQLiteStore) AppendQueryLog(ctx context.Context, entry *QueryLogEntry) error {
	if entry == nil {
		return fmt.Errorf("query log entry is nil")
	}
	if entry.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	if entry.Kind != QueryKindSubmit && entry.Kind != QueryKindRerank {
		return fmt.Errorf("invalid query log kind: %q", entry.Kind)
	}
	if entry.TSMs == 0 {
		entry.TSMs = time.Now().UnixMilli()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO query_log (session_id, kind, strategy, cuisines, budget, location, result_count, ts_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.SessionID, entry.Kind, entry.Strategy, entry.Cuisines, entry.Budget, entry.Location, entry.ResultCount, entry.TSMs)
	if err != nil {
		return fmt.Errorf("failed to insert query log entry: %w", err)
	}
	entry.ID, _ = result.LastInsertId()
	return nil
}

// RecentQueries returns the newest query log entries.
func (s *SQLiteStore) RecentQueries(ctx context.Context, limit int) ([]QueryLogEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, kind, strategy, cuisines, budget, location, result_count, ts_ms
		FROM query_log
		ORDER BY ts_ms DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query log: %w", err)
	}
	defer rows.Close()

	var out []QueryLogEntry
	for rows.Next() {
		var e QueryLogEntry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Kind, &e.Strategy, &e.Cuisines, &e.Budget, &e.Location, &e.ResultCount, &e.TSMs); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
