package storage

import (
	"context"
	"fmt"

	"github.com/runger/bistro/internal/feedback"
)

// RecordFeedback stores a feedback record and returns its row ID.
func (s *SQLiteStore) RecordFeedback(ctx context.Context, rec *feedback.Record) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}
	rec.Stamp()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (session_id, strategy, satisfaction, relevant, comment, ts_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.SessionID, rec.Strategy, rec.Satisfaction, boolToInt(rec.Relevant), rec.Comment, rec.TSMs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert feedback: %w", err)
	}
	id, _ := result.LastInsertId()
	return id, nil
}

// QueryFeedback returns feedback records, newest first. If sessionID is
// empty, records from all sessions are returned.
func (s *SQLiteStore) QueryFeedback(ctx context.Context, sessionID string, limit int) ([]feedback.Record, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, session_id, strategy, satisfaction, relevant, COALESCE(comment, ''), ts_ms
		FROM feedback
	`
	args := []interface{}{}
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY ts_ms DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var out []feedback.Record
	for rows.Next() {
		var rec feedback.Record
		var relevant int
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Strategy, &rec.Satisfaction, &relevant, &rec.Comment, &rec.TSMs); err != nil {
			return nil, err
		}
		rec.Relevant = relevant != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

// FeedbackSummary aggregates feedback per strategy, most-reviewed
// strategies first.
func (s *SQLiteStore) FeedbackSummary(ctx context.Context) ([]feedback.StrategySummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT strategy, COUNT(*), AVG(satisfaction), SUM(relevant)
		FROM feedback
		GROUP BY strategy
		ORDER BY COUNT(*) DESC, strategy ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize feedback: %w", err)
	}
	defer rows.Close()

	var out []feedback.StrategySummary
	for rows.Next() {
		var sum feedback.StrategySummary
		if err := rows.Scan(&sum.Strategy, &sum.Count, &sum.AvgSatisfaction, &sum.RelevantCount); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
