// Package storage provides SQLite-based persistent storage for bistro.
// It records recommendation queries and user feedback so satisfaction
// can be compared across scoring strategies. The engine itself never
// touches storage.
package storage

import (
	"context"

	"github.com/runger/bistro/internal/feedback"
)

// Store defines the interface for all storage operations.
type Store interface {
	// Feedback
	RecordFeedback(ctx context.Context, rec *feedback.Record) (int64, error)
	QueryFeedback(ctx context.Context, sessionID string, limit int) ([]feedback.Record, error)
	FeedbackSummary(ctx context.Context) ([]feedback.StrategySummary, error)

	// Query log
	AppendQueryLog(ctx context.Context, entry *QueryLogEntry) error
	RecentQueries(ctx context.Context, limit int) ([]QueryLogEntry, error)

	// Lifecycle
	Close() error
}

// Query log kinds.
const (
	QueryKindSubmit = "submit"
	QueryKindRerank = "rerank"
)

// QueryLogEntry records one engine invocation: a fresh preference
// submission or a rerank of the cached set.
type QueryLogEntry struct {
	ID          int64
	SessionID   string
	Kind        string // submit | rerank
	Strategy    string
	Cuisines    string // comma-joined preference tokens, "" = none
	Budget      *float64
	Location    string
	ResultCount int
	TSMs        int64
}
