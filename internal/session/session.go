// Package session owns the per-user query state around the engine: the
// submitted preferences, the cached filtered set, the active strategy
// and the current ranked result. The engine stays pure; everything
// stateful lives here.
//
// A Session is a single-user value and is not safe for concurrent use.
// The restaurant dataset it reads is shared and never mutated, so any
// number of sessions can run over it at once.
package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/runger/bistro/internal/dataset"
	"github.com/runger/bistro/internal/engine"
	"github.com/runger/bistro/internal/storage"
	"github.com/runger/bistro/internal/strategy"
)

// Session tracks one user's recommendation state across submits and
// reranks.
type Session struct {
	id          string
	restaurants []dataset.Restaurant
	registry    *strategy.Registry
	store       storage.Store
	logger      *slog.Logger

	prefs    engine.Preferences
	strat    strategy.Strategy
	filtered []dataset.Restaurant // nil until the first successful Submit
	result   []engine.Scored
}

// Option configures a Session.
type Option func(*Session)

// WithStore attaches a store for query logging. Logging failures are
// reported, never returned: persistence is not allowed to break a
// recommendation request.
func WithStore(store storage.Store) Option {
	return func(s *Session) { s.store = store }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithID sets a fixed session ID instead of a generated one.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// New creates a session over a shared, read-only restaurant dataset.
func New(restaurants []dataset.Restaurant, registry *strategy.Registry, opts ...Option) *Session {
	s := &Session{
		id:          uuid.NewString(),
		restaurants: restaurants,
		registry:    registry,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Active reports whether a query has been submitted, i.e. whether a
// filtered set is cached and Rerank may be called.
func (s *Session) Active() bool { return s.filtered != nil }

// Preferences returns the preferences of the active query.
func (s *Session) Preferences() engine.Preferences { return s.prefs }

// Strategy returns the name of the strategy the current result was
// ranked under, or "" when no query is active.
func (s *Session) Strategy() string { return s.strat.Name }

// Results returns the current ranked result.
func (s *Session) Results() []engine.Scored { return s.result }

// FilteredCount returns the size of the cached filtered set.
func (s *Session) FilteredCount() int { return len(s.filtered) }

// Submit runs a fresh query: filter, score, rank. It replaces any
// previously cached filtered set. An empty result is a valid outcome,
// not an error.
func (s *Session) Submit(ctx context.Context, prefs engine.Preferences, strategyName string) ([]engine.Scored, error) {
	strat, err := s.registry.Get(strategyName)
	if err != nil {
		return nil, err
	}

	filtered, err := engine.Filter(s.restaurants, prefs)
	if err != nil {
		return nil, err
	}

	s.prefs = prefs
	s.strat = strat
	s.filtered = filtered
	s.result = engine.ScoreAndRank(filtered, strat)

	s.logger.Debug("query submitted",
		"session_id", s.id,
		"strategy", strat.Name,
		"matches", len(filtered))
	s.logQuery(ctx, storage.QueryKindSubmit)
	return s.result, nil
}

// Rerank re-scores and re-ranks the cached filtered set under a new
// strategy without re-running the filter stage. It fails with
// engine.ErrNoActiveQuery when no query has been submitted.
func (s *Session) Rerank(ctx context.Context, strategyName string) ([]engine.Scored, error) {
	strat, err := s.registry.Get(strategyName)
	if err != nil {
		return nil, err
	}

	result, err := engine.Rerank(s.filtered, strat)
	if err != nil {
		return nil, err
	}

	s.strat = strat
	s.result = result

	s.logger.Debug("query reranked",
		"session_id", s.id,
		"strategy", strat.Name,
		"matches", len(s.filtered))
	s.logQuery(ctx, storage.QueryKindRerank)
	return s.result, nil
}

// Reset drops the cached query state, returning the session to the
// no-query state.
func (s *Session) Reset() {
	s.prefs = engine.Preferences{}
	s.strat = strategy.Strategy{}
	s.filtered = nil
	s.result = nil
}

func (s *Session) logQuery(ctx context.Context, kind string) {
	if s.store == nil {
		return
	}
	entry := &storage.QueryLogEntry{
		SessionID:   s.id,
		Kind:        kind,
		Strategy:    s.strat.Name,
		Cuisines:    strings.Join(s.prefs.Cuisines, ","),
		Budget:      s.prefs.MaxCost,
		Location:    s.prefs.Location,
		ResultCount: len(s.result),
	}
	if err := s.store.AppendQueryLog(ctx, entry); err != nil {
		s.logger.Warn("failed to record query", "session_id", s.id, "error", err)
	}
}
