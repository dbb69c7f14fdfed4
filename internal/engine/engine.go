// Package engine implements the filtering-and-ranking core of bistro.
// It exposes three pure operations: Filter narrows the dataset to rows
// matching user preferences, ScoreAndRank orders a filtered set under a
// strategy, and Rerank re-applies scoring to a previously filtered set
// without touching the filter stage.
//
// The engine holds no state. The caller (internal/session) owns the
// cached filtered set and decides what to persist.
package engine

import (
	"errors"
)

var (
	// ErrInvalidPreferences is returned when preferences fail
	// validation: a negative budget or a blank cuisine token. Invalid
	// input is rejected, never silently coerced.
	ErrInvalidPreferences = errors.New("invalid preferences")

	// ErrNoActiveQuery is returned by Rerank when there is no cached
	// filtered set to re-rank.
	ErrNoActiveQuery = errors.New("no active query")
)
