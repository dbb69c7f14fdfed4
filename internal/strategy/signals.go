package strategy

import (
	"github.com/runger/bistro/internal/dataset"
)

// DefaultVoteCap is the vote count at which the votes signal saturates.
// A fixed ceiling keeps a handful of outlier restaurants from dominating
// the ranking on raw popularity.
const DefaultVoteCap = 1000

// Builtin signal names.
const (
	SignalRating = "rating"
	SignalVotes  = "votes"
)

// SignalFunc maps a restaurant to a normalized value in [0,1].
// Unknown inputs contribute zero; a signal never fails.
type SignalFunc func(r dataset.Restaurant) float64

// RatingSignal rescales the 0-5 rating to [0,1]. Unknown rating → 0.
func RatingSignal(r dataset.Restaurant) float64 {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating / 5
}

// VotesSignal returns a signal that rescales the vote count to [0,1],
// saturating at cap. Unknown votes → 0.
func VotesSignal(cap int) SignalFunc {
	if cap <= 0 {
		cap = DefaultVoteCap
	}
	return func(r dataset.Restaurant) float64 {
		if r.Votes == nil {
			return 0
		}
		v := *r.Votes
		if v >= cap {
			return 1
		}
		if v < 0 {
			return 0
		}
		return float64(v) / float64(cap)
	}
}
