package engine

import (
	"sort"
	"strings"

	"github.com/runger/bistro/internal/dataset"
	"github.com/runger/bistro/internal/strategy"
)

// Scored pairs a restaurant with its composite score under one
// strategy, plus the per-signal breakdown used for explanations.
type Scored struct {
	Restaurant dataset.Restaurant
	Score      float64
	Breakdown  []strategy.Contribution
}

// Score computes the composite score for every restaurant in filtered
// under strat. Scores are in [0,1]; restaurants with unknown rating or
// votes get zero contribution from those signals, never an error.
func Score(filtered []dataset.Restaurant, strat strategy.Strategy) []Scored {
	out := make([]Scored, 0, len(filtered))
	for _, r := range filtered {
		out = append(out, Scored{
			Restaurant: r,
			Score:      strat.Evaluate(r),
			Breakdown:  strat.Contributions(r),
		})
	}
	return out
}

// Rank orders scored restaurants by score descending. Ties break by
// votes descending, then name ascending (case-insensitive), so the
// ordering is fully deterministic. The input slice is not modified.
func Rank(scored []Scored) []Scored {
	out := make([]Scored, len(scored))
	copy(out, scored)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		vi, vj := out[i].Restaurant.VotesOrZero(), out[j].Restaurant.VotesOrZero()
		if vi != vj {
			return vi > vj
		}
		return strings.ToLower(out[i].Restaurant.Name) < strings.ToLower(out[j].Restaurant.Name)
	})
	return out
}

// ScoreAndRank composes Score and Rank for one filtered set.
func ScoreAndRank(filtered []dataset.Restaurant, strat strategy.Strategy) []Scored {
	return Rank(Score(filtered, strat))
}

// Rerank re-applies scoring and ranking to a cached filtered set under
// a new strategy, bypassing the filter stage. A nil filtered set means
// no filter call has happened and fails with ErrNoActiveQuery; an empty
// non-nil set is a valid "no matches" state and reranks to empty.
//
// Rerank(fs, s) is equivalent to ScoreAndRank(fs, s): it does not
// depend on any previously applied strategy.
func Rerank(filtered []dataset.Restaurant, strat strategy.Strategy) ([]Scored, error) {
	if filtered == nil {
		return nil, ErrNoActiveQuery
	}
	return ScoreAndRank(filtered, strat), nil
}
