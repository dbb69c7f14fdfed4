// Package strategy defines named scoring strategies for the
// recommendation engine. A strategy is a weight vector over a fixed set
// of normalized signals; new strategies are added by registering an
// identifier→weights entry, never by branching logic in the scorer.
package strategy

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/runger/bistro/internal/dataset"
)

// Builtin strategy names.
const (
	RatingHeavy = "rating-heavy"
	VotesHeavy  = "votes-heavy"
)

var (
	// ErrUnknownStrategy is returned by Get for an unregistered name.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrUnknownSignal is returned when a strategy references a signal
	// that is not in the registry.
	ErrUnknownSignal = errors.New("unknown signal")

	// ErrInvalidWeights is returned for weight vectors that could push
	// a composite score outside [0,1].
	ErrInvalidWeights = errors.New("invalid strategy weights")
)

// weightSumTolerance absorbs float noise when checking that weights sum
// to at most 1.
const weightSumTolerance = 1e-9

// Strategy is a named weight vector over registered signals. The signal
// functions are bound when the strategy is registered, so evaluation
// cannot encounter an unknown signal at scoring time.
type Strategy struct {
	Name    string
	Weights map[string]float64

	signals map[string]SignalFunc
}

// Contribution is one signal's share of a composite score.
type Contribution struct {
	Signal string
	Weight float64
	Value  float64 // normalized signal value in [0,1]
}

// Weighted returns the weighted contribution of this signal.
func (c Contribution) Weighted() float64 {
	return c.Weight * c.Value
}

// Evaluate computes the composite score for r. The result is in [0,1]:
// every signal is normalized and the registry rejects weight vectors
// summing above 1.
func (s Strategy) Evaluate(r dataset.Restaurant) float64 {
	var score float64
	for name, w := range s.Weights {
		score += w * s.signals[name](r)
	}
	return score
}

// Contributions returns the per-signal breakdown for r, ordered by
// signal name for deterministic output.
func (s Strategy) Contributions(r dataset.Restaurant) []Contribution {
	out := make([]Contribution, 0, len(s.Weights))
	for name, w := range s.Weights {
		out = append(out, Contribution{Signal: name, Weight: w, Value: s.signals[name](r)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Signal < out[j].Signal })
	return out
}

// Registry holds the known signals and the strategies defined over them.
// The zero value is not usable; call NewRegistry.
type Registry struct {
	signals    map[string]SignalFunc
	strategies map[string]Strategy
}

// NewRegistry returns a registry with the builtin signals and the two
// builtin strategies (rating-heavy 0.8/0.2, votes-heavy 0.5/0.5).
func NewRegistry() *Registry {
	return NewRegistryWithVoteCap(DefaultVoteCap)
}

var defaultRegistry = NewRegistry()

// Default returns the shared registry holding only the builtin signals
// and strategies. Callers that register custom strategies should build
// their own with NewRegistry.
func Default() *Registry { return defaultRegistry }

// NewRegistryWithVoteCap is NewRegistry with a custom saturation point
// for the votes signal.
func NewRegistryWithVoteCap(voteCap int) *Registry {
	reg := &Registry{
		signals:    make(map[string]SignalFunc),
		strategies: make(map[string]Strategy),
	}
	reg.RegisterSignal(SignalRating, RatingSignal)
	reg.RegisterSignal(SignalVotes, VotesSignal(voteCap))

	// Builtins cannot fail validation.
	_ = reg.Register(RatingHeavy, map[string]float64{SignalRating: 0.8, SignalVotes: 0.2})
	_ = reg.Register(VotesHeavy, map[string]float64{SignalRating: 0.5, SignalVotes: 0.5})
	return reg
}

// RegisterSignal adds (or replaces) a named signal. Strategies already
// registered keep the function they were bound to.
func (reg *Registry) RegisterSignal(name string, fn SignalFunc) {
	reg.signals[name] = fn
}

// Register validates weights and adds a strategy to the registry,
// replacing any existing strategy with the same name.
//
// Weights must be non-negative, reference registered signals, and sum
// to at most 1 so that composite scores stay in [0,1].
func (reg *Registry) Register(name string, weights map[string]float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty strategy name", ErrInvalidWeights)
	}
	if len(weights) == 0 {
		return fmt.Errorf("%w: strategy %q has no weights", ErrInvalidWeights, name)
	}

	var sum float64
	bound := make(map[string]SignalFunc, len(weights))
	copied := make(map[string]float64, len(weights))
	for sig, w := range weights {
		fn, ok := reg.signals[sig]
		if !ok {
			return fmt.Errorf("%w: %q in strategy %q (known: %s)",
				ErrUnknownSignal, sig, name, strings.Join(reg.SignalNames(), ", "))
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: signal %q has weight %v in strategy %q",
				ErrInvalidWeights, sig, w, name)
		}
		sum += w
		bound[sig] = fn
		copied[sig] = w
	}
	if sum > 1+weightSumTolerance {
		return fmt.Errorf("%w: weights for strategy %q sum to %v (max 1)",
			ErrInvalidWeights, name, sum)
	}

	reg.strategies[name] = Strategy{Name: name, Weights: copied, signals: bound}
	return nil
}

// Get returns the strategy registered under name.
func (reg *Registry) Get(name string) (Strategy, error) {
	s, ok := reg.strategies[name]
	if !ok {
		return Strategy{}, fmt.Errorf("%w: %q (known: %s)",
			ErrUnknownStrategy, name, strings.Join(reg.Names(), ", "))
	}
	return s, nil
}

// Names returns the registered strategy names, sorted.
func (reg *Registry) Names() []string {
	names := make([]string, 0, len(reg.strategies))
	for name := range reg.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SignalNames returns the registered signal names, sorted.
func (reg *Registry) SignalNames() []string {
	names := make([]string, 0, len(reg.signals))
	for name := range reg.signals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
