package strategy

import (
	"errors"
	"math"
	"testing"

	"github.com/runger/bistro/internal/dataset"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestNewRegistry_Builtins(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	rating, err := reg.Get(RatingHeavy)
	if err != nil {
		t.Fatalf("Get(rating-heavy) error = %v", err)
	}
	if rating.Weights[SignalRating] != 0.8 || rating.Weights[SignalVotes] != 0.2 {
		t.Errorf("rating-heavy weights = %v, want rating:0.8 votes:0.2", rating.Weights)
	}

	votes, err := reg.Get(VotesHeavy)
	if err != nil {
		t.Fatalf("Get(votes-heavy) error = %v", err)
	}
	if votes.Weights[SignalRating] != 0.5 || votes.Weights[SignalVotes] != 0.5 {
		t.Errorf("votes-heavy weights = %v, want rating:0.5 votes:0.5", votes.Weights)
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	_, err := reg.Get("nope")
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("Get(nope) error = %v, want ErrUnknownStrategy", err)
	}
}

func TestRegistry_RegisterValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sname   string
		weights map[string]float64
		wantErr error
	}{
		{"unknown signal", "custom", map[string]float64{"sparkle": 1.0}, ErrUnknownSignal},
		{"negative weight", "custom", map[string]float64{SignalRating: -0.1}, ErrInvalidWeights},
		{"sum above one", "custom", map[string]float64{SignalRating: 0.8, SignalVotes: 0.3}, ErrInvalidWeights},
		{"nan weight", "custom", map[string]float64{SignalRating: math.NaN()}, ErrInvalidWeights},
		{"empty weights", "custom", map[string]float64{}, ErrInvalidWeights},
		{"empty name", " ", map[string]float64{SignalRating: 1.0}, ErrInvalidWeights},
		{"valid", "custom", map[string]float64{SignalRating: 0.6, SignalVotes: 0.4}, nil},
		{"valid underweighted", "mild", map[string]float64{SignalRating: 0.3}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			err := reg.Register(tt.sname, tt.weights)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Register() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistry_CustomSignal(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	// A cuisine-count signal: more listed cuisines, higher value.
	reg.RegisterSignal("breadth", func(r dataset.Restaurant) float64 {
		n := len(r.Cuisines)
		if n > 5 {
			n = 5
		}
		return float64(n) / 5
	})

	if err := reg.Register("broad", map[string]float64{"breadth": 0.5, SignalRating: 0.5}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	strat, err := reg.Get("broad")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	r := dataset.Restaurant{Cuisines: []string{"a", "b"}, Rating: floatPtr(5)}
	want := 0.5*(2.0/5) + 0.5*1.0
	if got := strat.Evaluate(r); math.Abs(got-want) > 1e-9 {
		t.Errorf("Evaluate() = %v, want %v", got, want)
	}
}

func TestVotesSignal_Saturation(t *testing.T) {
	t.Parallel()

	sig := VotesSignal(1000)
	tests := []struct {
		votes *int
		want  float64
	}{
		{nil, 0},
		{intPtr(0), 0},
		{intPtr(500), 0.5},
		{intPtr(1000), 1},
		{intPtr(250000), 1},
	}
	for _, tt := range tests {
		got := sig(dataset.Restaurant{Votes: tt.votes})
		if got != tt.want {
			t.Errorf("VotesSignal(%v) = %v, want %v", tt.votes, got, tt.want)
		}
	}
}

func TestRatingSignal_Unknown(t *testing.T) {
	t.Parallel()

	if got := RatingSignal(dataset.Restaurant{}); got != 0 {
		t.Errorf("RatingSignal(unknown) = %v, want 0", got)
	}
	if got := RatingSignal(dataset.Restaurant{Rating: floatPtr(2.5)}); got != 0.5 {
		t.Errorf("RatingSignal(2.5) = %v, want 0.5", got)
	}
}

func TestStrategy_ContributionsDeterministic(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	strat, err := reg.Get(VotesHeavy)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	r := dataset.Restaurant{Rating: floatPtr(4), Votes: intPtr(100)}

	first := strat.Contributions(r)
	for i := 0; i < 10; i++ {
		again := strat.Contributions(r)
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("Contributions() order changed between calls")
			}
		}
	}
	if first[0].Signal != SignalRating || first[1].Signal != SignalVotes {
		t.Errorf("Contributions() order = [%s, %s], want name order", first[0].Signal, first[1].Signal)
	}
}

func TestRegistry_Names(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	names := reg.Names()
	if len(names) != 2 || names[0] != RatingHeavy || names[1] != VotesHeavy {
		t.Errorf("Names() = %v, want [rating-heavy votes-heavy]", names)
	}
}
