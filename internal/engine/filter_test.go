package engine

import (
	"errors"
	"testing"

	"github.com/runger/bistro/internal/dataset"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func testRestaurants() []dataset.Restaurant {
	return []dataset.Restaurant{
		{
			Name:       "Spice Route",
			City:       "Bangalore",
			Cuisines:   []string{"north indian", "mughlai"},
			CostForTwo: floatPtr(600),
			Rating:     floatPtr(4.2),
			Votes:      intPtr(800),
		},
		{
			Name:       "Wok This Way",
			City:       "Bangalore",
			Cuisines:   []string{"chinese", "thai"},
			CostForTwo: floatPtr(900),
			Rating:     floatPtr(4.0),
			Votes:      intPtr(450),
		},
		{
			Name:     "Corner Cafe",
			City:     "Mumbai",
			Cuisines: []string{"continental"},
			// cost, rating, votes unknown
		},
	}
}

func TestFilter_UnconstrainedReturnsAll(t *testing.T) {
	t.Parallel()

	all := testRestaurants()
	got, err := Filter(all, Preferences{})
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if len(got) != len(all) {
		t.Fatalf("Filter() returned %d rows, want %d", len(got), len(all))
	}
	for i := range got {
		if got[i].Name != all[i].Name {
			t.Errorf("row %d = %q, want %q (order must be preserved)", i, got[i].Name, all[i].Name)
		}
	}
}

func TestFilter_CuisineSubstringCaseInsensitive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cuisines []string
		want     []string
	}{
		{"exact token", []string{"chinese"}, []string{"Wok This Way"}},
		{"substring", []string{"indian"}, []string{"Spice Route"}},
		{"mixed case", []string{"THAI"}, []string{"Wok This Way"}},
		{"any of several", []string{"mughlai", "continental"}, []string{"Spice Route", "Corner Cafe"}},
		{"no match", []string{"ethiopian"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(testRestaurants(), Preferences{Cuisines: tt.cuisines})
			if err != nil {
				t.Fatalf("Filter() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Filter() returned %d rows, want %d", len(got), len(tt.want))
			}
			for i, name := range tt.want {
				if got[i].Name != name {
					t.Errorf("row %d = %q, want %q", i, got[i].Name, name)
				}
			}
		})
	}
}

func TestFilter_BudgetPassesUnknownCost(t *testing.T) {
	t.Parallel()

	got, err := Filter(testRestaurants(), Preferences{MaxCost: floatPtr(700)})
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}

	// Spice Route (600) passes, Wok This Way (900) is excluded, and
	// Corner Cafe passes because an unknown cost is not over budget.
	want := map[string]bool{"Spice Route": true, "Corner Cafe": true}
	if len(got) != len(want) {
		t.Fatalf("Filter() returned %d rows, want %d", len(got), len(want))
	}
	for _, r := range got {
		if !want[r.Name] {
			t.Errorf("unexpected row %q", r.Name)
		}
	}
}

func TestFilter_LocationSubstring(t *testing.T) {
	t.Parallel()

	got, err := Filter(testRestaurants(), Preferences{Location: "bang"})
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Filter() returned %d rows, want 2", len(got))
	}
}

func TestFilter_AllCriteriaMustPass(t *testing.T) {
	t.Parallel()

	got, err := Filter(testRestaurants(), Preferences{
		Cuisines: []string{"thai"},
		MaxCost:  floatPtr(700), // excludes Wok This Way despite cuisine match
		Location: "bangalore",
	})
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Filter() returned %d rows, want 0", len(got))
	}
	if got == nil {
		t.Fatal("empty result must be non-nil: it is a valid no-matches value")
	}
}

func TestFilter_InvalidPreferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		prefs Preferences
	}{
		{"negative budget", Preferences{MaxCost: floatPtr(-1)}},
		{"blank cuisine token", Preferences{Cuisines: []string{"indian", "  "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Filter(testRestaurants(), tt.prefs)
			if !errors.Is(err, ErrInvalidPreferences) {
				t.Fatalf("Filter() error = %v, want ErrInvalidPreferences", err)
			}
		})
	}
}

func TestFilter_Pure(t *testing.T) {
	t.Parallel()

	all := testRestaurants()
	before := make([]dataset.Restaurant, len(all))
	copy(before, all)

	if _, err := Filter(all, Preferences{Cuisines: []string{"thai"}}); err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	for i := range all {
		if all[i].Name != before[i].Name || all[i].City != before[i].City {
			t.Fatalf("Filter() mutated its input at row %d", i)
		}
	}
}
