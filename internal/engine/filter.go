package engine

import (
	"strings"

	"github.com/runger/bistro/internal/dataset"
)

// Filter narrows restaurants to those matching prefs. A restaurant must
// pass all three criteria (cuisine, budget, location); criteria left
// unset in prefs pass everything. An empty result is a valid value
// meaning "no matches", not an error.
//
// Filter is pure. Callers that want to rerank later must cache the
// returned slice themselves.
func Filter(restaurants []dataset.Restaurant, prefs Preferences) ([]dataset.Restaurant, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	out := make([]dataset.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if matchesCuisine(r, prefs.Cuisines) &&
			matchesBudget(r, prefs.MaxCost) &&
			matchesLocation(r, prefs.Location) {
			out = append(out, r)
		}
	}
	return out, nil
}

// matchesCuisine reports whether any of the restaurant's cuisine tokens
// contains any requested token, case-insensitively. An empty request
// passes everything.
func matchesCuisine(r dataset.Restaurant, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		w = strings.ToLower(strings.TrimSpace(w))
		for _, c := range r.Cuisines {
			if strings.Contains(c, w) {
				return true
			}
		}
	}
	return false
}

// matchesBudget passes restaurants with unknown cost; an unknown cost
// is not evidence the place is over budget.
func matchesBudget(r dataset.Restaurant, maxCost *float64) bool {
	if maxCost == nil || r.CostForTwo == nil {
		return true
	}
	return *r.CostForTwo <= *maxCost
}

func matchesLocation(r dataset.Restaurant, location string) bool {
	if location == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.City), strings.ToLower(location))
}
