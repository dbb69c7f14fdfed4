package engine

import (
	"fmt"
	"strings"
)

// Preferences is one user's filter constraints. The zero value matches
// everything. A Preferences value is immutable once submitted; reranks
// reuse it unchanged.
type Preferences struct {
	// Cuisines are the requested cuisine tokens. Empty means no
	// cuisine filter. Matching is case-insensitive substring.
	Cuisines []string

	// MaxCost is the upper bound on cost-for-two. nil means no budget
	// filter.
	MaxCost *float64

	// Location is a city/region token matched case-insensitively as a
	// substring of the restaurant's city. Empty means no filter.
	Location string
}

// Validate rejects malformed preferences: a negative budget or a
// blank cuisine token. It returns nil for the zero value.
func (p Preferences) Validate() error {
	if p.MaxCost != nil && *p.MaxCost < 0 {
		return fmt.Errorf("%w: budget must be non-negative, got %v", ErrInvalidPreferences, *p.MaxCost)
	}
	for i, c := range p.Cuisines {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("%w: cuisine token %d is blank", ErrInvalidPreferences, i)
		}
	}
	return nil
}

// IsUnconstrained reports whether the preferences filter nothing.
func (p Preferences) IsUnconstrained() bool {
	return len(p.Cuisines) == 0 && p.MaxCost == nil && p.Location == ""
}
