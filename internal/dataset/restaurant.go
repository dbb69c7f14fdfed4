// Package dataset loads and normalizes tabular restaurant data.
// It maps heterogeneous CSV column names onto a canonical schema and
// coerces numeric fields, so downstream consumers never see a raw row.
package dataset

// Restaurant is one normalized row. Numeric fields that could not be
// parsed (or were absent) are nil rather than a sentinel value, so a
// missing rating can never be confused with a real one.
type Restaurant struct {
	Name     string
	City     string
	Cuisines []string // lower-cased, comma-split tokens

	CostForTwo *float64 // nil = unknown
	Rating     *float64 // nil = unknown, otherwise in [0,5]
	Votes      *int     // nil = unknown

	Latitude  *float64 // nil = unknown
	Longitude *float64 // nil = unknown
}

// VotesOrZero returns the vote count, treating unknown as zero.
func (r *Restaurant) VotesOrZero() int {
	if r.Votes == nil {
		return 0
	}
	return *r.Votes
}

// HasCoordinates reports whether both latitude and longitude are known.
// Renderers skip map markers for rows without coordinates; the engine
// passes them through untouched.
func (r *Restaurant) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}
