package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// columnAliases maps each canonical column to the header names seen in
// the wild. The first alias found in the file wins.
var columnAliases = map[string][]string{
	"name":      {"Restaurant Name", "restaurant_name", "name"},
	"city":      {"City", "Locality", "Locality Verbose", "Address", "location"},
	"rating":    {"Aggregate rating", "rate", "rating", "Rating"},
	"cost":      {"Average Cost for two", "cost_for_two", "approx_cost", "cost", "average_cost"},
	"cuisines":  {"Cuisines", "cuisine", "Cuisine"},
	"votes":     {"Votes", "votes", "vote_count"},
	"latitude":  {"Latitude", "latitude", "lat"},
	"longitude": {"Longitude", "longitude", "lng", "lon"},
}

// LoadReport summarizes what happened during a load. Callers surface it
// to the user; a non-empty MissingColumns is a warning, not an error.
type LoadReport struct {
	Rows           int      // data rows read from the file
	Kept           int      // rows that made it into the dataset
	DroppedNoName  int      // rows discarded for having no name
	Duplicates     int      // rows discarded as (name, city) duplicates
	MissingColumns []string // canonical columns absent from the header
}

// Load reads a restaurant CSV from path. The file is decoded as UTF-8;
// if it contains invalid UTF-8 it is re-decoded as Latin-1, which covers
// the legacy exports this format ships in.
func Load(path string) ([]Restaurant, *LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses restaurant CSV data from r. See Load for decoding rules.
func Read(r io.Reader) ([]Restaurant, *LoadReport, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	if !utf8.Valid(raw) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode dataset as latin-1: %w", err)
		}
		raw = decoded
	}

	cr := csv.NewReader(strings.NewReader(string(raw)))
	cr.FieldsPerRecord = -1 // ragged rows are handled per-field below

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, fmt.Errorf("dataset is empty")
		}
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols, missing := resolveColumns(header)
	report := &LoadReport{MissingColumns: missing}
	if _, ok := cols["name"]; !ok {
		return nil, nil, fmt.Errorf("dataset has no recognizable name column (header: %v)", header)
	}

	var out []Restaurant
	seen := make(map[string]bool)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row %d: %w", report.Rows+2, err)
		}
		report.Rows++

		row := normalizeRow(rec, cols)
		if row.Name == "" {
			report.DroppedNoName++
			continue
		}
		key := strings.ToLower(row.Name) + "\x00" + strings.ToLower(row.City)
		if seen[key] {
			report.Duplicates++
			continue
		}
		seen[key] = true
		out = append(out, row)
		report.Kept++
	}

	return out, report, nil
}

// resolveColumns maps canonical column names to field indexes in the
// header, and returns the canonical names that could not be resolved.
func resolveColumns(header []string) (map[string]int, []string) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	cols := make(map[string]int)
	var missing []string
	for canonical, aliases := range columnAliases {
		found := false
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				cols[canonical] = i
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, canonical)
		}
	}
	return cols, missing
}

func normalizeRow(rec []string, cols map[string]int) Restaurant {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	r := Restaurant{
		Name:     field("name"),
		City:     field("city"),
		Cuisines: splitCuisines(field("cuisines")),
	}

	if v, ok := parseFloat(field("rating")); ok {
		r.Rating = &v
		clampRating(r.Rating)
	}
	if v, ok := parseFloat(stripThousands(field("cost"))); ok && v >= 0 {
		r.CostForTwo = &v
	}
	if v, ok := parseInt(field("votes")); ok && v >= 0 {
		r.Votes = &v
	}
	if v, ok := parseFloat(field("latitude")); ok {
		r.Latitude = &v
	}
	if v, ok := parseFloat(field("longitude")); ok {
		r.Longitude = &v
	}
	return r
}

// splitCuisines tokenizes a comma-delimited cuisine string into
// lower-cased tokens, dropping empties.
func splitCuisines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(strings.ToLower(s), ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// stripThousands removes grouping commas ("1,200" → "1200") before
// numeric parsing. Cost columns in legacy exports use them.
func stripThousands(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

// parseFloat rejects NaN and infinities along with parse failures:
// strconv accepts "nan"/"inf" literals, but a non-finite value stored
// behind a non-nil pointer would poison every score computed from it.
func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func clampRating(r *float64) {
	if *r < 0 {
		*r = 0
	}
	if *r > 5 {
		*r = 5
	}
}
