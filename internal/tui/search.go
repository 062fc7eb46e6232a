package tui

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tinytelemetry/spark/internal/model"
)

// venueMatch is a venue ranked against a search query.
type venueMatch struct {
	Index    int
	Distance int
}

// rankVenues orders venues by how well their name matches query. Names that
// contain the query outrank the rest; ties go to the smaller edit distance,
// then to list order. An empty query returns nil.
func rankVenues(venues []model.Venue, query string, limit int) []venueMatch {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	type scored struct {
		venueMatch
		contains bool
	}
	all := make([]scored, 0, len(venues))
	for i, v := range venues {
		name := strings.ToLower(v.Name)
		d := levenshtein.ComputeDistance(q, name)
		// Score prefixes of the name the same length as the query too, so
		// "pier" is close to "Pier 17".
		if len(name) > len(q) {
			d = min(d, levenshtein.ComputeDistance(q, name[:len(q)]))
		}
		all = append(all, scored{
			venueMatch: venueMatch{Index: i, Distance: d},
			contains:   strings.Contains(name, q),
		})
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].contains != all[j].contains {
			return all[i].contains
		}
		return all[i].Distance < all[j].Distance
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	out := make([]venueMatch, len(all))
	for i, s := range all {
		out[i] = s.venueMatch
	}
	return out
}
