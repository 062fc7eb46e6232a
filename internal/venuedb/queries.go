package venuedb

import (
	"fmt"

	"github.com/tinytelemetry/spark/internal/model"
)

var _ model.VenueStore = (*Store)(nil)

// VenueCount returns the number of loaded venues.
func (s *Store) VenueCount() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM venues").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting venues: %w", err)
	}
	return n, nil
}

// HottestVenues returns the busiest venues, hotter tiers first on ties.
func (s *Store) HottestVenues(limit int) ([]model.VenueHeat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, emoji, people, intensity
		FROM venues
		ORDER BY people DESC, heat_rank DESC, name
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying hottest venues: %w", err)
	}
	defer rows.Close()

	var out []model.VenueHeat
	for rows.Next() {
		var (
			v         model.VenueHeat
			intensity string
		)
		if err := rows.Scan(&v.Name, &v.Emoji, &v.People, &intensity); err != nil {
			return nil, err
		}
		v.Intensity = model.Intensity(intensity)
		out = append(out, v)
	}
	return out, rows.Err()
}

// NeighborhoodHeat aggregates occupancy per neighborhood, busiest first.
func (s *Store) NeighborhoodHeat() ([]model.NeighborhoodHeat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT neighborhood,
		       COUNT(*)                       AS venues,
		       SUM(people)::BIGINT            AS people,
		       arg_max(intensity, heat_rank)  AS hottest
		FROM venues
		GROUP BY neighborhood
		ORDER BY people DESC, neighborhood`)
	if err != nil {
		return nil, fmt.Errorf("querying neighborhood heat: %w", err)
	}
	defer rows.Close()

	var out []model.NeighborhoodHeat
	for rows.Next() {
		var (
			n       model.NeighborhoodHeat
			hottest string
		)
		if err := rows.Scan(&n.Neighborhood, &n.Venues, &n.People, &hottest); err != nil {
			return nil, err
		}
		n.Hottest = model.Intensity(hottest)
		out = append(out, n)
	}
	return out, rows.Err()
}

// CategoryCounts returns the number of venues per category.
func (s *Store) CategoryCounts() ([]model.CategoryCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) AS n
		FROM venues
		GROUP BY category
		ORDER BY n DESC, category`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var out []model.CategoryCount
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// VerdictCounts returns how many cards went each direction this session.
func (s *Store) VerdictCounts() (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT verdict, COUNT(*) FROM verdicts GROUP BY verdict")
	if err != nil {
		return nil, fmt.Errorf("querying verdicts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var (
			verdict string
			n       int64
		)
		if err := rows.Scan(&verdict, &n); err != nil {
			return nil, err
		}
		out[verdict] = n
	}
	return out, rows.Err()
}
