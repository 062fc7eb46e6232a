package model

// VenueQuerier provides read-only queries over the venue dataset.
type VenueQuerier interface {
	VenueCount() (int64, error)
	HottestVenues(limit int) ([]VenueHeat, error)
	NeighborhoodHeat() ([]NeighborhoodHeat, error)
	CategoryCounts() ([]CategoryCount, error)
}

// VerdictRecorder keeps the tally of discovery decisions for this session.
type VerdictRecorder interface {
	RecordVerdict(rec VerdictRecord) error
	VerdictCounts() (map[string]int64, error)
}

// VenueStore is everything the TUI reads from and writes to the store.
type VenueStore interface {
	VenueQuerier
	VerdictRecorder
}
