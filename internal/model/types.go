package model

import "time"

// Intensity is the heat tier of a venue or heat spot.
type Intensity string

const (
	IntensityHot  Intensity = "hot"
	IntensityWarm Intensity = "warm"
	IntensityCool Intensity = "cool"
)

// Rank orders tiers hot > warm > cool; unknown tiers rank 0.
func (i Intensity) Rank() int {
	switch i {
	case IntensityHot:
		return 3
	case IntensityWarm:
		return 2
	case IntensityCool:
		return 1
	default:
		return 0
	}
}

// Valid reports whether i is a known tier.
func (i Intensity) Valid() bool { return i.Rank() > 0 }

// Position is a location on the map as percentages of its height (Top) and
// width (Left).
type Position struct {
	Top  float64 `yaml:"top"`
	Left float64 `yaml:"left"`
}

// Valid reports whether both coordinates are within 0..100.
func (p Position) Valid() bool {
	return p.Top >= 0 && p.Top <= 100 && p.Left >= 0 && p.Left <= 100
}

// Venue is a place shown as a pin on the map.
type Venue struct {
	ID           int       `yaml:"id"`
	Name         string    `yaml:"name"`
	Category     string    `yaml:"type"`
	Emoji        string    `yaml:"emoji"`
	People       int       `yaml:"people"`
	Intensity    Intensity `yaml:"intensity"`
	Position     *Position `yaml:"position"`
	Neighborhood string    `yaml:"neighborhood"`
}

// HeatSpot is a blob of the heat overlay. Size is its diameter in px.
type HeatSpot struct {
	Size      int       `yaml:"size"`
	Intensity Intensity `yaml:"intensity"`
	Position  *Position `yaml:"position"`
}

// User is a person shown on a discovery card.
type User struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Avatar   string `yaml:"avatar"`
	Distance string `yaml:"distance"`
	Level    string `yaml:"level"`
	Verified bool   `yaml:"verified"`
	Bio      string `yaml:"bio"`
	Accent   string `yaml:"accent"` // hex color for the card header
}

// SparkRequest is an incoming match request in the sparks inbox.
type SparkRequest struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Avatar   string `yaml:"avatar"`
	Location string `yaml:"location"`
	Distance string `yaml:"distance"`
	Received string `yaml:"time"`
}

// Setting is a profile toggle.
type Setting struct {
	Key     string `yaml:"key"`
	Label   string `yaml:"label"`
	Enabled bool   `yaml:"enabled"`
}

// Dataset is the immutable sample data the app runs on.
type Dataset struct {
	Venues    []Venue
	HeatSpots []HeatSpot
	Users     []User
	Sparks    []SparkRequest
	Settings  []Setting
}

// UserByID returns the user with the given id.
func (d *Dataset) UserByID(id string) (User, bool) {
	for _, u := range d.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// VenueHeat is a venue ranked by activity.
type VenueHeat struct {
	Name      string
	Emoji     string
	People    int64
	Intensity Intensity
}

// NeighborhoodHeat aggregates venue activity per neighborhood.
type NeighborhoodHeat struct {
	Neighborhood string
	Venues       int64
	People       int64
	Hottest      Intensity
}

// CategoryCount is the number of venues in one category.
type CategoryCount struct {
	Category string
	Count    int64
}

// VerdictRecord is one decision taken on a discovery card during this session.
type VerdictRecord struct {
	CardID    string
	Verdict   string // "right", "left", "up"
	DecidedAt time.Time
}
