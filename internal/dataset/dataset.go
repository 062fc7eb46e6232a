// Package dataset loads the static sample data: venues, heat spots,
// discovery users, spark requests and profile settings.
package dataset

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/tinytelemetry/spark/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

// File names looked up in a dataset directory.
const (
	VenuesFile    = "venues.yaml"
	HeatSpotsFile = "heatspots.yaml"
	UsersFile     = "users.yaml"
	SparksFile    = "sparks.yaml"
	SettingsFile  = "settings.yaml"
)

// ErrInvalidEntry marks a record that was skipped during loading.
var ErrInvalidEntry = errors.New("dataset: invalid entry")

// Default returns the embedded sample data set.
func Default() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return sub
}

// Dir returns a dataset rooted at a directory on disk. Files missing from
// the directory fall back to the embedded copies.
func Dir(path string) fs.FS {
	return overlayFS{top: os.DirFS(path), base: Default()}
}

type overlayFS struct {
	top, base fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := o.top.Open(name)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return o.base.Open(name)
	}
	return nil, err
}

// Loader reads and validates a dataset.
type Loader struct {
	fsys fs.FS
	log  *zap.Logger
}

// NewLoader creates a loader over fsys. A nil logger discards warnings.
func NewLoader(fsys fs.FS, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{fsys: fsys, log: log.Named("dataset")}
}

// Load reads every section concurrently. Malformed records are skipped with
// a warning; unreadable or unparsable files fail the load.
func (l *Loader) Load(ctx context.Context) (*model.Dataset, error) {
	var (
		ds       model.Dataset
		venues   []model.Venue
		spots    []model.HeatSpot
		users    []model.User
		sparks   []model.SparkRequest
		settings []model.Setting
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return l.decode(ctx, VenuesFile, &venues) })
	g.Go(func() error { return l.decode(ctx, HeatSpotsFile, &spots) })
	g.Go(func() error { return l.decode(ctx, UsersFile, &users) })
	g.Go(func() error { return l.decode(ctx, SparksFile, &sparks) })
	g.Go(func() error { return l.decode(ctx, SettingsFile, &settings) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds.Venues = l.dropDuplicateVenues(keepValid(l, VenuesFile, venues, ValidateVenue))
	ds.HeatSpots = keepValid(l, HeatSpotsFile, spots, ValidateHeatSpot)
	ds.Users = keepValid(l, UsersFile, assignUserIDs(users), ValidateUser)
	ds.Sparks = keepValid(l, SparksFile, assignSparkIDs(sparks), ValidateSpark)
	ds.Settings = settings

	l.log.Debug("dataset loaded",
		zap.Int("venues", len(ds.Venues)),
		zap.Int("heat_spots", len(ds.HeatSpots)),
		zap.Int("users", len(ds.Users)),
		zap.Int("sparks", len(ds.Sparks)))
	return &ds, nil
}

func (l *Loader) decode(ctx context.Context, name string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

func keepValid[T any](l *Loader, file string, items []T, validate func(T) error) []T {
	out := make([]T, 0, len(items))
	for i, it := range items {
		if err := validate(it); err != nil {
			l.log.Warn("skipping entry", zap.String("file", file), zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, it)
	}
	return out
}

// dropDuplicateVenues keeps the first venue for each id.
func (l *Loader) dropDuplicateVenues(venues []model.Venue) []model.Venue {
	seen := make(map[int]bool, len(venues))
	out := venues[:0]
	for _, v := range venues {
		if seen[v.ID] {
			l.log.Warn("skipping entry", zap.String("file", VenuesFile), zap.Int("id", v.ID),
				zap.Error(fmt.Errorf("%w: venue %q repeats id %d", ErrInvalidEntry, v.Name, v.ID)))
			continue
		}
		seen[v.ID] = true
		out = append(out, v)
	}
	return out
}

// ValidateVenue rejects venues without a positive id, a name, a usable
// position or a known tier.
func ValidateVenue(v model.Venue) error {
	switch {
	case v.ID <= 0:
		return fmt.Errorf("%w: venue %q has no id", ErrInvalidEntry, v.Name)
	case strings.TrimSpace(v.Name) == "":
		return fmt.Errorf("%w: venue %d has no name", ErrInvalidEntry, v.ID)
	case v.Position == nil:
		return fmt.Errorf("%w: venue %q has no position", ErrInvalidEntry, v.Name)
	case !v.Position.Valid():
		return fmt.Errorf("%w: venue %q position out of range", ErrInvalidEntry, v.Name)
	case !v.Intensity.Valid():
		return fmt.Errorf("%w: venue %q has unknown intensity %q", ErrInvalidEntry, v.Name, v.Intensity)
	case v.People < 0:
		return fmt.Errorf("%w: venue %q has negative occupancy", ErrInvalidEntry, v.Name)
	}
	return nil
}

// ValidateHeatSpot rejects spots without a position, size or known tier.
func ValidateHeatSpot(s model.HeatSpot) error {
	switch {
	case s.Position == nil || !s.Position.Valid():
		return fmt.Errorf("%w: heat spot has no usable position", ErrInvalidEntry)
	case s.Size <= 0:
		return fmt.Errorf("%w: heat spot size %d", ErrInvalidEntry, s.Size)
	case !s.Intensity.Valid():
		return fmt.Errorf("%w: heat spot intensity %q", ErrInvalidEntry, s.Intensity)
	}
	return nil
}

// ValidateUser rejects users without a name.
func ValidateUser(u model.User) error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: user has no name", ErrInvalidEntry)
	}
	return nil
}

// ValidateSpark rejects sparks without a sender.
func ValidateSpark(s model.SparkRequest) error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: spark has no sender", ErrInvalidEntry)
	}
	return nil
}

// Stable IDs derived from content, so a reload maps to the same cards.
func stableID(kind string, parts ...string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind+":"+strings.Join(parts, "|"))).String()
}

func assignUserIDs(users []model.User) []model.User {
	for i := range users {
		if users[i].ID == "" {
			users[i].ID = stableID("user", users[i].Name, users[i].Avatar)
		}
	}
	return users
}

func assignSparkIDs(sparks []model.SparkRequest) []model.SparkRequest {
	for i := range sparks {
		if sparks[i].ID == "" {
			sparks[i].ID = stableID("spark", sparks[i].Name, sparks[i].Location, sparks[i].Received)
		}
	}
	return sparks
}
