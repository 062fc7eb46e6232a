package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/tinytelemetry/spark/internal/model"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoadDefault(t *testing.T) {
	ds, err := NewLoader(Default(), nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := len(ds.Venues); got != 19 {
		t.Errorf("venues = %d, want 19", got)
	}
	if got := len(ds.HeatSpots); got != 8 {
		t.Errorf("heat spots = %d, want 8", got)
	}
	if got := len(ds.Users); got != 5 {
		t.Errorf("users = %d, want 5", got)
	}
	if got := len(ds.Sparks); got != 3 {
		t.Errorf("sparks = %d, want 3", got)
	}
	if len(ds.Settings) == 0 {
		t.Error("no settings loaded")
	}

	seen := map[string]bool{}
	for _, u := range ds.Users {
		if u.ID == "" {
			t.Fatalf("user %q has no id", u.Name)
		}
		if seen[u.ID] {
			t.Fatalf("duplicate user id %s", u.ID)
		}
		seen[u.ID] = true
	}

	if got := ds.Venues[13].Position.Left; got != 51.5 {
		t.Errorf("Central Park left = %v, want 51.5", got)
	}
}

func TestLoadIDsAreStable(t *testing.T) {
	a, err := NewLoader(Default(), nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, err := NewLoader(Default(), nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a.Users[0].ID != b.Users[0].ID || a.Sparks[2].ID != b.Sparks[2].ID {
		t.Fatal("ids changed between loads")
	}
}

func TestLoadSkipsMalformedEntries(t *testing.T) {
	fsys := fstest.MapFS{
		VenuesFile: {Data: []byte(`
- id: 1
  name: Good
  intensity: hot
  position: {top: 10, left: 20}
- id: 2
  name: No Position
  intensity: warm
- id: 3
  name: Off Map
  intensity: cool
  position: {top: 140, left: 20}
- id: 4
  name: Lukewarm
  intensity: tepid
  position: {top: 10, left: 20}
`)},
		HeatSpotsFile: {Data: []byte(`
- size: 100
  intensity: hot
  position: {top: 1, left: 1}
- size: 0
  intensity: hot
  position: {top: 1, left: 1}
`)},
		UsersFile:    {Data: []byte("- name: Ada\n- name: \"\"\n")},
		SparksFile:   {Data: []byte("[]\n")},
		SettingsFile: {Data: []byte("[]\n")},
	}

	ds, err := NewLoader(fsys, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(ds.Venues); got != 1 || ds.Venues[0].Name != "Good" {
		t.Fatalf("venues = %+v, want only Good", ds.Venues)
	}
	if got := len(ds.HeatSpots); got != 1 {
		t.Fatalf("heat spots = %d, want 1", got)
	}
	if got := len(ds.Users); got != 1 {
		t.Fatalf("users = %d, want 1", got)
	}
}

func TestLoadSkipsVenuesWithoutUniqueID(t *testing.T) {
	fsys := fstest.MapFS{
		VenuesFile: {Data: []byte(`
- name: No ID
  intensity: hot
  position: {top: 10, left: 20}
- id: 7
  name: First
  intensity: warm
  position: {top: 30, left: 40}
- id: 7
  name: Repeat
  intensity: cool
  position: {top: 50, left: 60}
- id: 8
  name: Second
  intensity: cool
  position: {top: 70, left: 80}
`)},
		HeatSpotsFile: {Data: []byte("[]\n")},
		UsersFile:     {Data: []byte("[]\n")},
		SparksFile:    {Data: []byte("[]\n")},
		SettingsFile:  {Data: []byte("[]\n")},
	}

	ds, err := NewLoader(fsys, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var names []string
	for _, v := range ds.Venues {
		names = append(names, v.Name)
	}
	if got := strings.Join(names, ","); got != "First,Second" {
		t.Fatalf("venues = %s, want First,Second", got)
	}
}

func TestLoadFailsOnBrokenYAML(t *testing.T) {
	fsys := fstest.MapFS{
		VenuesFile:    {Data: []byte("- id: [unterminated\n")},
		HeatSpotsFile: {Data: []byte("[]\n")},
		UsersFile:     {Data: []byte("[]\n")},
		SparksFile:    {Data: []byte("[]\n")},
		SettingsFile:  {Data: []byte("[]\n")},
	}
	if _, err := NewLoader(fsys, nil).Load(context.Background()); err == nil {
		t.Fatal("Load succeeded on broken yaml")
	}
}

func TestDirFallsBackToEmbedded(t *testing.T) {
	dir := t.TempDir()
	custom := "- name: Solo\n  avatar: x\n"
	if err := os.WriteFile(filepath.Join(dir, UsersFile), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := NewLoader(Dir(dir), nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(ds.Users); got != 1 {
		t.Fatalf("users = %d, want 1 from override dir", got)
	}
	if got := len(ds.Venues); got != 19 {
		t.Fatalf("venues = %d, want embedded 19", got)
	}
}

func TestValidateVenue(t *testing.T) {
	t.Parallel()

	v := model.Venue{ID: 9, Name: "X", Intensity: model.IntensityHot}
	if err := ValidateVenue(v); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("missing position err = %v, want ErrInvalidEntry", err)
	}
	v.Position = &model.Position{Top: 50, Left: 50}
	if err := ValidateVenue(v); err != nil {
		t.Fatalf("valid venue err = %v", err)
	}
	v.ID = 0
	if err := ValidateVenue(v); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("zero id err = %v, want ErrInvalidEntry", err)
	}
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader(Default(), nil).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
