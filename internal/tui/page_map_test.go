package tui

import (
	"strings"
	"testing"

	"github.com/tinytelemetry/spark/internal/model"
)

func newTestMap(store model.VenueQuerier) *MapPage {
	return NewMapPage(testDataset(), store, newTestIsland(), testScale, nil)
}

func TestMapPromptsForLocationOnVisit(t *testing.T) {
	t.Parallel()

	p := newTestMap(nil)
	steps := stepsOf(p.Init())
	if len(steps) != 1 {
		t.Fatalf("init scheduled %d steps, want 1", len(steps))
	}
	cmd, _ := p.Update(steps[0])
	modals := modalsOf(cmd)
	if len(modals) != 1 || modals[0].ID() != "location" {
		t.Fatalf("modals = %v, want the location prompt", modals)
	}

	pop, cmd := modals[0].Update(keyPress("y"))
	if !pop {
		t.Fatal("y did not close the prompt")
	}
	if !p.LocationEnabled() {
		t.Fatal("location still disabled")
	}
	if p.island.Message() != locationMessage {
		t.Fatalf("island message = %q", p.island.Message())
	}
	if got := len(stepsOf(cmd)); got != len(p.data.HeatSpots) {
		t.Fatalf("scheduled %d pulses, want %d", got, len(p.data.HeatSpots))
	}

	if cmd := p.Init(); len(stepsOf(cmd)) != 0 {
		t.Fatal("prompt scheduled again after location was enabled")
	}
}

func TestMapLeaveCancelsPrompt(t *testing.T) {
	t.Parallel()

	p := newTestMap(nil)
	steps := stepsOf(p.Init())
	p.Leave()
	if cmd, _ := p.Update(steps[0]); len(modalsOf(cmd)) != 0 {
		t.Fatal("prompt shown after leaving the map")
	}

	// Coming back asks again.
	steps = stepsOf(p.Init())
	if cmd, _ := p.Update(steps[0]); len(modalsOf(cmd)) != 1 {
		t.Fatal("prompt not shown on the next visit")
	}
}

func TestMapDismissPromptKeepsLocationOff(t *testing.T) {
	t.Parallel()

	p := newTestMap(nil)
	m := &locationModal{page: p}
	if pop, cmd := m.Update(keyPress("n")); !pop || cmd != nil {
		t.Fatalf("n = (%v, %v), want (true, nil)", pop, cmd != nil)
	}
	if p.LocationEnabled() {
		t.Fatal("dismissing enabled location")
	}
}

func TestMapPulsesRunInOrder(t *testing.T) {
	t.Parallel()

	p := newTestMap(nil)
	cmd, _ := p.Update(keyPress("L"))
	starts := stepsOf(cmd)
	if len(starts) != 2 {
		t.Fatalf("scheduled %d pulses, want 2", len(starts))
	}

	for i, s := range starts {
		end, _ := p.Update(s)
		if !p.Pulsing(i) {
			t.Fatalf("spot %d not pulsing after its start step", i)
		}
		ends := stepsOf(end)
		if len(ends) != 1 {
			t.Fatalf("spot %d scheduled %d end steps, want 1", i, len(ends))
		}
		p.Update(ends[0])
		if p.Pulsing(i) {
			t.Fatalf("spot %d still pulsing after its end step", i)
		}
	}
}

func TestMapCheckIn(t *testing.T) {
	t.Parallel()

	p := newTestMap(nil)
	cmd, _ := p.Update(keyPress("c"))
	if !p.fabPressed {
		t.Fatal("check-in button not pressed")
	}
	if p.island.Message() != checkInMessage || !p.island.Expanded() {
		t.Fatalf("island = %v %q", p.island.Expanded(), p.island.Message())
	}
	for _, s := range stepsOf(cmd) {
		p.Update(s)
	}
	if p.fabPressed {
		t.Fatal("check-in button still pressed")
	}
}

func TestMapCheckInByClick(t *testing.T) {
	t.Parallel()

	p := newTestMap(nil)
	p.View(60, 20)
	p.Update(click(p.fabRect.X+1, p.fabRect.Y))
	if p.island.Message() != checkInMessage {
		t.Fatalf("island message = %q", p.island.Message())
	}
}

func TestMapOpenSelected(t *testing.T) {
	t.Parallel()

	p := newTestMap(nil)
	p.Update(keyPress("enter"))
	if got, want := p.island.Message(), "Opening Pier 17 details..."; got != want {
		t.Fatalf("island message = %q, want %q", got, want)
	}
}

func TestMapClickPinOpensVenue(t *testing.T) {
	t.Parallel()

	p := newTestMap(nil)
	p.View(60, 20)
	v := p.data.Venues[2]
	x, y := pinCell(*v.Position, p.mapRect.W, p.mapRect.H)
	p.Update(click(p.mapRect.X+x, p.mapRect.Y+y))
	if p.Selected() != 2 {
		t.Fatalf("selected = %d, want 2", p.Selected())
	}
	if got, want := p.island.Message(), "Opening Chelsea Market details..."; got != want {
		t.Fatalf("island message = %q, want %q", got, want)
	}
}

func TestMapMoveSelection(t *testing.T) {
	t.Parallel()

	p := newTestMap(nil)
	// Pier 17 sits at the bottom; Times Square is straight up from it.
	p.Update(keyPress("up"))
	if p.Selected() != 1 {
		t.Fatalf("selected = %d, want 1", p.Selected())
	}
	p.Update(keyPress("left"))
	if p.Selected() != 2 {
		t.Fatalf("selected = %d, want 2", p.Selected())
	}
	// Nothing further left.
	p.Update(keyPress("left"))
	if p.Selected() != 2 {
		t.Fatalf("selected = %d, want 2", p.Selected())
	}
}

func TestMapSearchSelectsBestMatch(t *testing.T) {
	t.Parallel()

	p := newTestMap(nil)
	p.Update(keyPress("/"))
	if !p.CapturingInput() {
		t.Fatal("search did not capture input")
	}
	for _, r := range "time" {
		p.Update(keyPress(string(r)))
	}
	if len(p.matches) == 0 || p.matches[0].Index != 1 {
		t.Fatalf("matches = %+v, want Times Square first", p.matches)
	}
	p.Update(keyPress("enter"))
	if p.CapturingInput() {
		t.Fatal("search still open")
	}
	if p.Selected() != 1 {
		t.Fatalf("selected = %d, want 1", p.Selected())
	}
}

func TestMapHottestChart(t *testing.T) {
	t.Parallel()

	store := &fakeStore{hottest: []model.VenueHeat{
		{Name: "Times Square", Emoji: "🌆", People: 567, Intensity: model.IntensityHot},
	}}
	p := newTestMap(store)
	var got bool
	for _, msg := range collect(p.Init()) {
		if hm, ok := msg.(hottestMsg); ok {
			p.Update(hm)
			got = true
		}
	}
	if !got {
		t.Fatal("init did not query the hottest venues")
	}
	if p.loading || !p.loaded {
		t.Fatalf("loading=%v loaded=%v after the result arrived", p.loading, p.loaded)
	}
	if view := p.View(120, 30); !strings.Contains(view, "Times Square") {
		t.Fatalf("side panel missing the venue:\n%s", view)
	}
}

func TestRankVenues(t *testing.T) {
	t.Parallel()

	venues := testDataset().Venues
	tests := []struct {
		query string
		first int
	}{
		{"pier", 0},
		{"TIMES", 1},
		{"chelsae", 2},
		{"market", 2},
	}
	for _, tt := range tests {
		got := rankVenues(venues, tt.query, 3)
		if len(got) == 0 || got[0].Index != tt.first {
			t.Fatalf("rankVenues(%q) = %+v, want index %d first", tt.query, got, tt.first)
		}
	}
	if got := rankVenues(venues, "  ", 3); got != nil {
		t.Fatalf("blank query = %+v, want nil", got)
	}
	if got := rankVenues(venues, "a", 2); len(got) != 2 {
		t.Fatalf("limit ignored: %d results", len(got))
	}
}
