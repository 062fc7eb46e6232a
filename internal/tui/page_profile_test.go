package tui

import (
	"strings"
	"testing"

	"github.com/tinytelemetry/spark/internal/model"
)

func TestProfileToggle(t *testing.T) {
	t.Parallel()

	data := testDataset()
	p := NewProfilePage(data.Settings, nil, newTestIsland(), nil)

	p.Update(keyPress("enter"))
	if p.Settings()[0].Enabled {
		t.Fatal("first setting still enabled")
	}
	if got, want := p.island.Message(), "Show me on the map: Disabled"; got != want {
		t.Fatalf("island message = %q, want %q", got, want)
	}
	if !data.Settings[0].Enabled {
		t.Fatal("toggle leaked into the dataset")
	}

	p.Update(keyPress("down"))
	p.Update(keyPress(" "))
	p.Update(keyPress(" "))
	if got, want := p.island.Message(), "Spark notifications: Enabled"; got != want {
		t.Fatalf("island message = %q, want %q", got, want)
	}
}

func TestProfileToggleByClick(t *testing.T) {
	t.Parallel()

	p := NewProfilePage(testDataset().Settings, nil, newTestIsland(), nil)
	p.View(80, 24)
	p.Update(click(2, p.rowsY+1))
	if p.Settings()[1].Enabled {
		t.Fatal("clicked setting still enabled")
	}
	if p.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", p.cursor)
	}
}

func TestProfileTally(t *testing.T) {
	t.Parallel()

	store := &fakeStore{verdicts: []model.VerdictRecord{
		{CardID: "u-a", Verdict: "right"},
		{CardID: "u-b", Verdict: "right"},
		{CardID: "u-c", Verdict: "up"},
	}}
	p := NewProfilePage(nil, store, newTestIsland(), nil)

	var msgs []tallyMsg
	for _, msg := range collect(p.Init()) {
		if tm, ok := msg.(tallyMsg); ok {
			msgs = append(msgs, tm)
		}
	}
	if len(msgs) != 1 {
		t.Fatalf("init produced %d tallies, want 1", len(msgs))
	}
	if !p.loading {
		t.Fatal("not loading before the tally arrives")
	}
	p.Update(msgs[0])
	if p.loading {
		t.Fatal("still loading after the tally arrived")
	}
	if p.tally["right"] != 2 || p.tally["up"] != 1 {
		t.Fatalf("tally = %v", p.tally)
	}
	view := p.View(80, 24)
	for _, want := range []string{"liked", "super sparks"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
