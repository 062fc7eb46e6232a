package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tinytelemetry/spark/internal/inbox"
	"github.com/tinytelemetry/spark/internal/model"
	"github.com/tinytelemetry/spark/internal/swipe"
)

func newTestApp(t *testing.T, start string) *App {
	t.Helper()
	data := testDataset()
	isl := newTestIsland()
	store := &fakeStore{}
	app := NewApp(isl, nil, start,
		NewMapPage(data, nil, isl, testScale, nil),
		NewDiscoverPage(data, isl, store, DiscoverConfig{Tracker: swipe.DefaultTrackerConfig(), Scale: testScale}, nil),
		NewSparksPage(inbox.New(data.Sparks, 0, isl, nil), testScale, nil),
		NewProfilePage(data.Settings, nil, isl, nil),
	)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return app
}

// deliver runs cmd and feeds every message it yields back into the app,
// one round only.
func deliver(app *App, cmd tea.Cmd) tea.Cmd {
	var next []tea.Cmd
	for _, msg := range collect(cmd) {
		if _, ok := msg.(clockMsg); ok {
			continue
		}
		_, c := app.Update(msg)
		next = append(next, c)
	}
	return tea.Batch(next...)
}

func TestAppStartScreen(t *testing.T) {
	t.Parallel()

	if got := newTestApp(t, "").ActivePage(); got != pageMap {
		t.Fatalf("active = %q, want %q", got, pageMap)
	}
	if got := newTestApp(t, pageSparks).ActivePage(); got != pageSparks {
		t.Fatalf("active = %q, want %q", got, pageSparks)
	}
	if got := newTestApp(t, "nowhere").ActivePage(); got != pageMap {
		t.Fatalf("active = %q, want %q for an unknown start", got, pageMap)
	}
}

func TestAppTabNavigation(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, pageDiscover)
	app.Update(keyPress("1"))
	if app.ActivePage() != pageMap {
		t.Fatalf("active = %q after 1", app.ActivePage())
	}
	app.Update(keyPress("tab"))
	if app.ActivePage() != pageDiscover {
		t.Fatalf("active = %q after tab", app.ActivePage())
	}
	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if app.ActivePage() != pageProfile {
		t.Fatalf("active = %q after two shift+tabs, want wrap to %q", app.ActivePage(), pageProfile)
	}

	// Clicking the third quarter of the tab bar opens sparks.
	app.Update(click(45, 23))
	if app.ActivePage() != pageSparks {
		t.Fatalf("active = %q after tab bar click", app.ActivePage())
	}
}

func TestAppIslandToggle(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, pageDiscover)
	_, cmd := app.Update(keyPress("i"))
	if !app.island.Expanded() {
		t.Fatal("island closed after i")
	}
	deliver(app, cmd)
	if app.island.Expanded() {
		t.Fatal("island still open after its dwell")
	}

	app.Update(click(40, islandRow))
	if !app.island.Expanded() {
		t.Fatal("island closed after a click on its row")
	}
	app.Update(click(40, islandRow))
	if app.island.Expanded() {
		t.Fatal("island open after a second click")
	}
}

func TestAppIntro(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, pageDiscover)
	cmd := deliver(app, app.Init())
	if !app.island.Expanded() {
		t.Fatal("island not opened by the intro")
	}
	deliver(app, cmd)
	if app.island.Expanded() {
		t.Fatal("island not collapsed after the intro")
	}
}

func TestAppHelpModal(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, pageDiscover)
	_, cmd := app.Update(keyPress("?"))
	deliver(app, cmd)
	if len(app.modals) != 1 || app.modals[0].ID() != "help" {
		t.Fatalf("modals = %v, want help", app.modals)
	}
	if !strings.Contains(app.View(), "SCREENS") {
		t.Fatal("help not rendered")
	}

	// Keys go to the modal, not the page.
	app.Update(keyPress("2"))
	if app.ActivePage() != pageDiscover || len(app.modals) != 1 {
		t.Fatal("key leaked past the modal")
	}

	app.Update(keyPress("esc"))
	if len(app.modals) != 0 {
		t.Fatal("esc did not close help")
	}
}

func TestAppMatchOverlayFlow(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, pageDiscover)
	page := app.pages[pageDiscover].(*DiscoverPage)

	_, cmd := app.Update(keyPress("s"))
	for i := 0; cmd != nil && i < 8; i++ {
		cmd = deliver(app, cmd)
	}
	if len(app.modals) != 1 || app.modals[0].ID() != "match" {
		t.Fatalf("modals = %v, want match", app.modals)
	}
	if !strings.Contains(app.View(), "It's a Spark!") {
		t.Fatal("match overlay not rendered")
	}

	app.Update(click(10, 10))
	if len(app.modals) != 0 || page.OverlayOpen() {
		t.Fatal("click did not dismiss the overlay")
	}
	if app.island.Expanded() {
		t.Fatal("island still open after the overlay closed")
	}
}

func TestAppRoutesStepsToHiddenPages(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, pageSparks)
	_, cmd := app.Update(keyPress("enter"))
	sparks := app.pages[pageSparks].(*SparksPage)

	app.Update(keyPress("1"))
	deliver(app, cmd)
	if got := sparks.Badge(); got != 1 {
		t.Fatalf("badge = %d, want 1 after the exit settled off screen", got)
	}
}

func TestAppView(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, pageDiscover)
	view := app.View()
	if got := strings.Count(view, "\n") + 1; got != 24 {
		t.Fatalf("view has %d rows, want 24", got)
	}
	for _, want := range []string{"Sarah Chen", "2 Discover", "3 Sparks"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestAppQuit(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, pageDiscover)
	_, cmd := app.Update(keyPress("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
}

func TestAppQueryResultsReachHiddenPages(t *testing.T) {
	t.Parallel()

	data := testDataset()
	isl := newTestIsland()
	store := &fakeStore{hottest: []model.VenueHeat{{Name: "Times Square", People: 567, Intensity: model.IntensityHot}}}
	mapPage := NewMapPage(data, store, isl, testScale, nil)
	profile := NewProfilePage(data.Settings, store, isl, nil)
	app := NewApp(isl, nil, pageDiscover,
		mapPage,
		NewDiscoverPage(data, isl, store, DiscoverConfig{Tracker: swipe.DefaultTrackerConfig(), Scale: testScale}, nil),
		NewSparksPage(inbox.New(data.Sparks, 0, isl, nil), testScale, nil),
		profile,
	)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	// Leave each page before its query returns.
	_, tally := app.Update(keyPress("4"))
	_, hottest := app.Update(keyPress("1"))
	app.Update(keyPress("2"))
	deliver(app, tally)
	deliver(app, hottest)

	if profile.loading {
		t.Fatal("profile still loading after its tally arrived off screen")
	}
	if mapPage.loading || !mapPage.loaded {
		t.Fatalf("map loading=%v loaded=%v after its query returned off screen", mapPage.loading, mapPage.loaded)
	}

	// The next visit queries again and sees the new verdict.
	store.verdicts = append(store.verdicts, model.VerdictRecord{CardID: "u-a", Verdict: "right"})
	_, cmd := app.Update(keyPress("4"))
	deliver(app, cmd)
	if got := profile.tally["right"]; got != 1 {
		t.Fatalf("tally[right] = %d, want 1", got)
	}
}
