package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tinytelemetry/spark/internal/swipe"
)

func newTestDiscover(t *testing.T) (*DiscoverPage, *fakeStore) {
	t.Helper()
	store := &fakeStore{}
	p := NewDiscoverPage(testDataset(), newTestIsland(), store, DiscoverConfig{
		Tracker: swipe.DefaultTrackerConfig(),
		Scale:   testScale,
	}, nil)
	return p, store
}

// runSteps feeds every step cmd produces back into p until none remain and
// returns the modals that were requested along the way.
func runSteps(t *testing.T, p Page, cmd tea.Cmd) []Modal {
	t.Helper()
	var modals []Modal
	for i := 0; cmd != nil; i++ {
		if i > 16 {
			t.Fatal("step chain did not settle")
		}
		var next []tea.Cmd
		for _, msg := range collect(cmd) {
			switch msg := msg.(type) {
			case stepMsg:
				if msg.Owner != p.ID() {
					continue
				}
				c, _ := p.Update(msg)
				next = append(next, c)
			case pushModalMsg:
				modals = append(modals, msg.Modal)
			}
		}
		cmd = tea.Batch(next...)
	}
	return modals
}

func TestDiscoverKeyboardReject(t *testing.T) {
	t.Parallel()

	p, store := newTestDiscover(t)
	cmd, _ := p.Update(keyPress("h"))
	if got := p.Deck().Phase(); got != swipe.PhaseCommitting {
		t.Fatalf("phase = %v, want committing", got)
	}
	if head := p.Deck().Head(); head.Opacity != 0 || head.Transform.TranslateX >= 0 {
		t.Fatalf("head not exiting left: %+v opacity=%g", head.Transform, head.Opacity)
	}

	runSteps(t, p, cmd)

	if got := p.Deck().Len(); got != 2 {
		t.Fatalf("deck len = %d, want 2", got)
	}
	if got := p.Deck().Phase(); got != swipe.PhaseIdle {
		t.Fatalf("phase = %v, want idle", got)
	}
	if head := p.Deck().Head(); head.ID != "u-b" || p.Deck().Tracker().Bound() != head {
		t.Fatalf("tracker not re-armed on u-b")
	}
	if len(store.verdicts) != 1 || store.verdicts[0].CardID != "u-a" || store.verdicts[0].Verdict != "left" {
		t.Fatalf("verdicts = %+v, want one left on u-a", store.verdicts)
	}
}

func TestDiscoverStrongAcceptOpensMatch(t *testing.T) {
	t.Parallel()

	p, _ := newTestDiscover(t)
	cmd, _ := p.Update(keyPress("s"))
	modals := runSteps(t, p, cmd)

	if len(modals) != 1 || modals[0].ID() != "match" {
		t.Fatalf("modals = %v, want one match overlay", modals)
	}
	if !p.OverlayOpen() {
		t.Fatal("overlay closed, want open")
	}
	if !p.island.Expanded() || p.island.Message() != "Event saved! 🔥" {
		t.Fatalf("island = %v %q", p.island.Expanded(), p.island.Message())
	}
	if view := modals[0].View(80, 24); !strings.Contains(view, "Sarah Chen") {
		t.Fatalf("match overlay does not name the user:\n%s", view)
	}

	pop, _ := modals[0].Update(keyPress("esc"))
	if !pop {
		t.Fatal("esc did not close the overlay")
	}
	modals[0].(Closer).OnClose()
	if p.OverlayOpen() || p.island.Expanded() {
		t.Fatal("closing the overlay should hide it and collapse the island")
	}
}

func TestDiscoverDragAccept(t *testing.T) {
	t.Parallel()

	p, store := newTestDiscover(t)
	p.View(60, 20)
	r := p.cardRect
	if r.W == 0 {
		t.Fatal("card rect not set by View")
	}
	x, y := r.X+4, r.Y+4

	p.Update(click(x, y))
	p.Update(drag(x+15, y))
	if got := p.Deck().Phase(); got != swipe.PhaseDragging {
		t.Fatalf("phase = %v, want dragging", got)
	}
	if dx := p.Deck().Head().Transform.TranslateX; dx != 120 {
		t.Fatalf("translateX = %g, want 120", dx)
	}
	if !strings.Contains(p.View(60, 20), "LIKE") {
		t.Fatal("accept stamp missing past the threshold")
	}

	cmd, _ := p.Update(release(x+15, y))
	if got := p.Deck().Phase(); got != swipe.PhaseCommitting {
		t.Fatalf("phase = %v, want committing", got)
	}
	runSteps(t, p, cmd)

	if len(store.verdicts) != 1 || store.verdicts[0].Verdict != "right" {
		t.Fatalf("verdicts = %+v, want one right", store.verdicts)
	}
}

func TestDiscoverShortDragSnapsBack(t *testing.T) {
	t.Parallel()

	p, _ := newTestDiscover(t)
	p.View(60, 20)
	x, y := p.cardRect.X+4, p.cardRect.Y+4

	p.Update(click(x, y))
	p.Update(drag(x+5, y))
	cmd, _ := p.Update(release(x+5, y))
	if cmd != nil && len(stepsOf(cmd)) > 0 {
		t.Fatal("short drag scheduled a removal")
	}
	if !p.Deck().Head().IsNeutral() {
		t.Fatal("head not back at rest")
	}
}

func TestDiscoverLeaveDuringDragSnapsBack(t *testing.T) {
	t.Parallel()

	p, _ := newTestDiscover(t)
	p.View(60, 20)
	x, y := p.cardRect.X+4, p.cardRect.Y+4
	p.Update(click(x, y))
	p.Update(drag(x+20, y))

	p.Leave()
	head := p.Deck().Head()
	if p.Deck().Tracker().Active() || head.Dragging || !head.IsNeutral() {
		t.Fatalf("head still dragged after leaving: dragging=%v %+v", head.Dragging, head.Transform)
	}
	if p.Deck().Tracker().Bound() != head {
		t.Fatal("tracker lost its binding")
	}

	// The next drag starts fresh.
	p.View(60, 20)
	p.Update(click(x, y))
	if !p.Deck().Tracker().Active() {
		t.Fatal("press after leaving did not start a drag")
	}
}

func TestDiscoverPressOutsideCardIgnored(t *testing.T) {
	t.Parallel()

	p, _ := newTestDiscover(t)
	p.View(60, 20)
	p.Update(click(0, 0))
	if p.Deck().Tracker().Active() {
		t.Fatal("press outside the card opened a drag")
	}
}

func TestDiscoverRefill(t *testing.T) {
	t.Parallel()

	p, _ := newTestDiscover(t)
	p.Update(keyPress("r"))
	if p.island.Expanded() {
		t.Fatal("refill of a non-empty deck should do nothing")
	}

	for range 3 {
		cmd, _ := p.Update(keyPress("x"))
		runSteps(t, p, cmd)
	}
	if got := p.Deck().Phase(); got != swipe.PhaseEmpty {
		t.Fatalf("phase = %v, want empty", got)
	}
	if !strings.Contains(p.View(60, 20), "No more people nearby") {
		t.Fatal("empty state not rendered")
	}

	p.Update(keyPress("r"))
	if got := p.Deck().Len(); got != 3 {
		t.Fatalf("deck len = %d, want 3", got)
	}
	if p.island.Message() != "New people nearby! ✨" {
		t.Fatalf("island message = %q", p.island.Message())
	}
}
