package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tinytelemetry/spark/internal/swipe"
)

// rect is a cell-space rectangle on the page.
type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// PointerScale converts terminal cells to the pixel space the swipe
// thresholds are expressed in.
type PointerScale struct {
	PxPerColumn float64
	PxPerRow    float64
}

func (s PointerScale) point(x, y int) swipe.Point {
	return swipe.Point{X: float64(x) * s.PxPerColumn, Y: float64(y) * s.PxPerRow}
}

// columns converts a horizontal pixel offset back to cells.
func (s PointerScale) columns(px float64) int {
	if s.PxPerColumn <= 0 {
		return 0
	}
	return int(px / s.PxPerColumn)
}

// rows converts a vertical pixel offset back to cells.
func (s PointerScale) rows(px float64) int {
	if s.PxPerRow <= 0 {
		return 0
	}
	return int(px / s.PxPerRow)
}

// pointerEvent maps a terminal mouse event onto the unified pointer stream.
// Only the left button drives gestures; a press counts only inside target,
// while moves and releases are accepted anywhere.
func (s PointerScale) pointerEvent(msg tea.MouseMsg, target rect) (swipe.PointerEvent, bool) {
	p := s.point(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !target.contains(msg.X, msg.Y) {
			return swipe.PointerEvent{}, false
		}
		return swipe.PointerEvent{Kind: swipe.PointerDown, Point: p}, true
	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonNone {
			return swipe.PointerEvent{}, false
		}
		return swipe.PointerEvent{Kind: swipe.PointerMove, Point: p}, true
	case tea.MouseActionRelease:
		return swipe.PointerEvent{Kind: swipe.PointerUp, Point: p}, true
	}
	return swipe.PointerEvent{}, false
}

// isClick reports a left press, the only mouse event pages treat as a tap.
func isClick(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}
