// Package swipe implements the card deck of the discovery screen: a gesture
// tracker that turns a pointer drag into a verdict, and a deck controller that
// plays the exit, removes the card and re-arms the tracker on the next one.
package swipe

// Point is a pointer position in pixels.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// PointerKind is the phase of a unified pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// PointerEvent is a device-independent press/move/release sample.
// Mouse and touch sources both reduce to this shape.
type PointerEvent struct {
	Kind  PointerKind
	Point Point
}
