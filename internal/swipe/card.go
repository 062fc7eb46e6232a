package swipe

import "math"

// Transform is the visual placement of a card relative to its resting slot.
// Translation is in pixels, rotation in degrees.
type Transform struct {
	TranslateX float64
	TranslateY float64
	Rotate     float64
	Scale      float64
}

// Neutral is the identity transform.
func Neutral() Transform { return Transform{Scale: 1} }

// Card is one entry of a deck. Only the deck and its tracker mutate it.
type Card struct {
	ID        string
	Transform Transform
	Opacity   float64
	Dragging  bool
}

// NewCard creates a card in the ready state.
func NewCard(id string) *Card {
	c := &Card{ID: id}
	c.reset()
	return c
}

// reset puts the card back at rest: neutral transform, full opacity.
func (c *Card) reset() {
	c.Transform = Neutral()
	c.Opacity = 1
}

// IsNeutral reports whether the card is at rest.
func (c *Card) IsNeutral() bool {
	return c.Transform == Neutral() && c.Opacity == 1
}

// Stacked presentation of the card directly behind the head.
var stacked = struct {
	Scale      float64
	TranslateY float64
	Opacity    float64
}{Scale: 0.95, TranslateY: 20, Opacity: 0.9}

func (c *Card) stack() {
	c.Transform = Transform{TranslateY: stacked.TranslateY, Scale: stacked.Scale}
	c.Opacity = stacked.Opacity
}

// IsStacked reports whether the card shows the next-up presentation.
func (c *Card) IsStacked() bool {
	return c.Transform == Transform{TranslateY: stacked.TranslateY, Scale: stacked.Scale} &&
		c.Opacity == stacked.Opacity
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
