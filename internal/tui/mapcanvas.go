package tui

import (
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/spark/internal/model"
)

// mapReferenceWidth is the map width in px that heat spot sizes refer to.
const mapReferenceWidth = 390.0

// pulseScale is how much a pulsing heat spot grows.
const pulseScale = 1.1

// mapScene is everything drawn on the map canvas.
type mapScene struct {
	Venues   []model.Venue
	Heat     []model.HeatSpot
	Pulsing  []bool
	Selected int
	You      bool // draw the "you are here" marker
	Scale    PointerScale
}

// pinCell places a relative position on a w×h grid.
func pinCell(pos model.Position, w, h int) (int, int) {
	x := int(math.Round(pos.Left / 100 * float64(max(w-1, 0))))
	y := int(math.Round(pos.Top / 100 * float64(max(h-1, 0))))
	return x, y
}

// pinAt returns the venue whose pin is at or next to (x, y), or -1.
func (s mapScene) pinAt(x, y, w, h int) int {
	best, bestDist := -1, math.MaxInt
	for i, v := range s.Venues {
		if v.Position == nil {
			continue
		}
		px, py := pinCell(*v.Position, w, h)
		if py != y {
			continue
		}
		if d := abs(px - x); d <= 1 && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (s mapScene) render(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	c := canvas.New(w, h)

	rowRatio := 1.0
	if s.Scale.PxPerRow > 0 {
		rowRatio = s.Scale.PxPerColumn / s.Scale.PxPerRow
	}
	for i, spot := range s.Heat {
		if spot.Position == nil {
			continue
		}
		radius := float64(spot.Size) / 2 / mapReferenceWidth * float64(w)
		shade := '░'
		if i < len(s.Pulsing) && s.Pulsing[i] {
			radius *= pulseScale
			shade = '▒'
		}
		style := lipgloss.NewStyle().Foreground(intensityColor(spot.Intensity))
		cx, cy := pinCell(*spot.Position, w, h)
		drawDisc(&c, cx, cy, radius, radius*rowRatio, canvas.NewCellWithStyle(shade, style))
	}

	for i, v := range s.Venues {
		if v.Position == nil {
			continue
		}
		x, y := pinCell(*v.Position, w, h)
		style := lipgloss.NewStyle().Foreground(intensityColor(v.Intensity)).Bold(true)
		r := '●'
		if i == s.Selected {
			r = '◉'
			style = style.Foreground(ColorPink)
		}
		c.SetCell(canvas.Point{X: x, Y: y}, canvas.NewCellWithStyle(r, style))
	}

	if s.Selected >= 0 && s.Selected < len(s.Venues) && s.Venues[s.Selected].Position != nil {
		v := s.Venues[s.Selected]
		x, y := pinCell(*v.Position, w, h)
		drawLabel(&c, x+2, y, v.Name, w, selectedStyle)
	}

	if s.You {
		x, y := pinCell(model.Position{Top: 50, Left: 50}, w, h)
		c.SetCell(canvas.Point{X: x, Y: y}, canvas.NewCellWithStyle('✦', lipgloss.NewStyle().Foreground(ColorPurple).Bold(true)))
	}
	return c.View()
}

func drawDisc(c *canvas.Model, cx, cy int, rx, ry float64, cell canvas.Cell) {
	if rx <= 0 || ry <= 0 {
		return
	}
	for dy := -int(ry); dy <= int(ry); dy++ {
		for dx := -int(rx); dx <= int(rx); dx++ {
			nx, ny := float64(dx)/rx, float64(dy)/ry
			if nx*nx+ny*ny > 1 {
				continue
			}
			c.SetCell(canvas.Point{X: cx + dx, Y: cy + dy}, cell)
		}
	}
}

func drawLabel(c *canvas.Model, x, y int, text string, w int, style lipgloss.Style) {
	runes := []rune(" " + text + " ")
	if x+len(runes) > w {
		x = max(w-len(runes), 0)
	}
	for i, r := range runes {
		c.SetCell(canvas.Point{X: x + i, Y: y}, canvas.NewCellWithStyle(r, style))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
