package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// layer is a fixed-size canvas of styled lines that later draws cover
// earlier ones, used to stack cards on top of each other.
type layer struct {
	width, height int
	lines         []string
}

func newLayer(width, height int) *layer {
	lines := make([]string, max(height, 0))
	blank := strings.Repeat(" ", max(width, 0))
	for i := range lines {
		lines[i] = blank
	}
	return &layer{width: width, height: height, lines: lines}
}

// draw composites block with its top-left corner at (x, y). Rows and
// columns outside the layer are clipped.
func (l *layer) draw(x, y int, block string) {
	x = max(x, 0)
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= l.height {
			continue
		}
		if x >= l.width {
			continue
		}
		line = ansi.Truncate(line, l.width-x, "")
		target := l.lines[row]

		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		pos := x + ansi.StringWidth(line)
		right := ansi.TruncateLeft(target, pos, "")
		if gap := l.width - pos - ansi.StringWidth(right); gap > 0 {
			right = strings.Repeat(" ", gap) + right
		}
		l.lines[row] = left + line + right
	}
}

func (l *layer) String() string {
	return strings.Join(l.lines, "\n")
}
