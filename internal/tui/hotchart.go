package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/tinytelemetry/spark/internal/model"
)

// HotChartPanel displays the busiest venues as a bar chart with a legend.
type HotChartPanel struct {
	data []model.VenueHeat
}

// NewHotChartPanel creates an empty panel.
func NewHotChartPanel() *HotChartPanel {
	return &HotChartPanel{}
}

func (p *HotChartPanel) SetData(venues []model.VenueHeat) {
	p.data = append([]model.VenueHeat(nil), venues...)
}

func (p *HotChartPanel) Render(width, height int, active bool) string {
	style := sectionStyle.Width(max(width-2, 1)).Height(max(height-2, 1))
	if active {
		style = activeSectionStyle.Width(max(width-2, 1)).Height(max(height-2, 1))
	}

	headerText := "Hottest right now"
	if len(p.data) > 0 {
		var total int64
		for _, v := range p.data {
			total += v.People
		}
		rightStats := fmt.Sprintf("%d people", total)
		spacerWidth := width - 6 - len(headerText) - len(rightStats)
		if spacerWidth > 0 {
			headerText += strings.Repeat(" ", spacerWidth) + rightStats
		}
	}
	title := chartTitleStyle.Render(headerText)

	var content string
	if len(p.data) > 0 {
		content = p.renderContent(width-4, max(height-3, 3))
	} else {
		content = helpStyle.Render("No data available")
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (p *HotChartPanel) renderContent(chartWidth, chartHeight int) string {
	legendWidth := 22
	actualChartWidth := chartWidth - legendWidth - 2
	if actualChartWidth < 8 {
		actualChartWidth = 8
	}
	maxBars := actualChartWidth / 2
	bars := p.data
	if len(bars) > maxBars {
		bars = bars[:maxBars]
	}

	bc := barchart.New(actualChartWidth, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(1),
		barchart.WithNoAxis(),
	)
	for _, v := range bars {
		c := intensityColor(v.Intensity)
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: v.Name, Value: float64(v.People), Style: lipgloss.NewStyle().Foreground(c).Background(c)},
			},
		})
	}
	bc.Draw()
	chartLines := strings.Split(bc.View(), "\n")

	legendLines := make([]string, 0, len(bars))
	for i, v := range bars {
		name := ansi.Truncate(v.Name, legendWidth-8, "…")
		if w := ansi.StringWidth(name); w < legendWidth-8 {
			name += strings.Repeat(" ", legendWidth-8-w)
		}
		line := fmt.Sprintf("%d %s%5d", i+1, name, v.People)
		legendLines = append(legendLines, lipgloss.NewStyle().Foreground(intensityColor(v.Intensity)).Render(line))
	}

	separator := strings.Repeat(" ", 2)
	combined := make([]string, 0, chartHeight)
	for i := 0; i < chartHeight; i++ {
		chartLine, legendLine := "", ""
		if i < len(chartLines) {
			chartLine = chartLines[i]
		}
		if i < len(legendLines) {
			legendLine = legendLines[i]
		}
		if w := lipgloss.Width(chartLine); w < actualChartWidth {
			chartLine += strings.Repeat(" ", actualChartWidth-w)
		}
		combined = append(combined, chartLine+separator+legendLine)
	}
	return strings.Join(combined, "\n")
}
