package component

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/botpanel/internal/ui/style"
)

// ChartData is the mutable series behind a chart. Renderers replace
// Labels and Values in place and then call Update.
type ChartData struct {
	Labels []string
	Values []float64
}

// Chart is the update contract the equity renderer relies on.
type Chart interface {
	Data() *ChartData
	Update()
	View() string
}

// LineChart draws a series as columns of block characters.
type LineChart struct {
	data    ChartData
	width   int
	height  int
	color   lipgloss.Color
	updates int

	// cached rows, rebuilt by Update
	rows []string
}

var blockChars = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// NewLineChart creates a chart over the given series.
func NewLineChart(labels []string, values []float64) *LineChart {
	c := &LineChart{
		data:   ChartData{Labels: labels, Values: values},
		width:  60,
		height: 6,
		color:  style.DefaultPalette().Primary,
	}
	c.rebuild()
	return c
}

// Data exposes the series for in-place replacement.
func (c *LineChart) Data() *ChartData {
	return &c.data
}

// Update redraws the chart from its current data.
func (c *LineChart) Update() {
	c.updates++
	c.rebuild()
}

// SetSize sets the plot area in cells. Non-positive values keep the
// current size.
func (c *LineChart) SetSize(width, height int) {
	if width > 0 {
		c.width = width
	}
	if height > 0 {
		c.height = height
	}
	c.rebuild()
}

// visible returns the tail of the series that fits the width.
func (c *LineChart) visible() []float64 {
	values := c.data.Values
	if len(values) > c.width {
		values = values[len(values)-c.width:]
	}
	return values
}

func (c *LineChart) rebuild() {
	values := c.visible()
	c.rows = c.rows[:0]
	if len(values) == 0 {
		return
	}

	lo, hi := minMax(values)
	levels := c.height * (len(blockChars) - 1)

	heights := make([]int, len(values))
	for i, v := range values {
		if hi == lo {
			heights[i] = levels / 2
			continue
		}
		h := int((v - lo) / (hi - lo) * float64(levels))
		if h < 1 {
			h = 1
		}
		heights[i] = h
	}

	for row := c.height - 1; row >= 0; row-- {
		var b strings.Builder
		base := row * (len(blockChars) - 1)
		for _, h := range heights {
			fill := h - base
			switch {
			case fill <= 0:
				b.WriteRune(blockChars[0])
			case fill >= len(blockChars)-1:
				b.WriteRune(blockChars[len(blockChars)-1])
			default:
				b.WriteRune(blockChars[fill])
			}
		}
		c.rows = append(c.rows, b.String())
	}
}

// View renders the chart with its value range and first/last labels.
func (c *LineChart) View() string {
	if len(c.rows) == 0 {
		return lipgloss.NewStyle().Foreground(style.DefaultPalette().TextMuted).Render("no data")
	}

	palette := style.DefaultPalette()
	values := c.visible()
	lo, hi := minMax(values)
	axis := lipgloss.NewStyle().Foreground(palette.TextMuted)
	plot := lipgloss.NewStyle().Foreground(c.color)

	var b strings.Builder
	b.WriteString(axis.Render(fmt.Sprintf("max %.2f", hi)))
	b.WriteByte('\n')
	b.WriteString(plot.Render(strings.Join(c.rows, "\n")))
	b.WriteByte('\n')
	b.WriteString(axis.Render(fmt.Sprintf("min %.2f", lo)))

	labels := c.data.Labels
	if len(labels) > 0 {
		first := len(labels) - len(values)
		if first < 0 {
			first = 0
		}
		b.WriteByte('\n')
		b.WriteString(axis.Render(labels[first] + " .. " + labels[len(labels)-1]))
	}
	return b.String()
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
