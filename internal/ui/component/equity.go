package component

import (
	"github.com/rovshanmuradov/botpanel/internal/api"
)

// LabelLayout is how equity timestamps are shown on the chart axis.
const LabelLayout = "2006-01-02 15:04:05"

// ChartFactory builds a chart from its first series.
type ChartFactory func(labels []string, values []float64) Chart

// Sizer is implemented by charts that follow the terminal size.
type Sizer interface {
	SetSize(width, height int)
}

// EquityChart renders the equity curve. The chart is constructed on the
// first render and updated in place afterwards.
type EquityChart struct {
	factory ChartFactory
	chart   Chart
	width   int
	height  int
}

// NewEquityChart creates an equity renderer. A nil factory uses LineChart.
func NewEquityChart(factory ChartFactory) *EquityChart {
	if factory == nil {
		factory = func(labels []string, values []float64) Chart {
			return NewLineChart(labels, values)
		}
	}
	return &EquityChart{factory: factory}
}

// Render implements poller.EquityChartView.
func (e *EquityChart) Render(points []api.EquityPoint) {
	labels := make([]string, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.TS.Local().Format(LabelLayout)
		values[i] = p.Equity.InexactFloat64()
	}

	if e.chart == nil {
		e.chart = e.factory(labels, values)
		e.resize()
		return
	}

	data := e.chart.Data()
	data.Labels = labels
	data.Values = values
	e.chart.Update()
}

// SetSize sets the plot area. A chart created later starts at this size.
func (e *EquityChart) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.resize()
}

func (e *EquityChart) resize() {
	if s, ok := e.chart.(Sizer); ok && (e.width > 0 || e.height > 0) {
		s.SetSize(e.width, e.height)
	}
}

// View renders the chart or a placeholder.
func (e *EquityChart) View() string {
	if e.chart == nil {
		return "waiting for equity data"
	}
	return e.chart.View()
}
