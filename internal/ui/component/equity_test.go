package component

import (
	"testing"
	"time"

	"github.com/rovshanmuradov/botpanel/internal/api"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChart struct {
	data    ChartData
	updates int
}

func (c *fakeChart) Data() *ChartData { return &c.data }
func (c *fakeChart) Update()          { c.updates++ }
func (c *fakeChart) View() string     { return "fake" }

func equityPoints(values ...string) []api.EquityPoint {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	out := make([]api.EquityPoint, len(values))
	for i, v := range values {
		out[i] = api.EquityPoint{
			TS:     api.Timestamp{Time: base.Add(time.Duration(i) * time.Minute)},
			Equity: decimal.RequireFromString(v),
		}
	}
	return out
}

func TestEquityChartConstructsOnce(t *testing.T) {
	var built []*fakeChart
	chart := NewEquityChart(func(labels []string, values []float64) Chart {
		c := &fakeChart{data: ChartData{Labels: labels, Values: values}}
		built = append(built, c)
		return c
	})

	chart.Render(equityPoints("1000", "1010.5"))
	chart.Render(equityPoints("1000", "1010.5", "990.25"))

	require.Len(t, built, 1)
	c := built[0]
	assert.Equal(t, 1, c.updates)
	assert.Equal(t, []float64{1000, 1010.5, 990.25}, c.data.Values)
	assert.Len(t, c.data.Labels, 3)
	assert.Same(t, c, chart.chart)
}

func TestEquityChartLabels(t *testing.T) {
	var got *fakeChart
	chart := NewEquityChart(func(labels []string, values []float64) Chart {
		got = &fakeChart{data: ChartData{Labels: labels, Values: values}}
		return got
	})

	points := equityPoints("1")
	chart.Render(points)

	require.NotNil(t, got)
	assert.Equal(t, points[0].TS.Local().Format("2006-01-02 15:04:05"), got.data.Labels[0])
}

func TestEquityChartEmptyThenData(t *testing.T) {
	chart := NewEquityChart(nil)
	assert.Equal(t, "waiting for equity data", chart.View())

	chart.Render(nil)
	require.NotNil(t, chart.chart)

	chart.Render(equityPoints("5", "6"))
	lc, ok := chart.chart.(*LineChart)
	require.True(t, ok)
	assert.Equal(t, 1, lc.updates)
	assert.Equal(t, []float64{5, 6}, lc.Data().Values)
	assert.Contains(t, chart.View(), "max 6.00")
}

func TestLineChartRows(t *testing.T) {
	c := NewLineChart([]string{"a", "b", "c"}, []float64{1, 2, 3})
	c.SetSize(3, 2)
	view := c.View()
	assert.Contains(t, view, "max 3.00")
	assert.Contains(t, view, "min 1.00")
	assert.Contains(t, view, "a .. c")
	assert.Len(t, c.rows, 2)
	// the highest sample fills the top row
	assert.Equal(t, '█', []rune(c.rows[0])[2])

	c.Data().Values = nil
	c.Update()
	assert.Contains(t, c.View(), "no data")
}

func TestLineChartKeepsTail(t *testing.T) {
	c := NewLineChart(nil, []float64{9, 1, 2})
	c.SetSize(2, 1)
	assert.Contains(t, c.View(), "max 2.00")
	assert.Contains(t, c.View(), "min 1.00")
}

func TestEquityChartFollowsSize(t *testing.T) {
	chart := NewEquityChart(nil)
	chart.SetSize(100, 8)

	chart.Render(equityPoints("1", "2"))
	lc, ok := chart.chart.(*LineChart)
	require.True(t, ok)
	assert.Equal(t, 100, lc.width)
	assert.Equal(t, 8, lc.height)

	chart.SetSize(40, 4)
	assert.Equal(t, 40, lc.width)
	assert.Equal(t, 4, lc.height)
	assert.Len(t, lc.rows, 4)
}

func TestEquityChartSizeIgnoredByPlainCharts(t *testing.T) {
	chart := NewEquityChart(func(labels []string, values []float64) Chart {
		return &fakeChart{data: ChartData{Labels: labels, Values: values}}
	})
	chart.SetSize(100, 8)
	chart.Render(equityPoints("1"))
	assert.Equal(t, "fake", chart.View())
}
