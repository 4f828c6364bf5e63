package charts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/smarttask/pkg/charts"
	"github.com/MacroPower/smarttask/pkg/charttest"
)

func newBarChart(t *testing.T, values []float64, labels []string) (*charts.BarChart, *charttest.Recorder) {
	t.Helper()

	rec := charttest.NewRecorder(480, 280)
	c, err := charts.NewBarChart(rec)
	require.NoError(t, err)

	s, err := charts.NewSeries(values, labels)
	require.NoError(t, err)

	c.UpdateData(s, charts.PaletteFor(charts.ThemeLight))

	return c, rec
}

func TestBarGeometry(t *testing.T) {
	t.Parallel()

	c, _ := newBarChart(t, []float64{10, 20, 5}, []string{"Low", "Medium", "High"})

	bars := c.Bars()
	require.Len(t, bars, 3)

	// Plot is 400x200; each slot is 400/3 wide.
	slot := 400.0 / 3
	for i, b := range bars {
		assert.Equal(t, i, b.ColorIndex)
		assert.InDelta(t, 40+float64(i)*slot, b.X, 1e-9)
		assert.InDelta(t, slot*0.8, b.Width, 1e-9)
		assert.InDelta(t, 240, b.Y+b.Height, 1e-9)
	}

	assert.InDelta(t, 100, bars[0].Height, 1e-9)
	assert.InDelta(t, 200, bars[1].Height, 1e-9)
	assert.InDelta(t, 50, bars[2].Height, 1e-9)
	assert.InDelta(t, bars[0].Height/bars[1].Height, 0.5, 1e-12)
	assert.InDelta(t, bars[2].Height/bars[1].Height, 0.25, 1e-12)
}

func TestBarColorsCycle(t *testing.T) {
	t.Parallel()

	c, rec := newBarChart(t, []float64{1, 2, 3, 4, 5}, nil)

	idx := []int{}
	for _, b := range c.Bars() {
		idx = append(idx, b.ColorIndex)
	}

	assert.Equal(t, []int{0, 1, 2, 3, 0}, idx)

	rects := charttest.Filter(rec.Frame(), charttest.OpFillRect)
	require.Len(t, rects, 5)
	assert.Equal(t, charts.DefaultBarColors[0], rects[4].Color)
	assert.Equal(t, charts.DefaultBarColors[3], rects[3].Color)
}

func TestBarDraw(t *testing.T) {
	t.Parallel()

	_, rec := newBarChart(t, []float64{10, 20, 5}, []string{"Low", "Medium", "High"})

	frame := rec.Frame()
	assert.Equal(t, 1, rec.Frames(), "bar charts draw once per update")
	assert.Equal(t, []string{"10", "Low", "20", "Medium", "5", "High"}, charttest.Texts(frame))

	texts := charttest.Filter(frame, charttest.OpText)
	assert.InDelta(t, 240-100-5, texts[0].Args[1], 1e-9)
	assert.InDelta(t, 270, texts[1].Args[1], 1e-9)
	assert.Equal(t, charts.AlignCenter, texts[0].Style.Align)
}

func TestBarZeroMax(t *testing.T) {
	t.Parallel()

	c, rec := newBarChart(t, []float64{0, 0}, []string{"a", "b"})

	for _, b := range c.Bars() {
		assert.Zero(t, b.Height)
		assert.InDelta(t, 240, b.Y, 1e-9)
	}

	assert.Equal(t, 2, charttest.Count(rec.Frame(), charttest.OpFillRect))
}

func TestBarEmptyState(t *testing.T) {
	t.Parallel()

	c, rec := newBarChart(t, nil, nil)

	assert.Empty(t, c.Bars())

	frame := rec.Frame()
	assert.Equal(t, []string{"No data to display"}, charttest.Texts(frame))
	assert.Zero(t, charttest.Count(frame, charttest.OpFillRect))
}
