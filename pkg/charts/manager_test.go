package charts_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/MacroPower/smarttask/pkg/charts"
	"github.com/MacroPower/smarttask/pkg/charttest"
)

func newManager(t *testing.T, canvases charttest.Canvases, opts ...charts.ManagerOption) (*charts.Manager, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return charts.NewManager(canvases, append([]charts.ManagerOption{charts.WithLogger(logger)}, opts...)...), buf
}

func TestManagerCreateChartErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err  error
		kind charts.Kind
		id   string
	}{
		"unknown kind": {
			kind: "pie",
			id:   "productivityChart",
			err:  charts.ErrUnknownKind,
		},
		"missing canvas": {
			kind: charts.KindBar,
			id:   "nowhere",
			err:  charts.ErrCanvasNotFound,
		},
		"invalid bounds": {
			kind: charts.KindProgress,
			id:   "zero",
			err:  charts.ErrInvalidDimensions,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m, logs := newManager(t, charttest.Canvases{
				"productivityChart": charttest.NewRecorder(400, 300),
				"zero":              charttest.NewRecorder(0, 300),
			})

			c, err := m.CreateChart(tc.kind, tc.id)
			require.ErrorIs(t, err, tc.err)
			assert.Nil(t, c)
			assert.Empty(t, m.IDs())
			assert.Contains(t, logs.String(), "level=ERROR")
		})
	}
}

func TestManagerCreateChartKindCase(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t, charttest.Canvases{"c": charttest.NewRecorder(400, 300)})

	c, err := m.CreateChart("Bar", "c")
	require.NoError(t, err)
	assert.Equal(t, charts.KindBar, c.Kind())
}

func TestManagerProductivityAnimation(t *testing.T) {
	t.Parallel()

	rec := charttest.NewRecorder(400, 300)
	m, _ := newManager(t, charttest.Canvases{"productivityChart": rec})

	c, err := m.CreateChart(charts.KindProductivity, "productivityChart")
	require.NoError(t, err)
	assert.False(t, m.Animating())

	require.NoError(t, m.UpdateChart("productivityChart", charts.CountsDataset(charts.Counts{
		Completed: 5, Pending: 3, Overdue: 2,
	})))
	assert.True(t, m.Animating())
	assert.Zero(t, c.Progress())

	prev := c.Progress()
	ticks := 0

	for m.Tick() {
		require.GreaterOrEqual(t, c.Progress(), prev)
		prev = c.Progress()
		ticks++
		require.Less(t, ticks, 100)
	}

	assert.InDelta(t, 1.0, c.Progress(), 0)
	assert.False(t, m.Animating())
	assert.False(t, m.Tick(), "idle charts do not tick")

	sweep := 0.0
	for _, arc := range charttest.Filter(rec.Frame(), charttest.OpArc) {
		if !arc.CounterCW && arc.Args[2] == 130 {
			sweep += arc.Args[4] - arc.Args[3]
		}
	}

	assert.InDelta(t, 6.283185307179586, sweep, 1e-9)
}

func TestManagerUpdateMismatch(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t, charttest.Canvases{
		"productivityChart": charttest.NewRecorder(400, 300),
		"priorityChart":     charttest.NewRecorder(400, 300),
	})

	_, err := m.CreateChart(charts.KindProductivity, "productivityChart")
	require.NoError(t, err)
	_, err = m.CreateChart(charts.KindBar, "priorityChart")
	require.NoError(t, err)

	err = m.UpdateChart("productivityChart", charts.SeriesDataset([]float64{1}, nil))
	require.ErrorIs(t, err, charts.ErrDatasetMismatch)

	err = m.UpdateChart("priorityChart", charts.CountsDataset(charts.Counts{Completed: 1}))
	require.ErrorIs(t, err, charts.ErrDatasetMismatch)

	err = m.UpdateChart("priorityChart", charts.SeriesDataset([]float64{1, 2}, []string{"a"}))
	require.ErrorIs(t, err, charts.ErrInvalidDataset)

	err = m.UpdateChart("productivityChart", charts.CountsDataset(charts.Counts{Pending: -1}))
	require.ErrorIs(t, err, charts.ErrInvalidDataset)
}

func TestManagerResizeKeepsProgress(t *testing.T) {
	t.Parallel()

	rec := charttest.NewRecorder(500, 300)
	m, _ := newManager(t, charttest.Canvases{"progressChart": rec})

	c, err := m.CreateChart(charts.KindProgress, "progressChart")
	require.NoError(t, err)

	require.NoError(t, m.UpdateChart("progressChart",
		charts.SeriesDataset([]float64{1, 2, 3, 4, 5, 6, 7}, []string{"M", "T", "W", "T", "F", "S", "S"})))

	for range 10 {
		m.Tick()
	}

	before := c.Progress()
	require.Greater(t, before, 0.0)

	rec.SetBounds(charts.Dimensions{Width: 800, Height: 400, PixelRatio: 2})
	require.NoError(t, m.ResizeChart("progressChart"))

	assert.InDelta(t, before, c.Progress(), 0)
	assert.True(t, c.Animating())
	assert.Equal(t, charts.Dimensions{Width: 800, Height: 400, PixelRatio: 2}, rec.Configured())
	assert.Equal(t, 7, c.ProgressLine().Data().Len())

	pts := c.ProgressLine().Points()
	assert.InDelta(t, 750, pts[len(pts)-1].X, 1e-9)
}

func TestManagerResizeAllChartsAggregates(t *testing.T) {
	t.Parallel()

	a := charttest.NewRecorder(400, 300)
	b := charttest.NewRecorder(400, 300)
	ok := charttest.NewRecorder(400, 300)
	m, _ := newManager(t, charttest.Canvases{"a": a, "b": b, "ok": ok})

	for _, id := range []string{"a", "ok", "b"} {
		_, err := m.CreateChart(charts.KindBar, id)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"a", "ok", "b"}, m.IDs())

	a.SetBounds(charts.Dimensions{Width: 0, Height: 300, PixelRatio: 1})
	b.SetBounds(charts.Dimensions{Width: 400, Height: 300, PixelRatio: 0})

	frames := ok.Frames()

	err := m.ResizeAllCharts()
	require.ErrorIs(t, err, charts.ErrInvalidDimensions)
	assert.Contains(t, err.Error(), `"a"`)
	assert.Contains(t, err.Error(), `"b"`)
	assert.Equal(t, frames+1, ok.Frames(), "healthy charts still redraw")
}

func TestManagerRemoveChart(t *testing.T) {
	t.Parallel()

	rec := charttest.NewRecorder(400, 300)
	m, logs := newManager(t, charttest.Canvases{"productivityChart": rec})

	c, err := m.CreateChart(charts.KindProductivity, "productivityChart")
	require.NoError(t, err)
	require.NoError(t, m.UpdateChart("productivityChart", charts.CountsDataset(charts.Counts{Completed: 1})))

	m.Tick()
	m.RemoveChart("productivityChart")

	assert.False(t, c.Animating())
	assert.Empty(t, m.IDs())

	frames := rec.Frames()

	assert.False(t, m.Tick())
	require.NoError(t, m.UpdateChart("productivityChart", charts.CountsDataset(charts.Counts{Completed: 2})))
	require.NoError(t, m.ResizeChart("productivityChart"))
	require.NoError(t, m.ResizeAllCharts())

	assert.Equal(t, frames, rec.Frames(), "removed charts are never drawn again")
	assert.Contains(t, logs.String(), "update ignored")

	_, found := m.Chart("productivityChart")
	assert.False(t, found)

	m.RemoveChart("productivityChart")
}

func TestManagerReplaceChart(t *testing.T) {
	t.Parallel()

	rec := charttest.NewRecorder(400, 300)
	m, _ := newManager(t, charttest.Canvases{"c": rec})

	first, err := m.CreateChart(charts.KindProductivity, "c")
	require.NoError(t, err)
	require.NoError(t, m.UpdateChart("c", charts.CountsDataset(charts.Counts{Completed: 1})))
	require.True(t, first.Animating())

	second, err := m.CreateChart(charts.KindProgress, "c")
	require.NoError(t, err)

	assert.False(t, first.Animating(), "the replaced chart stops animating")
	assert.Equal(t, []string{"c"}, m.IDs())

	got, ok := m.Chart("c")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestManagerThemeAppliesToDraws(t *testing.T) {
	t.Parallel()

	rec := charttest.NewRecorder(400, 300)
	m, _ := newManager(t, charttest.Canvases{"c": rec}, charts.WithTheme(charts.ThemeDark))

	assert.Equal(t, charts.ThemeDark, m.Theme())

	_, err := m.CreateChart(charts.KindBar, "c")
	require.NoError(t, err)
	require.NoError(t, m.UpdateChart("c", charts.SeriesDataset(nil, nil)))

	texts := charttest.Filter(rec.Frame(), charttest.OpText)
	require.Len(t, texts, 1)
	assert.Equal(t, charts.PaletteFor(charts.ThemeDark).Muted, texts[0].Style.Color)

	m.SetTheme(charts.ThemeLight)
	require.NoError(t, m.ResizeAllCharts())

	texts = charttest.Filter(rec.Frame(), charttest.OpText)
	assert.Equal(t, charts.PaletteFor(charts.ThemeLight).Muted, texts[0].Style.Color)
}

func TestManagerChartOptions(t *testing.T) {
	t.Parallel()

	rec := charttest.NewRecorder(480, 280)
	m, _ := newManager(t, charttest.Canvases{"c": rec, "p": charttest.NewRecorder(400, 300)})

	red := drawing.ColorFromHex("ff0000")

	_, err := m.CreateChart(charts.KindBar, "c", charts.WithSeriesColors(red))
	require.NoError(t, err)
	require.NoError(t, m.UpdateChart("c", charts.SeriesDataset([]float64{1, 2}, nil)))

	for _, op := range charttest.Filter(rec.Frame(), charttest.OpFillRect) {
		assert.Equal(t, red, op.Color)
	}

	p, err := m.CreateChart(charts.KindProductivity, "p", charts.WithAnimationStep(0.5))
	require.NoError(t, err)
	require.NoError(t, m.UpdateChart("p", charts.CountsDataset(charts.Counts{Completed: 1})))

	assert.True(t, m.Tick())
	assert.False(t, m.Tick())
	assert.InDelta(t, 1.0, p.Progress(), 0)
}

func TestManagerRedraw(t *testing.T) {
	t.Parallel()

	rec := charttest.NewRecorder(400, 300)
	m, _ := newManager(t, charttest.Canvases{"c": rec})

	_, err := m.CreateChart(charts.KindBar, "c")
	require.NoError(t, err)

	frames := rec.Frames()
	require.NoError(t, m.Redraw("c"))
	assert.Equal(t, frames+1, rec.Frames())

	err = m.Redraw("missing")
	require.ErrorIs(t, err, charts.ErrChartNotFound)
	assert.True(t, charts.IsNotFound(err))
	assert.False(t, charts.IsNotFound(errors.New("other")))
}
