package charts_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/smarttask/pkg/charts"
	"github.com/MacroPower/smarttask/pkg/charttest"
)

func TestThemeObserverResolve(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		attr   string
		want   charts.Theme
		prefer bool
	}{
		"explicit dark wins":    {attr: "dark", prefer: false, want: charts.ThemeDark},
		"explicit light wins":   {attr: "light", prefer: true, want: charts.ThemeLight},
		"empty defers to dark":  {attr: "", prefer: true, want: charts.ThemeDark},
		"empty defers to light": {attr: "", prefer: false, want: charts.ThemeLight},
		"auto defers":           {attr: "auto", prefer: true, want: charts.ThemeDark},
		"case insensitive":      {attr: " DARK ", prefer: false, want: charts.ThemeDark},
		"unknown value defers":  {attr: "sepia", prefer: true, want: charts.ThemeDark},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m, _ := newManager(t, charttest.Canvases{})
			o := charts.NewThemeObserver(m)

			o.PreferenceChanged(tc.prefer)
			o.AttributeChanged(charts.ThemeAttribute, tc.attr)

			assert.Equal(t, tc.want, o.Theme())
			assert.Equal(t, tc.want, m.Theme())
		})
	}
}

func TestThemeObserverRedraws(t *testing.T) {
	t.Parallel()

	rec := charttest.NewRecorder(400, 300)
	m, _ := newManager(t, charttest.Canvases{"productivityChart": rec})

	_, err := m.CreateChart(charts.KindProductivity, "productivityChart")
	require.NoError(t, err)
	require.NoError(t, m.UpdateChart("productivityChart", charts.CountsDataset(charts.Counts{})))

	o := charts.NewThemeObserver(m)

	frames := rec.Frames()

	o.AttributeChanged("class", "dark")
	assert.Equal(t, frames, rec.Frames(), "other attributes are ignored")
	assert.Equal(t, charts.ThemeLight, m.Theme())

	o.AttributeChanged(charts.ThemeAttribute, "dark")
	assert.Equal(t, frames+1, rec.Frames())
	assert.Equal(t, charts.ThemeDark, m.Theme())

	dark := charts.PaletteFor(charts.ThemeDark)
	for _, op := range charttest.Filter(rec.Frame(), charttest.OpText) {
		assert.Equal(t, dark.Muted, op.Style.Color)
	}

	o.PreferenceChanged(false)
	assert.Equal(t, charts.ThemeDark, m.Theme(), "attribute still wins")
	assert.Equal(t, frames+2, rec.Frames())
}

func TestThemeObserverConcurrentChanges(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t, charttest.Canvases{})
	o := charts.NewThemeObserver(m)

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := range 200 {
				if i%2 == 0 {
					o.AttributeChanged(charts.ThemeAttribute, []string{"light", "dark", "auto"}[j%3])
				} else {
					o.PreferenceChanged(j%2 == 0)
				}
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, o.Theme(), m.Theme())
}

func TestThemeObserverWatchInterval(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t, charttest.Canvases{})
	o := charts.NewThemeObserver(m)

	for _, interval := range []time.Duration{0, -time.Second} {
		err := o.Watch(t.Context(), charts.PreferenceFunc(func() bool { return true }), interval)
		require.ErrorIs(t, err, charts.ErrInvalidInterval)
	}

	assert.Equal(t, charts.ThemeLight, m.Theme(), "rejected watch does not poll")
}

func TestThemeObserverWatch(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t, charttest.Canvases{})
	o := charts.NewThemeObserver(m)

	var dark atomic.Bool

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)

	go func() {
		done <- o.Watch(ctx, charts.PreferenceFunc(dark.Load), time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		return o.Theme() == charts.ThemeLight
	}, time.Second, time.Millisecond)

	dark.Store(true)

	require.Eventually(t, func() bool {
		return m.Theme() == charts.ThemeDark
	}, time.Second, time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}
