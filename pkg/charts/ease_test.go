package charts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MacroPower/smarttask/pkg/charts"
)

func TestEaseInOutCubic(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		in   float64
		want float64
	}{
		"start":       {in: 0, want: 0},
		"end":         {in: 1, want: 1},
		"midpoint":    {in: 0.5, want: 0.5},
		"first half":  {in: 0.25, want: 0.0625},
		"second half": {in: 0.75, want: 0.9375},
		"below range": {in: -1, want: 0},
		"above range": {in: 2, want: 1},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.InDelta(t, tc.want, charts.EaseInOutCubic(tc.in), 1e-12)
		})
	}
}

func TestEaseInOutCubicMonotonic(t *testing.T) {
	t.Parallel()

	prev := charts.EaseInOutCubic(0)
	for i := 1; i <= 100; i++ {
		v := charts.EaseInOutCubic(float64(i) / 100)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}
