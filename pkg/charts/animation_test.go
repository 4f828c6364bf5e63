package charts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/smarttask/pkg/charts"
)

func TestAnimationLifecycle(t *testing.T) {
	t.Parallel()

	a := charts.NewAnimation(charts.ProductivityStep)
	assert.Equal(t, charts.AnimationIdle, a.State())
	assert.InDelta(t, 1.0, a.Progress(), 0)
	assert.False(t, a.Advance(), "idle animations do not advance")

	a.Start()
	assert.Equal(t, charts.AnimationRunning, a.State())
	assert.Zero(t, a.Progress())

	ticks := 0
	prev := a.Progress()

	for a.Running() {
		require.True(t, a.Advance())
		require.GreaterOrEqual(t, a.Progress(), prev, "progress never moves backwards")
		require.LessOrEqual(t, a.Progress(), 1.0)

		prev = a.Progress()
		ticks++
		require.LessOrEqual(t, ticks, 100)
	}

	assert.InDelta(t, 20, ticks, 1)
	assert.InDelta(t, 1.0, a.Progress(), 0)
	assert.Equal(t, charts.AnimationIdle, a.State())
	assert.Equal(t, "idle", a.State().String())
}

func TestAnimationProgressStep(t *testing.T) {
	t.Parallel()

	a := charts.NewAnimation(charts.ProgressStep)
	a.Start()

	ticks := 0
	for a.Advance() {
		ticks++
	}

	assert.Equal(t, 34, ticks)
}

func TestAnimationRestart(t *testing.T) {
	t.Parallel()

	a := charts.NewAnimation(0.25)
	a.Start()
	a.Advance()
	a.Advance()
	assert.InDelta(t, 0.5, a.Progress(), 1e-12)

	a.Start()
	assert.Zero(t, a.Progress())
	assert.Equal(t, "animating", a.State().String())
}

func TestAnimationCancelAndFinish(t *testing.T) {
	t.Parallel()

	a := charts.NewAnimation(0.25)
	a.Start()
	a.Advance()
	a.Cancel()

	assert.False(t, a.Running())
	assert.InDelta(t, 0.25, a.Progress(), 1e-12)
	assert.False(t, a.Advance())

	a.Start()
	a.Finish()
	assert.InDelta(t, 1.0, a.Progress(), 0)
	assert.InDelta(t, 1.0, a.Eased(), 0)
}

func TestNewAnimationInvalidStep(t *testing.T) {
	t.Parallel()

	a := charts.NewAnimation(0)
	assert.InDelta(t, 1.0, a.Step(), 0)

	a.Start()
	assert.True(t, a.Advance())
	assert.False(t, a.Running())
}
