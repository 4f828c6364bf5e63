package charts

// AnimationState is the phase of an [Animation].
type AnimationState int

const (
	// AnimationIdle means no frames are pending.
	AnimationIdle AnimationState = iota
	// AnimationRunning means the next tick advances progress.
	AnimationRunning
)

func (s AnimationState) String() string {
	if s == AnimationRunning {
		return "animating"
	}

	return "idle"
}

const (
	// ProductivityStep is the per-frame progress increment of the donut.
	ProductivityStep = 0.05
	// ProgressStep is the per-frame progress increment of the line chart.
	ProgressStep = 0.03
)

// Animation is the entrance animation of a chart. Progress only moves
// forward while running, is reset by [Animation.Start], and is clamped to 1,
// at which point the animation returns to idle.
type Animation struct {
	step     float64
	progress float64
	state    AnimationState
}

// NewAnimation returns an idle animation that advances by step per tick.
// An idle animation that never started reports full progress so static
// redraws show the complete chart.
func NewAnimation(step float64) Animation {
	if !(step > 0) {
		step = 1
	}

	return Animation{step: step, progress: 1}
}

// Start resets progress to zero and begins a new run, replacing any run in
// flight.
func (a *Animation) Start() {
	a.progress = 0
	a.state = AnimationRunning
}

// Advance moves a running animation forward by one step. It reports whether
// progress changed, that is whether a redraw is due.
func (a *Animation) Advance() bool {
	if a.state != AnimationRunning {
		return false
	}

	a.progress += a.step
	if a.progress >= 1 {
		a.progress = 1
		a.state = AnimationIdle
	}

	return true
}

// Cancel stops a running animation where it is.
func (a *Animation) Cancel() {
	a.state = AnimationIdle
}

// Finish jumps to full progress and stops.
func (a *Animation) Finish() {
	a.progress = 1
	a.state = AnimationIdle
}

// Progress is the linear progress in [0, 1].
func (a *Animation) Progress() float64 {
	return a.progress
}

// Eased is the progress passed through [EaseInOutCubic].
func (a *Animation) Eased() float64 {
	return EaseInOutCubic(a.progress)
}

// State reports the current phase.
func (a *Animation) State() AnimationState {
	return a.state
}

// Running reports whether ticks still advance the animation.
func (a *Animation) Running() bool {
	return a.state == AnimationRunning
}

// Step is the per-tick increment.
func (a *Animation) Step() float64 {
	return a.step
}
