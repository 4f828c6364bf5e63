// Package charts renders the task statistics charts: an animated donut of
// completed/pending/overdue counts, a static bar chart and an animated
// line/area chart.
//
// Charts draw onto a [Surface], a small 2D drawing context modeled after the
// HTML canvas API. Concrete surfaces live in
// [github.com/MacroPower/smarttask/pkg/canvas]; tests use the recording
// surface from [github.com/MacroPower/smarttask/pkg/charttest].
//
// A [Manager] owns every chart, keyed by canvas id. Animations are explicit
// state machines that only advance when a driver calls [Manager.Tick], which
// makes cancellation a state transition rather than an unscheduled callback.
// Colors are never read from global state: every draw receives the [Palette]
// for the manager's current [Theme], and a [ThemeObserver] updates that theme
// and redraws all charts in place when the theme attribute or the color
// scheme preference changes.
package charts
