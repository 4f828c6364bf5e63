package charts

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart is a registered chart instance. Exactly one of the variant fields is
// set, selected by its [Kind] tag.
//
// Chart values are owned by their [Manager]; call the manager's methods
// rather than mutating a chart from several goroutines.
type Chart struct {
	surface      Surface
	productivity *ProductivityChart
	bar          *BarChart
	progress     *ProgressChart
	id           string
	kind         Kind
}

// ChartOption customizes a chart at creation.
type ChartOption func(*chartOptions)

type chartOptions struct {
	colors []drawing.Color
	step   float64
}

// WithAnimationStep overrides the per-tick progress increment of animated
// charts.
func WithAnimationStep(step float64) ChartOption {
	return func(o *chartOptions) {
		o.step = step
	}
}

// WithSeriesColors overrides the series colors: the three category colors of
// a productivity chart, the cycling palette of a bar chart, or the line and
// fill colors of a progress chart.
func WithSeriesColors(colors ...drawing.Color) ChartOption {
	return func(o *chartOptions) {
		o.colors = colors
	}
}

func newChart(kind Kind, id string, s Surface, opts ...ChartOption) (*Chart, error) {
	o := &chartOptions{}
	for _, opt := range opts {
		opt(o)
	}

	c := &Chart{id: id, kind: kind, surface: s}

	var err error

	switch kind {
	case KindProductivity:
		c.productivity, err = NewProductivityChart(s)
		if err == nil {
			if len(o.colors) >= len(DefaultProductivityColors) {
				c.productivity.colors = o.colors
			}
			if o.step > 0 {
				c.productivity.anim = NewAnimation(o.step)
			}
		}

	case KindBar:
		c.bar, err = NewBarChart(s)
		if err == nil && len(o.colors) > 0 {
			c.bar.colors = o.colors
		}

	case KindProgress:
		c.progress, err = NewProgressChart(s)
		if err == nil {
			if len(o.colors) > 0 {
				c.progress.color = o.colors[0]
			}
			if len(o.colors) > 1 {
				c.progress.fill = o.colors[1]
			}
			if o.step > 0 {
				c.progress.anim = NewAnimation(o.step)
			}
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	if err != nil {
		return nil, fmt.Errorf("set up %s chart %q: %w", kind, id, err)
	}

	return c, nil
}

// ID is the canvas id the chart is registered under.
func (c *Chart) ID() string {
	return c.id
}

// Kind is the variant tag.
func (c *Chart) Kind() Kind {
	return c.kind
}

// Surface is the surface the chart draws on.
//
//nolint:ireturn // Surfaces have multiple concrete types.
func (c *Chart) Surface() Surface {
	return c.surface
}

// Productivity returns the donut variant, or nil.
func (c *Chart) Productivity() *ProductivityChart {
	return c.productivity
}

// Bar returns the bar variant, or nil.
func (c *Chart) Bar() *BarChart {
	return c.bar
}

// ProgressLine returns the line chart variant, or nil.
func (c *Chart) ProgressLine() *ProgressChart {
	return c.progress
}

// Animation returns the entrance animation, or nil for static charts.
func (c *Chart) Animation() *Animation {
	switch c.kind {
	case KindProductivity:
		return &c.productivity.anim
	case KindProgress:
		return &c.progress.anim
	}

	return nil
}

// Progress is the linear animation progress; static charts report 1.
func (c *Chart) Progress() float64 {
	if a := c.Animation(); a != nil {
		return a.Progress()
	}

	return 1
}

// Animating reports whether the chart still has frames to draw.
func (c *Chart) Animating() bool {
	a := c.Animation()

	return a != nil && a.Running()
}

func (c *Chart) update(d Dataset, p Palette) error {
	switch c.kind {
	case KindProductivity:
		if d.IsSeries() {
			return fmt.Errorf("%w: %s chart needs counts", ErrDatasetMismatch, c.kind)
		}

		err := d.Counts.Validate()
		if err != nil {
			return err
		}

		c.productivity.UpdateData(d.Counts)
		c.productivity.Draw(p)

	case KindBar, KindProgress:
		if !d.IsSeries() {
			return fmt.Errorf("%w: %s chart needs a value series", ErrDatasetMismatch, c.kind)
		}

		s, err := NewSeries(d.Values, d.Labels)
		if err != nil {
			return err
		}

		if c.kind == KindBar {
			c.bar.UpdateData(s, p)
		} else {
			c.progress.UpdateData(s)
			c.progress.Draw(p)
		}
	}

	return nil
}

func (c *Chart) setup() error {
	switch c.kind {
	case KindProductivity:
		return c.productivity.Setup()
	case KindBar:
		return c.bar.Setup()
	case KindProgress:
		return c.progress.Setup()
	}

	return nil
}

func (c *Chart) draw(p Palette) {
	switch c.kind {
	case KindProductivity:
		c.productivity.Draw(p)
	case KindBar:
		c.bar.Draw(p)
	case KindProgress:
		c.progress.Draw(p)
	}
}
