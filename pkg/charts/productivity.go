package charts

import (
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Category identifies one slice of the productivity donut.
type Category int

const (
	CategoryCompleted Category = iota
	CategoryPending
	CategoryOverdue
)

func (c Category) String() string {
	switch c {
	case CategoryCompleted:
		return "Completed"
	case CategoryPending:
		return "Pending"
	case CategoryOverdue:
		return "Overdue"
	}

	return "Unknown"
}

const (
	donutStart      = -math.Pi / 2
	donutHoleRatio  = 0.6
	donutMargin     = 20
	donutEmptyWidth = 8
)

// DefaultProductivityColors are the completed, pending and overdue colors.
var DefaultProductivityColors = []drawing.Color{
	hexColor("10b981"),
	hexColor("f59e0b"),
	hexColor("ef4444"),
}

// Segment is one drawn arc of the donut.
type Segment struct {
	Category Category
	Color    drawing.Color
	// Start is the angle where the slice begins, in radians.
	Start float64
	// Span is the full angular share of the category.
	Span float64
	// Sweep is the portion of Span visible at the current progress.
	Sweep float64
}

// ProductivityChart is an animated donut chart of task counts.
type ProductivityChart struct {
	surface Surface
	colors  []drawing.Color
	data    Counts
	anim    Animation

	centerX float64
	centerY float64
	radius  float64
}

// NewProductivityChart binds a donut chart to s and lays it out.
func NewProductivityChart(s Surface) (*ProductivityChart, error) {
	c := &ProductivityChart{
		surface: s,
		colors:  DefaultProductivityColors,
		anim:    NewAnimation(ProductivityStep),
	}

	err := c.Setup()
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Setup re-derives the layout from the surface bounds.
func (c *ProductivityChart) Setup() error {
	d := c.surface.Bounds()

	err := c.surface.Configure(d)
	if err != nil {
		return err
	}

	c.centerX = d.Width / 2
	c.centerY = d.Height / 2
	c.radius = math.Max(0, math.Min(d.Width, d.Height)/2-donutMargin)

	return nil
}

// UpdateData replaces the counts and restarts the entrance animation.
func (c *ProductivityChart) UpdateData(data Counts) {
	c.data = data
	c.anim.Start()
}

// Data returns the current counts.
func (c *ProductivityChart) Data() Counts {
	return c.data
}

// Animation exposes the entrance animation.
func (c *ProductivityChart) Animation() *Animation {
	return &c.anim
}

// Radius is the outer radius of the donut in logical units.
func (c *ProductivityChart) Radius() float64 {
	return c.radius
}

// Segments lays out the non-empty categories for an eased progress value.
// At progress 1 the spans, and the sweeps, add up to a full turn.
func (c *ProductivityChart) Segments(eased float64) []Segment {
	total := c.data.Total()
	if total <= 0 {
		return nil
	}

	counts := [...]int{c.data.Completed, c.data.Pending, c.data.Overdue}
	segments := make([]Segment, 0, len(counts))
	angle := donutStart

	for i, n := range counts {
		if n <= 0 {
			continue
		}

		span := float64(n) / float64(total) * 2 * math.Pi
		segments = append(segments, Segment{
			Category: Category(i),
			Color:    c.colors[i%len(c.colors)],
			Start:    angle,
			Span:     span,
			Sweep:    span * eased,
		})
		angle += span
	}

	return segments
}

// Draw renders the current animation frame.
func (c *ProductivityChart) Draw(p Palette) {
	s := c.surface
	s.Clear()

	total := c.data.Total()
	if total <= 0 {
		c.drawEmptyState(p)

		return
	}

	inner := c.radius * donutHoleRatio

	for _, seg := range c.Segments(c.anim.Eased()) {
		end := seg.Start + seg.Sweep

		s.BeginPath()
		s.Arc(c.centerX, c.centerY, c.radius, seg.Start, end, false)
		s.Arc(c.centerX, c.centerY, inner, end, seg.Start, true)
		s.ClosePath()
		s.Fill(seg.Color)
	}

	s.BeginPath()
	s.Arc(c.centerX, c.centerY, inner, 0, 2*math.Pi, false)
	s.Fill(p.Background)
	s.Stroke(p.Border, 2, nil)

	s.Text(strconv.Itoa(total), c.centerX, c.centerY-8, TextStyle{
		Color:    p.Text,
		Size:     24,
		Bold:     true,
		Align:    AlignCenter,
		Baseline: BaselineMiddle,
	})
	s.Text("Total Tasks", c.centerX, c.centerY+12, TextStyle{
		Color:    p.Subtext,
		Size:     12,
		Align:    AlignCenter,
		Baseline: BaselineMiddle,
	})
}

func (c *ProductivityChart) drawEmptyState(p Palette) {
	s := c.surface

	s.BeginPath()
	s.Arc(c.centerX, c.centerY, c.radius, 0, 2*math.Pi, false)
	s.Stroke(p.Border, donutEmptyWidth, nil)

	style := TextStyle{
		Color:    p.Muted,
		Size:     16,
		Align:    AlignCenter,
		Baseline: BaselineMiddle,
	}
	s.Text("No tasks yet", c.centerX, c.centerY-8, style)

	style.Size = 12
	s.Text("Create your first task!", c.centerX, c.centerY+12, style)
}
