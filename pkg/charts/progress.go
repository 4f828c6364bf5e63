package charts

import (
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	progressPadding     = 50
	progressGridLines   = 5
	progressPointRadius = 6
	progressLabelGap    = 10
)

var (
	// DefaultProgressColor is the line and marker color.
	DefaultProgressColor = hexColor("3b82f6")
	// DefaultProgressFill is the translucent area under the line.
	DefaultProgressFill = drawing.Color{R: 59, G: 130, B: 246, A: 26}

	gridDash = []float64{2, 2}
)

// Point is a plotted data point in logical coordinates.
type Point struct {
	X float64
	Y float64
}

// VisiblePoints is how many of n points are revealed at an eased progress:
// ceil(n × eased), clamped to [0, n].
func VisiblePoints(n int, eased float64) int {
	if n <= 0 || !(eased > 0) {
		return 0
	}

	v := int(math.Ceil(float64(n) * eased))

	return min(max(v, 0), n)
}

// ProgressChart is an animated line/area chart.
type ProgressChart struct {
	surface Surface
	color   drawing.Color
	fill    drawing.Color
	data    Series
	anim    Animation
	width   float64
	height  float64
}

// NewProgressChart binds a line chart to s and lays it out.
func NewProgressChart(s Surface) (*ProgressChart, error) {
	c := &ProgressChart{
		surface: s,
		color:   DefaultProgressColor,
		fill:    DefaultProgressFill,
		anim:    NewAnimation(ProgressStep),
	}

	err := c.Setup()
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Setup re-derives the layout from the surface bounds.
func (c *ProgressChart) Setup() error {
	d := c.surface.Bounds()

	err := c.surface.Configure(d)
	if err != nil {
		return err
	}

	c.width = d.Width
	c.height = d.Height

	return nil
}

// UpdateData replaces the series and restarts the entrance animation.
func (c *ProgressChart) UpdateData(data Series) {
	c.data = data
	c.anim.Start()
}

// Data returns the current series.
func (c *ProgressChart) Data() Series {
	return c.data
}

// Animation exposes the entrance animation.
func (c *ProgressChart) Animation() *Animation {
	return &c.anim
}

func (c *ProgressChart) plotWidth() float64 {
	return max(0, c.width-2*progressPadding)
}

func (c *ProgressChart) plotHeight() float64 {
	return max(0, c.height-2*progressPadding)
}

func (c *ProgressChart) baseline() float64 {
	return c.height - progressPadding
}

// x is the horizontal position of point i. A lone point sits in the middle
// of the plot.
func (c *ProgressChart) x(i int) float64 {
	n := c.data.Len()
	if n <= 1 {
		return progressPadding + c.plotWidth()/2
	}

	return progressPadding + float64(i)*c.plotWidth()/float64(n-1)
}

// Points maps every value to plot coordinates. With an all-zero series every
// point sits on the baseline.
func (c *ProgressChart) Points() []Point {
	maxValue := c.data.Max()
	points := make([]Point, c.data.Len())

	for i, v := range c.data.Values {
		y := c.baseline()
		if maxValue > 0 {
			y -= v / maxValue * c.plotHeight()
		}

		points[i] = Point{X: c.x(i), Y: y}
	}

	return points
}

// YLabels are the six axis labels from the top of the plot to the baseline.
func (c *ProgressChart) YLabels() []string {
	maxValue := c.data.Max()
	labels := make([]string, progressGridLines+1)

	for i := range labels {
		v := math.Round(maxValue / progressGridLines * float64(progressGridLines-i))
		labels[i] = strconv.FormatFloat(v, 'f', 0, 64)
	}

	return labels
}

// Draw renders the current animation frame.
func (c *ProgressChart) Draw(p Palette) {
	s := c.surface
	s.Clear()

	if c.data.Len() == 0 {
		c.drawEmptyState(p)

		return
	}

	points := c.Points()
	visible := VisiblePoints(len(points), c.anim.Eased())

	c.drawGrid(p)
	c.drawAxes(p)
	c.drawLine(points[:visible])
	c.drawPoints(p, points[:visible])
	c.drawLabels(p)
}

func (c *ProgressChart) drawGrid(p Palette) {
	s := c.surface
	left, right := float64(progressPadding), c.width-progressPadding

	for i := 0; i <= progressGridLines; i++ {
		y := progressPadding + float64(i)/progressGridLines*c.plotHeight()

		s.BeginPath()
		s.MoveTo(left, y)
		s.LineTo(right, y)
		s.Stroke(p.Grid, 1, gridDash)
	}

	for i := range c.data.Len() {
		x := c.x(i)

		s.BeginPath()
		s.MoveTo(x, progressPadding)
		s.LineTo(x, c.baseline())
		s.Stroke(p.Grid, 1, gridDash)
	}
}

func (c *ProgressChart) drawAxes(p Palette) {
	s := c.surface

	s.BeginPath()
	s.MoveTo(progressPadding, progressPadding)
	s.LineTo(progressPadding, c.baseline())
	s.Stroke(p.Axis, 2, nil)

	s.BeginPath()
	s.MoveTo(progressPadding, c.baseline())
	s.LineTo(c.width-progressPadding, c.baseline())
	s.Stroke(p.Axis, 2, nil)
}

func (c *ProgressChart) drawLine(visible []Point) {
	if c.data.Len() < 2 || len(visible) == 0 {
		return
	}

	s := c.surface

	s.BeginPath()
	s.MoveTo(progressPadding, c.baseline())

	for _, pt := range visible {
		s.LineTo(pt.X, pt.Y)
	}

	s.LineTo(visible[len(visible)-1].X, c.baseline())
	s.ClosePath()
	s.Fill(c.fill)

	s.BeginPath()

	for i, pt := range visible {
		if i == 0 {
			s.MoveTo(pt.X, pt.Y)
		} else {
			s.LineTo(pt.X, pt.Y)
		}
	}

	s.Stroke(c.color, 3, nil)
}

func (c *ProgressChart) drawPoints(p Palette, visible []Point) {
	s := c.surface

	for _, pt := range visible {
		s.BeginPath()
		s.Arc(pt.X, pt.Y, progressPointRadius, 0, 2*math.Pi, false)
		s.Fill(c.color)
		s.Stroke(p.Background, 3, nil)
	}
}

func (c *ProgressChart) drawLabels(p Palette) {
	s := c.surface

	style := TextStyle{
		Color:    p.Label,
		Size:     12,
		Align:    AlignCenter,
		Baseline: BaselineTop,
	}

	for i, label := range c.data.Labels {
		if label == "" {
			continue
		}

		s.Text(label, c.x(i), c.baseline()+progressLabelGap, style)
	}

	style.Align = AlignRight
	style.Baseline = BaselineMiddle

	for i, label := range c.YLabels() {
		y := progressPadding + float64(i)/progressGridLines*c.plotHeight()
		s.Text(label, progressPadding-progressLabelGap, y, style)
	}
}

func (c *ProgressChart) drawEmptyState(p Palette) {
	s := c.surface

	style := TextStyle{
		Color:    p.Muted,
		Size:     16,
		Align:    AlignCenter,
		Baseline: BaselineMiddle,
	}
	s.Text("No progress data yet", c.width/2, c.height/2-10, style)

	style.Size = 12
	s.Text("Complete some tasks to see your progress!", c.width/2, c.height/2+15, style)
}
