package charts

import (
	"strconv"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	barPadding      = 40
	barWidthRatio   = 0.8
	barLabelOffset  = 5
	barBottomMargin = 10
)

// DefaultBarColors is the palette bars cycle through by index.
var DefaultBarColors = []drawing.Color{
	hexColor("3b82f6"),
	hexColor("10b981"),
	hexColor("f59e0b"),
	hexColor("ef4444"),
}

// Bar is the geometry of one drawn bar.
type Bar struct {
	Label      string
	Value      float64
	X          float64
	Y          float64
	Width      float64
	Height     float64
	ColorIndex int
}

// BarChart is a static bar chart; it draws as soon as data arrives.
type BarChart struct {
	surface Surface
	colors  []drawing.Color
	data    Series
	width   float64
	height  float64
}

// NewBarChart binds a bar chart to s and lays it out.
func NewBarChart(s Surface) (*BarChart, error) {
	c := &BarChart{
		surface: s,
		colors:  DefaultBarColors,
	}

	err := c.Setup()
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Setup re-derives the layout from the surface bounds.
func (c *BarChart) Setup() error {
	d := c.surface.Bounds()

	err := c.surface.Configure(d)
	if err != nil {
		return err
	}

	c.width = d.Width
	c.height = d.Height

	return nil
}

// UpdateData replaces the series and draws it.
func (c *BarChart) UpdateData(data Series, p Palette) {
	c.data = data
	c.Draw(p)
}

// Data returns the current series.
func (c *BarChart) Data() Series {
	return c.data
}

// Bars lays out the current series left to right. Each slot is split 80/20
// between bar and spacing; heights are relative to the series maximum, and
// an all-zero series yields zero-height bars.
func (c *BarChart) Bars() []Bar {
	n := c.data.Len()
	if n == 0 {
		return nil
	}

	plotW := max(0, c.width-2*barPadding)
	plotH := max(0, c.height-2*barPadding)
	slot := plotW / float64(n)
	barW := slot * barWidthRatio
	maxValue := c.data.Max()

	bars := make([]Bar, n)
	for i, v := range c.data.Values {
		h := 0.0
		if maxValue > 0 {
			h = v / maxValue * plotH
		}

		bars[i] = Bar{
			Label:      c.data.Labels[i],
			Value:      v,
			X:          barPadding + float64(i)*slot,
			Y:          c.height - barPadding - h,
			Width:      barW,
			Height:     h,
			ColorIndex: i % len(c.colors),
		}
	}

	return bars
}

// Draw renders the bars with their value and category labels.
func (c *BarChart) Draw(p Palette) {
	s := c.surface
	s.Clear()

	if c.data.Len() == 0 {
		s.Text("No data to display", c.width/2, c.height/2, TextStyle{
			Color:    p.Muted,
			Size:     16,
			Align:    AlignCenter,
			Baseline: BaselineMiddle,
		})

		return
	}

	style := TextStyle{
		Color: p.Label,
		Size:  12,
		Align: AlignCenter,
	}

	for _, b := range c.Bars() {
		s.FillRect(b.X, b.Y, b.Width, b.Height, c.colors[b.ColorIndex])

		cx := b.X + b.Width/2
		s.Text(strconv.FormatFloat(b.Value, 'f', -1, 64), cx, b.Y-barLabelOffset, style)
		s.Text(b.Label, cx, c.height-barBottomMargin, style)
	}
}
