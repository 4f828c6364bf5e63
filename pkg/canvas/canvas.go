package canvas

import (
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/MacroPower/smarttask/pkg/charts"
)

// textDPI makes one font point one logical pixel.
const textDPI = 72

var defaultFont = sync.OnceValues(chart.GetDefaultFont)

var _ charts.Surface = (*Canvas)(nil)

// Canvas is a [charts.Surface] backed by a go-chart renderer. Its backing
// store is the logical size scaled by the pixel ratio.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	renderer   chart.Renderer
	font       *truetype.Font
	err        error
	bounds     charts.Dimensions
	configured charts.Dimensions
	format     Format
	background drawing.Color
	path       path
}

// Option configures a [Canvas].
type Option func(*Canvas)

// WithBackground fills the canvas with c on every clear. The zero color
// leaves it transparent.
func WithBackground(c drawing.Color) Option {
	return func(cv *Canvas) {
		cv.background = c
	}
}

// WithFormat selects the output encoding.
func WithFormat(f Format) Option {
	return func(cv *Canvas) {
		cv.format = f
	}
}

// New creates a canvas whose host reports the given bounds. The backing
// store is allocated by [Canvas.Configure].
func New(bounds charts.Dimensions, opts ...Option) *Canvas {
	c := &Canvas{
		bounds: bounds,
		format: FormatPNG,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetBounds changes the host box reported by [Canvas.Bounds].
func (c *Canvas) SetBounds(d charts.Dimensions) {
	c.bounds = d
}

// SetBackground changes the clear color.
func (c *Canvas) SetBackground(bg drawing.Color) {
	c.background = bg
}

// Format is the output encoding.
func (c *Canvas) Format() Format {
	return c.format
}

func (c *Canvas) Bounds() charts.Dimensions {
	return c.bounds
}

func (c *Canvas) Configure(d charts.Dimensions) error {
	err := d.Validate()
	if err != nil {
		return err
	}

	font, err := defaultFont()
	if err != nil {
		return fmt.Errorf("%w: load font: %w", ErrRender, err)
	}

	c.font = font
	c.configured = d
	c.Clear()

	return c.err
}

// Configured is the size of the current backing store.
func (c *Canvas) Configured() charts.Dimensions {
	return c.configured
}

// Clear discards every drawn pixel by replacing the renderer.
func (c *Canvas) Clear() {
	c.path.reset()

	if c.configured.Validate() != nil {
		return
	}

	r, err := c.format.provider()(c.configured.PhysicalWidth(), c.configured.PhysicalHeight())
	if err != nil {
		c.renderer = nil
		c.err = fmt.Errorf("%w: %w", ErrRender, err)

		return
	}

	r.SetDPI(textDPI)
	r.SetFont(c.font)

	c.renderer = r
	c.err = nil

	if c.background.A > 0 {
		c.FillRect(0, 0, c.configured.Width, c.configured.Height, c.background)
	}
}

func (c *Canvas) BeginPath() {
	c.path.reset()
}

func (c *Canvas) MoveTo(x, y float64) {
	c.path.moveTo(x, y)
}

func (c *Canvas) LineTo(x, y float64) {
	c.path.lineTo(x, y)
}

func (c *Canvas) Arc(cx, cy, radius, start, end float64, counterClockwise bool) {
	c.path.arc(cx, cy, radius, start, end, counterClockwise)
}

func (c *Canvas) ClosePath() {
	c.path.close()
}

func (c *Canvas) Fill(col drawing.Color) {
	if c.renderer == nil || len(c.path.segs) == 0 {
		return
	}

	c.renderer.ResetStyle()
	c.renderer.SetFillColor(col)
	c.replay()
	c.renderer.Fill()
}

func (c *Canvas) Stroke(col drawing.Color, width float64, dash []float64) {
	if c.renderer == nil || len(c.path.segs) == 0 {
		return
	}

	ratio := c.configured.PixelRatio

	scaled := make([]float64, len(dash))
	for i, d := range dash {
		scaled[i] = d * ratio
	}

	c.renderer.ResetStyle()
	c.renderer.SetStrokeColor(col)
	c.renderer.SetStrokeWidth(width * ratio)
	c.renderer.SetStrokeDashArray(scaled)
	c.replay()
	c.renderer.Stroke()
}

func (c *Canvas) FillRect(x, y, w, h float64, col drawing.Color) {
	if c.renderer == nil || !(w > 0) || !(h > 0) {
		return
	}

	saved := c.path
	c.path = path{}

	c.path.moveTo(x, y)
	c.path.lineTo(x+w, y)
	c.path.lineTo(x+w, y+h)
	c.path.lineTo(x, y+h)
	c.path.close()
	c.Fill(col)

	c.path = saved
}

func (c *Canvas) Text(s string, x, y float64, style charts.TextStyle) {
	if c.renderer == nil || s == "" {
		return
	}

	r := c.renderer
	ratio := c.configured.PixelRatio

	r.ResetStyle()
	r.SetFont(c.font)
	r.SetFontColor(style.Color)
	r.SetFontSize(style.Size * ratio)

	box := r.MeasureText(s)
	px, py := x*ratio, y*ratio

	switch style.Align {
	case charts.AlignCenter:
		px -= float64(box.Width()) / 2
	case charts.AlignRight:
		px -= float64(box.Width())
	case charts.AlignLeft:
	}

	switch style.Baseline {
	case charts.BaselineTop:
		py += float64(box.Height())
	case charts.BaselineMiddle:
		py += float64(box.Height()) / 2
	case charts.BaselineAlphabetic:
	}

	r.Text(s, round(px), round(py))
}

func (c *Canvas) replay() {
	ratio := c.configured.PixelRatio

	for _, s := range c.path.segs {
		switch s.kind {
		case segMove:
			c.renderer.MoveTo(round(s.x*ratio), round(s.y*ratio))
		case segLine:
			c.renderer.LineTo(round(s.x*ratio), round(s.y*ratio))
		case segClose:
			c.renderer.Close()
		}
	}
}

// Encode writes the current frame in the canvas format.
func (c *Canvas) Encode(w io.Writer) error {
	if c.err != nil {
		return c.err
	}

	if c.renderer == nil {
		return fmt.Errorf("%w: canvas was never configured", ErrRender)
	}

	err := c.renderer.Save(w)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	return nil
}

// Image decodes the current frame of a PNG canvas.
func (c *Canvas) Image() (image.Image, error) {
	if c.format != FormatPNG {
		return nil, ErrNotRaster
	}

	iw := &chart.ImageWriter{}

	err := c.Encode(iw)
	if err != nil {
		return nil, err
	}

	img, err := iw.Image()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	return img, nil
}

// Save writes the current frame to a file.
func (c *Canvas) Save(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	err = c.Encode(f)
	if err != nil {
		_ = f.Close()

		return err
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}

	return nil
}

func round(v float64) int {
	return int(math.Round(v))
}
