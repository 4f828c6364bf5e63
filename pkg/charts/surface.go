package charts

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Dimensions describes a drawing surface: the logical (CSS) box used for
// layout and the device pixel ratio used to size the backing store.
type Dimensions struct {
	Width      float64
	Height     float64
	PixelRatio float64
}

// Validate reports whether the dimensions can back a surface.
func (d Dimensions) Validate() error {
	if !(d.Width > 0) || !(d.Height > 0) || !(d.PixelRatio > 0) ||
		math.IsInf(d.Width, 0) || math.IsInf(d.Height, 0) || math.IsInf(d.PixelRatio, 0) {
		return fmt.Errorf("%w: %gx%g@%g", ErrInvalidDimensions, d.Width, d.Height, d.PixelRatio)
	}

	return nil
}

// PhysicalWidth is the backing store width in device pixels.
func (d Dimensions) PhysicalWidth() int {
	return int(math.Round(d.Width * d.PixelRatio))
}

// PhysicalHeight is the backing store height in device pixels.
func (d Dimensions) PhysicalHeight() int {
	return int(math.Round(d.Height * d.PixelRatio))
}

// TextAlign is the horizontal anchor of drawn text.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// TextBaseline is the vertical anchor of drawn text.
type TextBaseline int

const (
	BaselineAlphabetic TextBaseline = iota
	BaselineTop
	BaselineMiddle
)

// TextStyle configures a single [Surface.Text] call.
type TextStyle struct {
	Color    drawing.Color
	Size     float64
	Bold     bool
	Align    TextAlign
	Baseline TextBaseline
}

// Surface is a 2D drawing context bound to a fixed-size canvas. Coordinates
// are logical units; implementations scale them by the pixel ratio.
//
// Paths follow canvas semantics: [Surface.BeginPath] discards the current
// path, [Surface.Arc] connects to the previous point when one exists, and
// [Surface.Fill] and [Surface.Stroke] leave the path intact so it can be both
// filled and stroked.
type Surface interface {
	// Bounds reports the current logical box and pixel ratio of the host.
	Bounds() Dimensions
	// Configure sizes the backing store for d and clears it.
	Configure(d Dimensions) error
	Clear()
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a circular arc from start to end (radians, clockwise in screen
	// space unless counterClockwise is set).
	Arc(cx, cy, radius, start, end float64, counterClockwise bool)
	ClosePath()
	Fill(c drawing.Color)
	Stroke(c drawing.Color, width float64, dash []float64)
	FillRect(x, y, w, h float64, c drawing.Color)
	Text(s string, x, y float64, style TextStyle)
}

// CanvasProvider looks up the surface registered for a canvas id.
type CanvasProvider interface {
	Canvas(id string) (Surface, bool)
}

// CanvasProviderFunc adapts a function to [CanvasProvider].
type CanvasProviderFunc func(id string) (Surface, bool)

//nolint:ireturn // Surfaces have multiple concrete types.
func (f CanvasProviderFunc) Canvas(id string) (Surface, bool) {
	return f(id)
}
