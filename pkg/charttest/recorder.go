// Package charttest provides a recording [charts.Surface] for tests.
package charttest

import (
	"sync"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/MacroPower/smarttask/pkg/charts"
)

// Op names recorded by [Recorder].
const (
	OpConfigure = "configure"
	OpClear     = "clear"
	OpBeginPath = "beginPath"
	OpMoveTo    = "moveTo"
	OpLineTo    = "lineTo"
	OpArc       = "arc"
	OpClosePath = "closePath"
	OpFill      = "fill"
	OpStroke    = "stroke"
	OpFillRect  = "fillRect"
	OpText      = "text"
)

// Op is a single recorded surface call. Only the fields relevant to Name
// are set.
type Op struct {
	Style     charts.TextStyle
	Name      string
	Text      string
	Dash      []float64
	Args      []float64
	Color     drawing.Color
	Width     float64
	CounterCW bool
}

var _ charts.Surface = (*Recorder)(nil)

// Recorder is a [charts.Surface] that records every call. [Recorder.Clear]
// is recorded and also starts a new frame, see [Recorder.Frame].
type Recorder struct {
	configured charts.Dimensions
	bounds     charts.Dimensions
	ops        []Op
	frameStart int
	frames     int
	mu         sync.Mutex
}

// NewRecorder creates a recorder reporting the given logical size at pixel
// ratio 1.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{bounds: charts.Dimensions{Width: width, Height: height, PixelRatio: 1}}
}

// SetBounds changes what [Recorder.Bounds] reports, as a host resize would.
func (r *Recorder) SetBounds(d charts.Dimensions) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bounds = d
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ops = append(r.ops, op)
}

func (r *Recorder) Bounds() charts.Dimensions {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.bounds
}

func (r *Recorder) Configure(d charts.Dimensions) error {
	err := d.Validate()
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.configured = d
	r.mu.Unlock()

	r.record(Op{Name: OpConfigure, Args: []float64{d.Width, d.Height, d.PixelRatio}})

	return nil
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	r.frameStart = len(r.ops)
	r.frames++
	r.mu.Unlock()

	r.record(Op{Name: OpClear})
}

func (r *Recorder) BeginPath() {
	r.record(Op{Name: OpBeginPath})
}

func (r *Recorder) MoveTo(x, y float64) {
	r.record(Op{Name: OpMoveTo, Args: []float64{x, y}})
}

func (r *Recorder) LineTo(x, y float64) {
	r.record(Op{Name: OpLineTo, Args: []float64{x, y}})
}

func (r *Recorder) Arc(cx, cy, radius, start, end float64, counterClockwise bool) {
	r.record(Op{Name: OpArc, Args: []float64{cx, cy, radius, start, end}, CounterCW: counterClockwise})
}

func (r *Recorder) ClosePath() {
	r.record(Op{Name: OpClosePath})
}

func (r *Recorder) Fill(c drawing.Color) {
	r.record(Op{Name: OpFill, Color: c})
}

func (r *Recorder) Stroke(c drawing.Color, width float64, dash []float64) {
	r.record(Op{Name: OpStroke, Color: c, Width: width, Dash: append([]float64(nil), dash...)})
}

func (r *Recorder) FillRect(x, y, w, h float64, c drawing.Color) {
	r.record(Op{Name: OpFillRect, Args: []float64{x, y, w, h}, Color: c})
}

func (r *Recorder) Text(s string, x, y float64, style charts.TextStyle) {
	r.record(Op{Name: OpText, Text: s, Args: []float64{x, y}, Style: style})
}

// Ops returns every recorded call.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Op(nil), r.ops...)
}

// Frame returns the calls since the most recent [Recorder.Clear], including
// the clear itself.
func (r *Recorder) Frame() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Op(nil), r.ops[r.frameStart:]...)
}

// Frames is the number of times the surface was cleared.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.frames
}

// Configured is the last dimensions passed to [Recorder.Configure].
func (r *Recorder) Configured() charts.Dimensions {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.configured
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ops = nil
	r.frameStart = 0
	r.frames = 0
}

// Count returns how many ops have the given name.
func Count(ops []Op, name string) int {
	n := 0
	for _, op := range ops {
		if op.Name == name {
			n++
		}
	}

	return n
}

// Filter returns the ops with the given name.
func Filter(ops []Op, name string) []Op {
	var out []Op
	for _, op := range ops {
		if op.Name == name {
			out = append(out, op)
		}
	}

	return out
}

// Texts returns the strings of every text op, in order.
func Texts(ops []Op) []string {
	var out []string
	for _, op := range Filter(ops, OpText) {
		out = append(out, op.Text)
	}

	return out
}

// Canvases is a [charts.CanvasProvider] over a fixed set of recorders.
type Canvases map[string]*Recorder

//nolint:ireturn // Satisfies charts.CanvasProvider.
func (c Canvases) Canvas(id string) (charts.Surface, bool) {
	r, ok := c[id]
	if !ok {
		return nil, false
	}

	return r, true
}
