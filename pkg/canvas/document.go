package canvas

import (
	"sync"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/MacroPower/smarttask/pkg/charts"
)

var _ charts.CanvasProvider = (*Document)(nil)

// Document is a set of canvases addressed by id, standing in for the page
// that hosts the charts.
type Document struct {
	canvases map[string]*Canvas
	order    []string
	mu       sync.RWMutex
}

// NewDocument creates an empty [Document].
func NewDocument() *Document {
	return &Document{canvases: map[string]*Canvas{}}
}

// Add registers a canvas under id, replacing any previous one.
func (d *Document) Add(id string, bounds charts.Dimensions, opts ...Option) *Canvas {
	d.mu.Lock()
	defer d.mu.Unlock()

	c := New(bounds, opts...)
	if _, ok := d.canvases[id]; !ok {
		d.order = append(d.order, id)
	}

	d.canvases[id] = c

	return c
}

// Canvas implements [charts.CanvasProvider].
//
//nolint:ireturn // Satisfies charts.CanvasProvider.
func (d *Document) Canvas(id string) (charts.Surface, bool) {
	c, ok := d.Get(id)
	if !ok {
		return nil, false
	}

	return c, true
}

// Get returns the concrete canvas registered under id.
func (d *Document) Get(id string) (*Canvas, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.canvases[id]

	return c, ok
}

// IDs lists canvas ids in the order they were added.
func (d *Document) IDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return append([]string(nil), d.order...)
}

// Resize changes the host bounds of every canvas, as a window resize would.
// Charts pick the new size up on their next resize.
func (d *Document) Resize(bounds charts.Dimensions) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, c := range d.canvases {
		c.SetBounds(bounds)
	}
}

// SetBackground changes the clear color of every canvas.
func (d *Document) SetBackground(bg drawing.Color) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, c := range d.canvases {
		c.SetBackground(bg)
	}
}
