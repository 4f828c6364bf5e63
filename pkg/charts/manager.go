package charts

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/MacroPower/smarttask/pkg/tracing"
)

// Manager is the registry of charts keyed by canvas id. It holds the active
// theme and drives entrance animations through [Manager.Tick].
//
// All methods are safe for concurrent use.
type Manager struct {
	canvases CanvasProvider
	logger   *slog.Logger
	tracer   tracing.Tracer
	charts   map[string]*Chart
	theme    Theme
	order    []string
	mu       sync.Mutex
}

// ManagerOption configures a [Manager].
type ManagerOption func(*Manager)

// WithLogger sets the logger used for creation failures and no-op updates.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithTracer wraps every draw in a span.
func WithTracer(t tracing.Tracer) ManagerOption {
	return func(m *Manager) {
		m.tracer = t
	}
}

// WithTheme sets the initial theme.
func WithTheme(t Theme) ManagerOption {
	return func(m *Manager) {
		m.theme = t
	}
}

// NewManager creates a [Manager] that resolves canvas ids through canvases.
func NewManager(canvases CanvasProvider, opts ...ManagerOption) *Manager {
	m := &Manager{
		canvases: canvases,
		logger:   slog.Default(),
		tracer:   tracing.NopTracer{},
		charts:   map[string]*Chart{},
		theme:    ThemeLight,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// CreateChart binds a new chart of the given kind to the canvas registered
// under id. An existing chart with the same id is replaced and its
// animation cancelled.
func (m *Manager) CreateChart(kind Kind, id string, opts ...ChartOption) (*Chart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kind, err := ParseKind(string(kind))
	if err != nil {
		m.logger.Error("create chart", slog.String("id", id), slog.Any("err", err))

		return nil, err
	}

	s, ok := m.canvases.Canvas(id)
	if !ok || s == nil {
		err = fmt.Errorf("%w: %q", ErrCanvasNotFound, id)
		m.logger.Error("create chart", slog.String("id", id), slog.Any("err", err))

		return nil, err
	}

	c, err := newChart(kind, id, s, opts...)
	if err != nil {
		m.logger.Error("create chart", slog.String("id", id), slog.Any("err", err))

		return nil, err
	}

	if old, ok := m.charts[id]; ok {
		if a := old.Animation(); a != nil {
			a.Cancel()
		}

		m.logger.Debug("replace chart", slog.String("id", id), slog.String("kind", string(old.kind)))
	} else {
		m.order = append(m.order, id)
	}

	m.charts[id] = c
	m.logger.Debug("create chart", slog.String("id", id), slog.String("kind", string(kind)))

	return c, nil
}

// Chart returns the chart registered under id.
func (m *Manager) Chart(id string) (*Chart, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.charts[id]

	return c, ok
}

// IDs lists the registered ids in registration order.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.order...)
}

// UpdateChart forwards a dataset to the chart registered under id. Unknown
// ids are ignored.
func (m *Manager) UpdateChart(id string, d Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.charts[id]
	if !ok {
		m.logger.Debug("update ignored, no chart", slog.String("id", id))

		return nil
	}

	span := m.startSpan("chart.update", c)
	defer span.Finish()

	err := c.update(d, PaletteFor(m.theme))
	if err != nil {
		return fmt.Errorf("update chart %q: %w", id, err)
	}

	return nil
}

// ResizeChart re-reads the surface bounds of the chart registered under id
// and redraws it at its current animation progress. Unknown ids are ignored.
func (m *Manager) ResizeChart(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.charts[id]
	if !ok {
		m.logger.Debug("resize ignored, no chart", slog.String("id", id))

		return nil
	}

	return m.resize(c)
}

// ResizeAllCharts resizes every chart in registration order. Failures do not
// stop the remaining charts and are returned together.
func (m *Manager) ResizeAllCharts() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var merr *multierror.Error

	for _, id := range m.order {
		err := m.resize(m.charts[id])
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	return merr.ErrorOrNil()
}

func (m *Manager) resize(c *Chart) error {
	err := c.setup()
	if err != nil {
		return fmt.Errorf("resize chart %q: %w", c.id, err)
	}

	m.draw(c)

	return nil
}

// RemoveChart cancels the animation of the chart registered under id and
// deregisters it.
func (m *Manager) RemoveChart(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.charts[id]
	if !ok {
		return
	}

	if a := c.Animation(); a != nil {
		a.Cancel()
	}

	delete(m.charts, id)

	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)

			break
		}
	}

	m.logger.Debug("remove chart", slog.String("id", id))
}

// Tick advances every running animation by one frame and redraws the
// charts that moved. It reports whether any chart is still animating.
func (m *Manager) Tick() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	animating := false

	for _, id := range m.order {
		c := m.charts[id]

		a := c.Animation()
		if a == nil || !a.Advance() {
			continue
		}

		m.draw(c)

		if a.Running() {
			animating = true
		}
	}

	return animating
}

// Animating reports whether any chart has frames left to draw.
func (m *Manager) Animating() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.charts {
		if c.Animating() {
			return true
		}
	}

	return false
}

// SetTheme changes the palette used by subsequent draws. It does not redraw;
// call [Manager.ResizeAllCharts] to repaint.
func (m *Manager) SetTheme(t Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.theme = t
}

// Theme returns the active theme.
func (m *Manager) Theme() Theme {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.theme
}

// Redraw repaints the chart registered under id without touching its layout.
func (m *Manager) Redraw(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.charts[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrChartNotFound, id)
	}

	m.draw(c)

	return nil
}

// Do runs fn with the registry locked, for callers that read several
// surfaces as one consistent frame.
func (m *Manager) Do(fn func(charts []*Chart)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cs := make([]*Chart, 0, len(m.order))
	for _, id := range m.order {
		cs = append(cs, m.charts[id])
	}

	fn(cs)
}

func (m *Manager) draw(c *Chart) {
	span := m.startSpan("chart.draw", c)
	defer span.Finish()

	c.draw(PaletteFor(m.theme))
}

//nolint:ireturn
func (m *Manager) startSpan(name string, c *Chart) tracing.Span {
	span := m.tracer.StartSpan(name)
	span.SetBaggageItem("id", c.id)
	span.SetBaggageItem("kind", string(c.kind))
	span.SetBaggageItem("progress", c.Progress())

	return span
}

// IsNotFound reports whether err means a canvas or chart id was not
// registered.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCanvasNotFound) || errors.Is(err, ErrChartNotFound)
}
