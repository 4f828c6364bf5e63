package charttui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-multierror"
	"github.com/muesli/termenv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MacroPower/smarttask/pkg/canvas"
	"github.com/MacroPower/smarttask/pkg/charts"
	"github.com/MacroPower/smarttask/pkg/tasks"
)

const (
	// DefaultFPS is the frame rate used while charts are animating.
	DefaultFPS = 60

	chartGap = 2
	// Logical canvas pixels per terminal column; rows are twice as tall.
	cellScale = 6
	// Lines used by everything except the chart cells.
	chromeLines = 8

	minCols = 8
	minRows = 4
)

var captions = map[string]string{
	tasks.ProductivityChartID: "Productivity",
	tasks.ProgressChartID:     "Completed this week",
	tasks.PriorityChartID:     "Open by priority",
}

// Source supplies the tasks shown on the dashboard.
type Source interface {
	List() ([]tasks.Task, error)
	Now() time.Time
}

// Option configures a [DashboardModel].
type Option func(*dashboardOptions)

type dashboardOptions struct {
	logger     *slog.Logger
	preference charts.PreferenceSource
	theme      string
	fps        int
	ratio      float64
	profile    termenv.Profile
}

// WithLogger sets the logger used by the chart manager.
func WithLogger(l *slog.Logger) Option {
	return func(o *dashboardOptions) {
		o.logger = l
	}
}

// WithFPS sets the animation frame rate.
func WithFPS(fps int) Option {
	return func(o *dashboardOptions) {
		o.fps = fps
	}
}

// WithPixelRatio sets the device pixel ratio of the chart canvases.
func WithPixelRatio(r float64) Option {
	return func(o *dashboardOptions) {
		o.ratio = r
	}
}

// WithColorProfile sets the color profile used for chart cells.
func WithColorProfile(p termenv.Profile) Option {
	return func(o *dashboardOptions) {
		o.profile = p
	}
}

// WithThemeAttribute sets the explicit theme: "light", "dark", or "auto" to
// follow the preference.
func WithThemeAttribute(v string) Option {
	return func(o *dashboardOptions) {
		o.theme = v
	}
}

// WithPreference sets the color-scheme preference consulted at startup.
func WithPreference(p charts.PreferenceSource) Option {
	return func(o *dashboardOptions) {
		o.preference = p
	}
}

// DashboardModel is the bubbletea model of the dashboard.
type DashboardModel struct {
	source   Source
	err      error
	manager  *charts.Manager
	observer *charts.ThemeObserver
	document *canvas.Document
	cells    map[string]string
	keys     keyMap
	help     help.Model
	summary  tasks.Summary
	theme    charts.Theme
	profile  termenv.Profile
	ratio    float64
	fps      int
	width    int
	height   int
	cols     int
	rows     int
	loaded   bool
	ticking  bool
}

// NewDashboardModel creates the canvases and charts for every chart id.
func NewDashboardModel(source Source, opts ...Option) (*DashboardModel, error) {
	o := &dashboardOptions{
		logger:  slog.Default(),
		fps:     DefaultFPS,
		ratio:   1,
		profile: termenv.ColorProfile(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.fps <= 0 {
		return nil, fmt.Errorf("invalid frame rate %d", o.fps)
	}

	m := &DashboardModel{
		source:   source,
		document: canvas.NewDocument(),
		cells:    map[string]string{},
		keys:     defaultKeys,
		help:     help.New(),
		profile:  o.profile,
		ratio:    o.ratio,
		fps:      o.fps,
		cols:     minCols,
		rows:     minRows,
	}

	m.manager = charts.NewManager(m.document, charts.WithLogger(o.logger))
	m.theme = m.manager.Theme()

	kinds := tasks.ChartKinds()
	for _, id := range tasks.ChartIDs() {
		m.document.Add(id, m.dimensions(), canvas.WithBackground(charts.PaletteFor(m.theme).Background))

		_, err := m.manager.CreateChart(kinds[id], id)
		if err != nil {
			return nil, fmt.Errorf("create dashboard: %w", err)
		}
	}

	m.observer = charts.NewThemeObserver(m.manager)
	if o.preference != nil {
		m.observer.PreferenceChanged(o.preference.PrefersDark())
	}
	if o.theme != "" {
		m.observer.AttributeChanged(charts.ThemeAttribute, o.theme)
	}

	m.syncTheme()

	return m, nil
}

// Manager returns the chart manager driven by the dashboard.
func (m *DashboardModel) Manager() *charts.Manager {
	return m.manager
}

// Summary returns the statistics of the last loaded task list.
func (m *DashboardModel) Summary() tasks.Summary {
	return m.summary
}

// Err returns the last error shown on the dashboard.
func (m *DashboardModel) Err() error {
	return m.err
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.load()
}

//nolint:ireturn // Third-party.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()

		err := m.manager.ResizeAllCharts()
		if err != nil {
			m.err = err
		}

		return m, m.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Theme):
			m.observer.AttributeChanged(charts.ThemeAttribute, m.manager.Theme().Toggle().String())

			return m, m.refresh()

		case key.Matches(msg, m.keys.Reload):
			return m, m.load()

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case teaMsgTasksLoaded:
		if msg.err != nil {
			m.err = msg.err

			return m, nil
		}

		m.setTasks(msg.tasks, msg.now)

		return m, m.refresh()

	case teaMsgFrame:
		m.manager.Tick()
		m.rasterize()

		if m.manager.Animating() {
			return m, m.frame()
		}

		m.ticking = false

	case teaMsgWriteLog:
		return m, writeLog(msg, m.width)
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	if !m.loaded && m.err == nil {
		return "Loading tasks…\n"
	}

	var sb strings.Builder

	sb.WriteString(defaultStyles.title.Render("SmartTask"))
	sb.WriteString(" ")
	sb.WriteString(defaultStyles.theme.Render("· " + m.manager.Theme().String()))
	sb.WriteString("\n")
	sb.WriteString(m.viewStats())
	sb.WriteString("\n\n")

	ids := tasks.ChartIDs()
	columns := make([]string, 0, len(ids))

	for _, id := range ids {
		col := lipgloss.JoinVertical(lipgloss.Left,
			defaultStyles.caption.Width(m.cols).MaxWidth(m.cols).Render(captions[id]),
			m.cells[id],
		)
		columns = append(columns, defaultStyles.chart.Render(col))
	}

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	sb.WriteString("\n")
	sb.WriteString(m.viewLegend())
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(getErrorMessage(m.err, m.width))
		sb.WriteString("\n")
	}

	sb.WriteString(defaultStyles.help.Render(m.help.View(m.keys)))
	sb.WriteString("\n")

	return sb.String()
}

func (m *DashboardModel) viewStats() string {
	s := m.summary.Stats
	stat := func(name string, v int, style lipgloss.Style) string {
		return defaultStyles.statName.Render(name+" ") + style.Render(strconv.Itoa(v))
	}

	overdue := defaultStyles.statValue
	if s.Overdue > 0 {
		overdue = defaultStyles.overdue
	}

	return strings.Join([]string{
		stat("Total", s.Total, defaultStyles.statValue),
		stat("Completed", s.Completed, defaultStyles.statValue),
		stat("Pending", s.Pending, defaultStyles.statValue),
		stat("Overdue", s.Overdue, overdue),
	}, "  ")
}

func (m *DashboardModel) viewLegend() string {
	c := m.summary.Counts
	colors := charts.DefaultProductivityColors
	entry := func(i int, name string, v int) string {
		return fmt.Sprintf("%s %s %d", swatch(colors[i]), name, v)
	}

	return strings.Join([]string{
		entry(0, "completed", c.Completed),
		entry(1, "pending", c.Pending),
		entry(2, "overdue", c.Overdue),
	}, "  ")
}

func (m *DashboardModel) load() tea.Cmd {
	source := m.source

	return func() tea.Msg {
		ts, err := source.List()

		return teaMsgTasksLoaded{tasks: ts, now: source.Now(), err: err}
	}
}

func (m *DashboardModel) setTasks(ts []tasks.Task, now time.Time) {
	m.summary = tasks.Summarize(ts, now)
	m.loaded = true

	var merr error
	for _, id := range tasks.ChartIDs() {
		err := m.manager.UpdateChart(id, m.summary.Datasets[id])
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	m.err = merr
}

// layout sizes the chart cells to the window and resizes the canvases.
func (m *DashboardModel) layout() {
	n := len(tasks.ChartIDs())
	m.cols = max(minCols, m.width/n-chartGap)
	m.rows = max(minRows, m.height-chromeLines)

	m.document.Resize(m.dimensions())
}

func (m *DashboardModel) dimensions() charts.Dimensions {
	return charts.Dimensions{
		Width:      float64(m.cols * cellScale),
		Height:     float64(m.rows * 2 * cellScale),
		PixelRatio: m.ratio,
	}
}

// refresh repaints after a data, size or theme change and starts the frame
// loop when a chart has an animation to play.
func (m *DashboardModel) refresh() tea.Cmd {
	m.syncTheme()
	m.rasterize()

	if m.ticking || !m.manager.Animating() {
		return nil
	}

	m.ticking = true

	return m.frame()
}

// syncTheme repaints the canvas backgrounds after the manager's theme
// changed.
func (m *DashboardModel) syncTheme() {
	t := m.manager.Theme()
	if t == m.theme {
		return
	}

	m.theme = t
	m.document.SetBackground(charts.PaletteFor(t).Background)

	err := m.manager.ResizeAllCharts()
	if err != nil {
		m.err = err
	}
}

func (m *DashboardModel) frame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return teaMsgFrame(t)
	})
}

func (m *DashboardModel) rasterize() {
	var merr error

	m.manager.Do(func(cs []*charts.Chart) {
		for _, c := range cs {
			cv, ok := c.Surface().(*canvas.Canvas)
			if !ok {
				continue
			}

			img, err := cv.Image()
			if err != nil {
				merr = multierror.Append(merr, fmt.Errorf("render %s: %w", c.ID(), err))

				continue
			}

			m.cells[c.ID()] = renderHalfBlocks(img, m.cols, m.rows, m.profile)
		}
	})

	if merr != nil {
		m.err = merr
	}
}
