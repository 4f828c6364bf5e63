package charttui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MacroPower/smarttask/pkg/log"
)

// Dashboard runs a [DashboardModel] as a full-screen program. It is also an
// [io.Writer] that prints log records above the dashboard.
type Dashboard struct {
	model *DashboardModel
	p     atomic.Pointer[tea.Program]
	w     io.Writer
	in    io.Reader
}

// NewDashboard creates a dashboard that draws to w and reads keys from in.
// Log records at lvl and above are routed through the program.
func NewDashboard(w io.Writer, in io.Reader, lvl slog.Level, source Source, opts ...Option) (*Dashboard, error) {
	d := &Dashboard{w: w, in: in}

	logger := slog.New(log.CreateHandler(d, lvl, log.FormatText))
	opts = append([]Option{WithLogger(logger)}, opts...)

	m, err := NewDashboardModel(source, opts...)
	if err != nil {
		return nil, err
	}

	d.model = m

	return d, nil
}

// Model returns the dashboard's model.
func (d *Dashboard) Model() *DashboardModel {
	return d.model
}

func (d *Dashboard) Write(p []byte) (int, error) {
	if prog := d.p.Load(); prog != nil {
		prog.Send(teaMsgWriteLog(string(p)))
	}

	return len(p), nil
}

// Run blocks until the user quits or ctx is done.
func (d *Dashboard) Run(ctx context.Context) error {
	prog := tea.NewProgram(d.model,
		tea.WithContext(ctx),
		tea.WithOutput(d.w),
		tea.WithInput(d.in),
		tea.WithAltScreen(),
	)
	d.p.Store(prog)
	defer d.p.Store(nil)

	_, err := prog.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}

		return fmt.Errorf("run dashboard: %w", err)
	}

	return nil
}
