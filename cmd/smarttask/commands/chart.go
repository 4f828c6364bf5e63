package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/iancoleman/strcase"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/MacroPower/smarttask/pkg/canvas"
	"github.com/MacroPower/smarttask/pkg/charts"
	"github.com/MacroPower/smarttask/pkg/charttui"
	"github.com/MacroPower/smarttask/pkg/log"
	"github.com/MacroPower/smarttask/pkg/tasks"
	"github.com/MacroPower/smarttask/pkg/tracing"
)

const (
	chartDesc = `This command draws the task charts.
`
	chartExample = `  smarttask chart <command> [arguments]...
  # Render every chart as PNG into ./charts
  smarttask chart render --output charts

  # Render the productivity donut as a dark SVG
  smarttask chart render productivityChart --format svg --theme dark

  # Show the charts in the terminal
  smarttask chart dashboard
`
)

var (
	ErrChartCommandFailed = errors.New("chart command failed")
	ErrChartRenderFailed  = errors.New("chart render failed")
	ErrNotTerminal        = errors.New("not a terminal")
)

// NewChartCmd returns the chart command.
func NewChartCmd(arg *RootArgs) *cobra.Command {
	args := NewChartArgs(arg)

	cmd := &cobra.Command{
		Use:          "chart",
		Aliases:      []string{"charts"},
		Short:        "Task charts",
		Long:         chartDesc,
		Example:      chartExample,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewChartRenderCmd(args))
	cmd.AddCommand(NewChartDashboardCmd(args))

	return cmd
}

func NewChartRenderCmd(args *ChartArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "render [chart id]...",
		Short:     "Render charts to image files",
		ValidArgs: tasks.ChartIDs(),
		Args:      cobra.OnlyValidArgs,
		RunE: func(cc *cobra.Command, pArgs []string) error {
			opts, err := args.renderOptions(cc)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrArgument, err)
			}

			ids := pArgs
			if len(ids) == 0 {
				ids = tasks.ChartIDs()
			}

			s, err := openStore(args.RootArgs)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrChartCommandFailed, err)
			}

			ts, err := s.List()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrChartCommandFailed, err)
			}

			opts.summary = tasks.Summarize(ts, s.Now())

			files, err := renderCharts(cc.Context(), ids, opts)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrChartRenderFailed, err)
			}

			for _, f := range files {
				cc.Println(f)
			}

			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(args.output, "output", "o", ".", "Output directory")
	must(cmd.MarkFlagDirname("output"))
	cmd.Flags().StringVarP(args.format, "format", "f", "", "Image format, png or svg (default from config)")
	cmd.Flags().Float64Var(args.width, "width", 0, "Logical chart width (default from config)")
	cmd.Flags().Float64Var(args.height, "height", 0, "Logical chart height (default from config)")
	cmd.Flags().Float64Var(args.pixelRatio, "pixel_ratio", 0, "Device pixel ratio (default from config)")

	return cmd
}

func NewChartDashboardCmd(args *ChartArgs) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"tui"},
		Short:   "Show the charts in the terminal",
		Long: `Show the charts in the terminal.

Keys: t toggles the theme, r reloads the task list, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			out, ok := terminal(cc.OutOrStdout())
			if !ok {
				return fmt.Errorf("%w: %w: the dashboard needs an interactive terminal", ErrChartCommandFailed, ErrNotTerminal)
			}

			cfg := args.GetConfig()

			lvl, err := log.GetLevel(args.GetLogLevel())
			if err != nil {
				// Should not be possible due to root's PersistentPreRunE.
				return fmt.Errorf("%w: %w", ErrArgument, err)
			}

			s, err := openStore(args.RootArgs)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrChartCommandFailed, err)
			}

			opts := []charttui.Option{
				charttui.WithFPS(cfg.Dashboard.FPS),
				charttui.WithThemeAttribute(cfg.Theme),
			}
			if _, explicit := cfg.ThemeValue(); !explicit {
				opts = append(opts, charttui.WithPreference(charttui.NewTerminalPreference(out)))
			}

			d, err := charttui.NewDashboard(out, cc.InOrStdin(), lvl, s, opts...)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrChartCommandFailed, err)
			}

			err = d.Run(cc.Context())
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("%w: %w", ErrChartCommandFailed, err)
			}

			return nil
		},
		SilenceUsage: true,
	}
}

func terminal(w io.Writer) (*os.File, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return nil, false
	}

	return f, isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type renderOptions struct {
	preference charts.PreferenceSource
	summary    tasks.Summary
	theme      string
	dir        string
	format     canvas.Format
	dimensions charts.Dimensions
}

// renderCharts draws the charts named by ids, plays their animations to the
// end, and writes one file per chart. Files are written concurrently.
func renderCharts(ctx context.Context, ids []string, opts renderOptions) ([]string, error) {
	ids = uniqueIDs(ids)

	doc := canvas.NewDocument()
	for _, id := range ids {
		doc.Add(id, opts.dimensions, canvas.WithFormat(opts.format))
	}

	m := charts.NewManager(doc,
		charts.WithLogger(slog.Default()),
		charts.WithTracer(tracing.NewLoggingTracer(slog.Default())),
	)

	observer := charts.NewThemeObserver(m)
	if opts.preference != nil {
		observer.PreferenceChanged(opts.preference.PrefersDark())
	}
	observer.AttributeChanged(charts.ThemeAttribute, opts.theme)

	doc.SetBackground(charts.PaletteFor(m.Theme()).Background)

	kinds := tasks.ChartKinds()

	var merr error
	for _, id := range ids {
		_, err := m.CreateChart(kinds[id], id)
		if err != nil {
			merr = multierror.Append(merr, err)

			continue
		}

		err = m.UpdateChart(id, opts.summary.Datasets[id])
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	if merr != nil {
		return nil, merr
	}

	for m.Tick() {
	}

	err := os.MkdirAll(opts.dir, 0o750)
	if err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	files := make([]string, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		files[i] = filepath.Join(opts.dir, strcase.ToKebab(id)+opts.format.Extension())

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			cv, ok := doc.Get(id)
			if !ok {
				return fmt.Errorf("%w: %q", charts.ErrCanvasNotFound, id)
			}

			slog.Debug("writing chart", slog.String("id", id), slog.String("file", files[i]))

			return cv.Save(files[i])
		})
	}

	err = g.Wait()
	if err != nil {
		return nil, err
	}

	return files, nil
}

// ChartArgs holds the arguments for the chart commands.
type ChartArgs struct {
	output     *string
	format     *string
	width      *float64
	height     *float64
	pixelRatio *float64
	*RootArgs
}

// NewChartArgs creates a new [ChartArgs].
func NewChartArgs(args *RootArgs) *ChartArgs {
	return &ChartArgs{
		output:     new(string),
		format:     new(string),
		width:      new(float64),
		height:     new(float64),
		pixelRatio: new(float64),
		RootArgs:   args,
	}
}

func (a *ChartArgs) GetOutput() string {
	return *a.output
}

func (a *ChartArgs) GetFormat() string {
	return *a.format
}

func (a *ChartArgs) GetWidth() float64 {
	return *a.width
}

func (a *ChartArgs) GetHeight() float64 {
	return *a.height
}

func (a *ChartArgs) GetPixelRatio() float64 {
	return *a.pixelRatio
}

// renderOptions layers the render flags over the config.
func (a *ChartArgs) renderOptions(cc *cobra.Command) (renderOptions, error) {
	cfg := a.GetConfig()
	flags := cc.Flags()

	if flags.Changed("format") {
		cfg.Chart.Format = a.GetFormat()
	}

	if flags.Changed("width") {
		cfg.Chart.Width = a.GetWidth()
	}

	if flags.Changed("height") {
		cfg.Chart.Height = a.GetHeight()
	}

	if flags.Changed("pixel_ratio") {
		cfg.Chart.PixelRatio = a.GetPixelRatio()
	}

	err := cfg.Validate()
	if err != nil {
		return renderOptions{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	f, err := canvas.ParseFormat(cfg.Chart.Format)
	if err != nil {
		return renderOptions{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	opts := renderOptions{
		theme:      cfg.Theme,
		dir:        a.GetOutput(),
		format:     f,
		dimensions: cfg.Dimensions(),
	}

	if _, explicit := cfg.ThemeValue(); !explicit {
		opts.preference = terminalPreference(cc.OutOrStdout())
	}

	return opts, nil
}

// terminalPreference asks the terminal behind w for its background, or
// returns nil when w is not a terminal.
//
//nolint:ireturn // Nil when there is no terminal.
func terminalPreference(w io.Writer) charts.PreferenceSource {
	f, ok := terminal(w)
	if !ok {
		return nil
	}

	return charttui.NewTerminalPreference(f)
}

// uniqueIDs drops repeated chart ids, keeping the first occurrence.
func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}

	return out
}
