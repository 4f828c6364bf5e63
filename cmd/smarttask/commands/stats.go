package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MacroPower/smarttask/pkg/tasks"
)

const maxBar = 40

type statsPoint struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

type statsReport struct {
	Stats      tasks.Stats  `json:"stats"      yaml:"stats"`
	Weekly     []statsPoint `json:"weekly"     yaml:"weekly"`
	Priorities []statsPoint `json:"priorities" yaml:"priorities"`
}

func newStatsReport(s tasks.Summary) statsReport {
	points := func(id string) []statsPoint {
		d := s.Datasets[id]
		out := make([]statsPoint, 0, len(d.Values))
		for i, v := range d.Values {
			p := statsPoint{Value: v}
			if i < len(d.Labels) {
				p.Label = d.Labels[i]
			}

			out = append(out, p)
		}

		return out
	}

	return statsReport{
		Stats:      s.Stats,
		Weekly:     points(tasks.ProgressChartID),
		Priorities: points(tasks.PriorityChartID),
	}
}

// NewStatsCmd returns the stats command.
func NewStatsCmd(args *RootArgs) *cobra.Command {
	output := new(string)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the task list",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			s, err := openStore(args)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			ts, err := s.List()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTaskCommandFailed, err)
			}

			report := newStatsReport(tasks.Summarize(ts, s.Now()))

			if *output == "text" {
				printStats(cc.OutOrStdout(), report)

				return nil
			}

			return encode(cc.OutOrStdout(), *output, report)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(output, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func printStats(w io.Writer, r statsReport) {
	s := r.Stats

	rate := 0
	if s.Total > 0 {
		rate = s.Completed * 100 / s.Total
	}

	fmt.Fprintf(w, "Total      %d\n", s.Total)
	fmt.Fprintf(w, "Completed  %d (%d%%)\n", s.Completed, rate)
	fmt.Fprintf(w, "Pending    %d\n", s.Pending)
	fmt.Fprintf(w, "Overdue    %d\n", s.Overdue)

	section := func(title string, ps []statsPoint) {
		fmt.Fprintf(w, "\n%s\n", title)

		for _, p := range ps {
			fmt.Fprintf(w, "  %-7s %3.0f %s\n", p.Label, p.Value, strings.Repeat("█", min(int(p.Value), maxBar)))
		}
	}

	section("Completed per day", r.Weekly)
	section("Open by priority", r.Priorities)
}
