package tasks

import (
	"time"

	"github.com/MacroPower/smarttask/pkg/charts"
)

// WeekDays is the length of the completion history series.
const WeekDays = 7

// Stats are the headline numbers of a task list.
type Stats struct {
	Total     int `json:"total"     yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
	// Pending counts every task that is not completed, overdue included.
	Pending int `json:"pending" yaml:"pending"`
	Overdue int `json:"overdue" yaml:"overdue"`
}

// ComputeStats counts ts at time now.
func ComputeStats(ts []Task, now time.Time) Stats {
	s := Stats{Total: len(ts)}

	for _, t := range ts {
		switch {
		case t.Completed:
			s.Completed++
		case t.IsOverdue(now):
			s.Overdue++
		}
	}

	s.Pending = s.Total - s.Completed

	return s
}

// ChartCounts splits ts into the three donut categories. Unlike
// [Stats.Pending], pending here excludes overdue tasks so the categories
// partition the list.
func ChartCounts(ts []Task, now time.Time) charts.Counts {
	c := charts.Counts{}

	for _, t := range ts {
		switch {
		case t.Completed:
			c.Completed++
		case t.IsOverdue(now):
			c.Overdue++
		default:
			c.Pending++
		}
	}

	return c
}

// WeeklyCompletions counts completions on each of the last seven days,
// oldest first, labelled with short weekday names.
func WeeklyCompletions(ts []Task, now time.Time) ([]float64, []string) {
	today := StartOfDay(now)
	first := today.AddDate(0, 0, -(WeekDays - 1))

	values := make([]float64, WeekDays)
	labels := make([]string, WeekDays)

	for i := range WeekDays {
		labels[i] = first.AddDate(0, 0, i).Weekday().String()[:3]
	}

	for _, t := range ts {
		if !t.Completed || t.CompletedAt == nil {
			continue
		}

		day := StartOfDay(t.CompletedAt.In(now.Location()))
		if day.Before(first) || day.After(today) {
			continue
		}

		for i := range WeekDays {
			if first.AddDate(0, 0, i).Equal(day) {
				values[i]++

				break
			}
		}
	}

	return values, labels
}

// PriorityBreakdown counts open tasks per priority, lowest priority first.
func PriorityBreakdown(ts []Task) ([]float64, []string) {
	ps := Priorities()
	values := make([]float64, len(ps))
	labels := make([]string, len(ps))

	for i, p := range ps {
		labels[i] = p.Label()
	}

	for _, t := range ts {
		if t.Completed {
			continue
		}

		for i, p := range ps {
			if t.Priority == p {
				values[i]++
			}
		}
	}

	return values, labels
}

// Chart ids used by the dashboard and the render command.
const (
	ProductivityChartID = "productivityChart"
	ProgressChartID     = "progressChart"
	PriorityChartID     = "priorityChart"
)

// Summary bundles everything derived from a task list.
type Summary struct {
	Datasets map[string]charts.Dataset
	Stats    Stats
	Counts   charts.Counts
}

// Summarize computes stats and the dataset for every chart id.
func Summarize(ts []Task, now time.Time) Summary {
	counts := ChartCounts(ts, now)
	weekly, days := WeeklyCompletions(ts, now)
	byPriority, priorities := PriorityBreakdown(ts)

	return Summary{
		Stats:  ComputeStats(ts, now),
		Counts: counts,
		Datasets: map[string]charts.Dataset{
			ProductivityChartID: charts.CountsDataset(counts),
			ProgressChartID:     charts.SeriesDataset(weekly, days),
			PriorityChartID:     charts.SeriesDataset(byPriority, priorities),
		},
	}
}

// ChartKinds maps each chart id to the kind of chart it holds.
func ChartKinds() map[string]charts.Kind {
	return map[string]charts.Kind{
		ProductivityChartID: charts.KindProductivity,
		ProgressChartID:     charts.KindProgress,
		PriorityChartID:     charts.KindBar,
	}
}

// ChartIDs lists the chart ids in display order.
func ChartIDs() []string {
	return []string{ProductivityChartID, ProgressChartID, PriorityChartID}
}
