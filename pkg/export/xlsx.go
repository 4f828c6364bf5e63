package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MacroPower/smarttask/pkg/charts"
	"github.com/MacroPower/smarttask/pkg/tasks"
)

const (
	tasksSheet   = "Tasks"
	summarySheet = "Summary"
)

var taskHeader = []any{
	"ID", "Title", "Description", "Priority", "Due", "Status", "Created", "Completed",
}

// WriteXLSX writes a workbook with a task sheet and a summary sheet that
// carries the chart data and native doughnut, column and line charts.
func WriteXLSX(w io.Writer, ts []tasks.Task, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	err := f.SetSheetName("Sheet1", tasksSheet)
	if err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	err = writeTaskSheet(f, ts, now)
	if err != nil {
		return err
	}

	err = writeSummarySheet(f, tasks.Summarize(ts, now))
	if err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	if err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

func headerStyle(f *excelize.File) (int, error) {
	id, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E2E8F0"}},
	})
	if err != nil {
		return 0, fmt.Errorf("create header style: %w", err)
	}

	return id, nil
}

func status(t tasks.Task, now time.Time) string {
	switch {
	case t.Completed:
		return "completed"
	case t.IsOverdue(now):
		return "overdue"
	}

	return "pending"
}

func writeTaskSheet(f *excelize.File, ts []tasks.Task, now time.Time) error {
	style, err := headerStyle(f)
	if err != nil {
		return err
	}

	err = f.SetSheetRow(tasksSheet, "A1", &taskHeader)
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	err = f.SetCellStyle(tasksSheet, "A1", "H1", style)
	if err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, t := range ts {
		completed := ""
		if t.CompletedAt != nil {
			completed = t.CompletedAt.Format(time.RFC3339)
		}

		row := []any{
			t.ID, t.Title, t.Description, t.Priority.Label(), t.DueDate,
			status(t, now), t.CreatedAt.Format(time.RFC3339), completed,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}

		err = f.SetSheetRow(tasksSheet, cell, &row)
		if err != nil {
			return fmt.Errorf("write task %s: %w", t.ID, err)
		}
	}

	err = f.SetColWidth(tasksSheet, "B", "C", 40)
	if err != nil {
		return fmt.Errorf("size columns: %w", err)
	}

	return nil
}

// block is a labelled column pair on the summary sheet.
type block struct {
	title  string
	labels []string
	values []float64
	col    int
}

func (b block) column(offset int) string {
	name, _ := excelize.ColumnNumberToName(b.col + offset)

	return name
}

// rows is the absolute reference to the data rows of one column.
func (b block) rows(offset int) string {
	c := b.column(offset)

	return fmt.Sprintf("%s!$%s$2:$%s$%d", summarySheet, c, c, len(b.labels)+1)
}

func (b block) header() string {
	return fmt.Sprintf("%s!$%s$1", summarySheet, b.column(1))
}

func writeSummarySheet(f *excelize.File, s tasks.Summary) error {
	_, err := f.NewSheet(summarySheet)
	if err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	style, err := headerStyle(f)
	if err != nil {
		return err
	}

	weekly := s.Datasets[tasks.ProgressChartID]
	priority := s.Datasets[tasks.PriorityChartID]

	blocks := []block{
		{
			title:  "Productivity",
			col:    1,
			labels: []string{charts.CategoryCompleted.String(), charts.CategoryPending.String(), charts.CategoryOverdue.String()},
			values: []float64{float64(s.Counts.Completed), float64(s.Counts.Pending), float64(s.Counts.Overdue)},
		},
		{title: "Completed per day", col: 4, labels: weekly.Labels, values: weekly.Values},
		{title: "Open by priority", col: 7, labels: priority.Labels, values: priority.Values},
	}

	for _, b := range blocks {
		err := writeBlock(f, b, style)
		if err != nil {
			return err
		}
	}

	chartsToAdd := []struct {
		cell  string
		kind  excelize.ChartType
		block block
	}{
		{cell: "K2", kind: excelize.Doughnut, block: blocks[0]},
		{cell: "K18", kind: excelize.Line, block: blocks[1]},
		{cell: "K34", kind: excelize.Col, block: blocks[2]},
	}

	for _, c := range chartsToAdd {
		err := f.AddChart(summarySheet, c.cell, &excelize.Chart{
			Type: c.kind,
			Series: []excelize.ChartSeries{{
				Name:       c.block.header(),
				Categories: c.block.rows(0),
				Values:     c.block.rows(1),
			}},
			Title:  []excelize.RichTextRun{{Text: c.block.title}},
			Legend: excelize.ChartLegend{Position: "bottom"},
		})
		if err != nil {
			return fmt.Errorf("add %s chart: %w", c.block.title, err)
		}
	}

	return nil
}

func writeBlock(f *excelize.File, b block, style int) error {
	head, err := excelize.CoordinatesToCellName(b.col, 1)
	if err != nil {
		return fmt.Errorf("block %s: %w", b.title, err)
	}

	tail, err := excelize.CoordinatesToCellName(b.col+1, 1)
	if err != nil {
		return fmt.Errorf("block %s: %w", b.title, err)
	}

	err = f.SetSheetRow(summarySheet, head, &[]any{b.title, "Count"})
	if err != nil {
		return fmt.Errorf("block %s: %w", b.title, err)
	}

	err = f.SetCellStyle(summarySheet, head, tail, style)
	if err != nil {
		return fmt.Errorf("block %s: %w", b.title, err)
	}

	for i, label := range b.labels {
		cell, err := excelize.CoordinatesToCellName(b.col, i+2)
		if err != nil {
			return fmt.Errorf("block %s: %w", b.title, err)
		}

		err = f.SetSheetRow(summarySheet, cell, &[]any{label, b.values[i]})
		if err != nil {
			return fmt.Errorf("block %s: %w", b.title, err)
		}
	}

	return nil
}
