package charttui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-multierror"
	"github.com/wcharczuk/go-chart/v2/drawing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MacroPower/smarttask/pkg/tasks"
)

type styles struct {
	title     lipgloss.Style
	theme     lipgloss.Style
	statName  lipgloss.Style
	statValue lipgloss.Style
	overdue   lipgloss.Style
	chart     lipgloss.Style
	caption   lipgloss.Style
	err       lipgloss.Style
	help      lipgloss.Style
}

var defaultStyles = styles{
	title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6")),
	theme:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	statName:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	statValue: lipgloss.NewStyle().Bold(true),
	overdue:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444")),
	chart:     lipgloss.NewStyle().MarginRight(chartGap),
	caption:   lipgloss.NewStyle().Bold(true),
	err:       lipgloss.NewStyle().Margin(1, 2).Foreground(lipgloss.Color("196")),
	help:      lipgloss.NewStyle().MarginTop(1),
}

type (
	// Sent to write a log message.
	teaMsgWriteLog string

	// Sent on every animation frame.
	teaMsgFrame time.Time

	// Sent when the task list has been read.
	teaMsgTasksLoaded struct {
		err   error
		tasks []tasks.Task
		now   time.Time
	}
)

func writeLog(msg teaMsgWriteLog, width int) tea.Cmd {
	logMsg := string(msg)
	logMsg = strings.Trim(logMsg, "\r\n")
	logMsg = lipgloss.NewStyle().Width(max(0, width-2)).Render(logMsg)

	return tea.Println(logMsg)
}

func getErrorMessage(err error, width int) string {
	var merr *multierror.Error
	if !errors.As(err, &merr) || len(merr.Errors) <= 1 {
		errMsg := strings.Trim(fmt.Sprintf("%v", err), "\r\n")

		return defaultStyles.err.Width(max(0, width-4)).Render("✗ " + errMsg)
	}

	lines := make([]string, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		lines = append(lines, "✗ "+strings.Trim(e.Error(), "\r\n"))
	}

	return defaultStyles.err.Width(max(0, width-4)).Render(strings.Join(lines, "\n"))
}

func swatch(c drawing.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexOf(c))).SetString("■")
}

func hexOf(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
