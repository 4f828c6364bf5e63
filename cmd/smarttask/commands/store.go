package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MacroPower/smarttask/pkg/tasks"
)

var (
	ErrAmbiguousID = errors.New("ambiguous task id")

	doneMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981")).SetString("✓")
	overdueMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).SetString("!")
	openMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")).SetString("·")
)

const shortIDLen = 8

func openStore(args *RootArgs) (*tasks.FileStore, error) {
	s, err := tasks.NewFileStore(args.GetConfig().StorePath, tasks.WithStoreLogger(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return s, nil
}

// resolveID expands a unique id prefix, as printed by "task list".
func resolveID(s *tasks.FileStore, prefix string) (string, error) {
	ts, err := s.List()
	if err != nil {
		return "", err
	}

	var matches []string

	for _, t := range ts {
		if t.ID == prefix {
			return t.ID, nil
		}

		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %q", tasks.ErrNotFound, prefix)
	case 1:
		return matches[0], nil
	}

	return "", fmt.Errorf("%w: %q matches %d tasks", ErrAmbiguousID, prefix, len(matches))
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}

	return id[:shortIDLen]
}

func statusMark(t tasks.Task, now time.Time) string {
	switch {
	case t.Completed:
		return doneMark.String()
	case t.IsOverdue(now):
		return overdueMark.String()
	}

	return openMark.String()
}

func printTasks(w io.Writer, ts []tasks.Task, now time.Time) error {
	if len(ts) == 0 {
		_, err := fmt.Fprintln(w, "No tasks.")

		return err
	}

	rows := make([][]string, 0, len(ts))
	for _, t := range ts {
		rows = append(rows, []string{
			shortID(t.ID),
			statusMark(t, now),
			t.Priority.Icon() + " " + t.Priority.Label(),
			t.Title,
			t.DueDate,
		})
	}

	tbl := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("ID", "", "PRIORITY", "TITLE", "DUE").
		Rows(rows...)

	_, err := fmt.Fprintln(w, tbl.Render())

	return err
}
