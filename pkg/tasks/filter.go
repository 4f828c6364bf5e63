package tasks

import (
	"fmt"
	"strings"
	"time"
)

// Filter selects a subset of tasks by state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
	FilterOverdue   Filter = "overdue"
)

// Filters lists every filter.
func Filters() []Filter {
	return []Filter{FilterAll, FilterCompleted, FilterPending, FilterOverdue}
}

// ParseFilter converts user input into a [Filter]; empty means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterCompleted, FilterPending, FilterOverdue:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
}

// Keep reports whether t passes the filter at time now. Pending means not
// completed, whether or not the task is overdue.
func (f Filter) Keep(t Task, now time.Time) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed
	case FilterOverdue:
		return t.IsOverdue(now)
	case FilterAll:
	}

	return true
}

// Select applies a filter and a search query, keeping the input order.
func Select(ts []Task, f Filter, query string, now time.Time) []Task {
	out := make([]Task, 0, len(ts))

	for _, t := range ts {
		if f.Keep(t, now) && t.Matches(query) {
			out = append(out, t)
		}
	}

	return out
}
