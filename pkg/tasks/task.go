package tasks

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DateLayout is the format of due dates and reminder days.
const DateLayout = time.DateOnly

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var titleCaser = cases.Title(language.English)

// Priorities lists every priority from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParsePriority converts user input into a [Priority]. Empty input means
// medium.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// Label is the display form, e.g. "High".
func (p Priority) Label() string {
	return titleCaser.String(string(p))
}

// Icon is a single-rune marker for the priority.
func (p Priority) Icon() string {
	switch p {
	case PriorityHigh:
		return "🔴"
	case PriorityMedium:
		return "🟡"
	case PriorityLow:
		return "🟢"
	}

	return "⚪"
}

// Task is a single to-do item.
type Task struct {
	CreatedAt   time.Time  `json:"createdAt"             jsonschema:"required"                yaml:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"             yaml:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	ID          string     `json:"id"                    jsonschema:"required,minLength=1"    yaml:"id"`
	Title       string     `json:"title"                 jsonschema:"required,minLength=1"    yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	// DueDate is a calendar day in [DateLayout], or empty.
	DueDate  string   `json:"dueDate,omitempty"    jsonschema:"pattern=^([0-9]{4}-[0-9]{2}-[0-9]{2})?$" yaml:"dueDate,omitempty"`
	Priority Priority `json:"priority"             jsonschema:"enum=low,enum=medium,enum=high"           yaml:"priority"`
	// NotifiedOn is the day a due-today reminder was last shown.
	NotifiedOn string `json:"notifiedOn,omitempty" yaml:"notifiedOn,omitempty"`
	Completed  bool   `json:"completed"            yaml:"completed"`
}

// Validate checks the fields a user can set.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}

	if _, err := ParsePriority(string(t.Priority)); err != nil || t.Priority == "" {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}

	return validateDueDate(t.DueDate)
}

// Due parses the due date. ok is false when the task has none.
func (t Task) Due(loc *time.Location) (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}

	d, err := time.ParseInLocation(DateLayout, t.DueDate, loc)
	if err != nil {
		return time.Time{}, false
	}

	return d, true
}

// IsOverdue reports whether an open task's due date is before the start of
// the day containing now.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed {
		return false
	}

	due, ok := t.Due(now.Location())
	if !ok {
		return false
	}

	return due.Before(StartOfDay(now))
}

// DueOn reports whether the task is due on the day containing now.
func (t Task) DueOn(now time.Time) bool {
	return t.DueDate != "" && t.DueDate == now.Format(DateLayout)
}

// Matches reports whether query occurs in the title or description,
// ignoring case. An empty query matches everything.
func (t Task) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func validateDueDate(s string) error {
	if s == "" {
		return nil
	}

	_, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidDueDate, s, err)
	}

	return nil
}

// Draft holds the user-editable fields of a new or edited task.
type Draft struct {
	Title       string
	Description string
	DueDate     string
	Priority    string
}

func (d Draft) apply(t *Task) error {
	p, err := ParsePriority(d.Priority)
	if err != nil {
		return err
	}

	t.Title = strings.TrimSpace(d.Title)
	t.Description = strings.TrimSpace(d.Description)
	t.DueDate = strings.TrimSpace(d.DueDate)
	t.Priority = p

	return t.Validate()
}

// Patch holds optional edits; nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	DueDate     *string
	Priority    *string
}

func (p Patch) apply(t *Task) error {
	d := Draft{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
	}

	if p.Title != nil {
		d.Title = *p.Title
	}

	if p.Description != nil {
		d.Description = *p.Description
	}

	if p.DueDate != nil {
		d.DueDate = *p.DueDate
	}

	if p.Priority != nil {
		d.Priority = *p.Priority
	}

	return d.apply(t)
}
