package tasks

import "errors"

var (
	ErrNotFound        = errors.New("task not found")
	ErrEmptyTitle      = errors.New("task title is required")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidDueDate  = errors.New("invalid due date")
	ErrInvalidFilter   = errors.New("invalid filter")
	ErrStore           = errors.New("task store")
)
