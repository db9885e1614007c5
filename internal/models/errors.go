package models

import "errors"

// Validation failures. The interactive session recovers from all of them
// by printing a one-line diagnostic and asking again.
var (
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidField    = errors.New("invalid field")
)

// ErrBlankTask is returned when a task body has no lines. It is not a
// failure: the caller declines to create or change the task.
var ErrBlankTask = errors.New("task is blank")
