package models

import (
	"fmt"
	"unicode/utf8"
)

// LineWidth is the width of one task body line. The table renderer sizes
// its Task column from the same constant.
const LineWidth = 44

// Priority is the user-assigned urgency code of a task.
type Priority string

const (
	PriorityCritical Priority = "C"
	PriorityHigh     Priority = "H"
	PriorityNormal   Priority = "N"
	PriorityLow      Priority = "L"
)

// Valid reports whether p is one of the four known codes.
func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityNormal, PriorityLow:
		return true
	}
	return false
}

// DueTag is the derived urgency of a task relative to the current date.
type DueTag string

const (
	DueOverdue DueTag = "O"
	DueToday   DueTag = "T"
	DueInTime  DueTag = "I"
)

// Valid reports whether d is one of the three known codes.
func (d DueTag) Valid() bool {
	switch d {
	case DueOverdue, DueToday, DueInTime:
		return true
	}
	return false
}

// Task is a single entry of the task list. The JSON field names are the
// persisted shape of tasklist.json.
type Task struct {
	Date     string   `json:"date"`     // yyyy-mm-dd
	Time     string   `json:"time"`     // hh:mm
	Priority Priority `json:"priority"` // C, H, N or L
	Due      DueTag   `json:"teg"`      // O, T or I
	Lines    []string `json:"task"`     // wrapped body, LineWidth runes each
}

// Clone returns a copy of t that shares no memory with it.
func (t Task) Clone() Task {
	t.Lines = append([]string(nil), t.Lines...)
	return t
}

// ValidationError reports which field of a task failed validation.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks that every field of the task is in canonical form. It is
// applied to records read back from storage as well as to new records.
func (t *Task) Validate() error {
	if !t.Priority.Valid() {
		return &ValidationError{Path: "priority", Err: ErrInvalidPriority}
	}

	if date, err := ParseDate(t.Date); err != nil || date != t.Date {
		return &ValidationError{Path: "date", Err: ErrInvalidDate}
	}

	if tm, err := ParseTime(t.Time); err != nil || tm != t.Time {
		return &ValidationError{Path: "time", Err: ErrInvalidTime}
	}

	if !t.Due.Valid() {
		return &ValidationError{Path: "teg", Err: fmt.Errorf("unknown due tag %q", t.Due)}
	}

	if len(t.Lines) == 0 {
		return &ValidationError{Path: "task", Err: ErrBlankTask}
	}
	for i, line := range t.Lines {
		if n := utf8.RuneCountInString(line); n != LineWidth {
			return &ValidationError{
				Path: fmt.Sprintf("task[%d]", i),
				Err:  fmt.Errorf("line is %d characters wide, want %d", n, LineWidth),
			}
		}
	}

	return nil
}
