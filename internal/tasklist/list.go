// Package tasklist owns the ordered collection of tasks and the operations
// the interactive session performs on it. Tasks are addressed by their
// 1-based position; positions shift down after a delete.
package tasklist

import (
	"errors"
	"regexp"
	"strconv"

	"tasklist/internal/clock"
	"tasklist/internal/models"
)

var (
	ErrInvalidIndex    = errors.New("invalid task number")
	ErrIndexOutOfRange = errors.New("task number out of range")
	ErrEmptyCollection = errors.New("no tasks have been input")
	ErrUnknownField    = errors.New("unknown field")
)

// List is an ordered task collection. It is not safe for concurrent use.
type List struct {
	tasks []models.Task
	clock clock.Clock
}

// New creates a List holding tasks in the given order. Due tags of loaded
// tasks are kept as stored; they are only recomputed when a task is added
// or its date is edited.
func New(c clock.Clock, tasks []models.Task) *List {
	l := &List{clock: c}
	for _, t := range tasks {
		l.tasks = append(l.tasks, t.Clone())
	}
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Tasks returns a copy of the collection in position order.
func (l *List) Tasks() []models.Task {
	out := make([]models.Task, len(l.tasks))
	for i, t := range l.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Add appends a new task. date and time must already be canonical and
// lines already wrapped; the due tag is derived from date. Nothing is
// stored unless the whole record is valid.
func (l *List) Add(priority models.Priority, date, time string, lines []string) error {
	task := models.Task{
		Date:     date,
		Time:     time,
		Priority: priority,
		Due:      models.Classify(date, l.clock.Now()),
		Lines:    append([]string(nil), lines...),
	}
	if err := task.Validate(); err != nil {
		return err
	}

	l.tasks = append(l.tasks, task)
	return nil
}

// Get returns a copy of the task at the 1-based position index.
func (l *List) Get(index int) (models.Task, error) {
	if err := l.checkIndex(index); err != nil {
		return models.Task{}, err
	}
	return l.tasks[index-1].Clone(), nil
}

// EditField applies a single-field change to the task at index. Changing
// the date also recomputes the due tag.
func (l *List) EditField(index int, e Edit) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}

	task := l.tasks[index-1].Clone()
	switch e.field {
	case models.FieldPriority:
		task.Priority = e.priority
	case models.FieldDate:
		task.Date = e.date
		task.Due = models.Classify(e.date, l.clock.Now())
	case models.FieldTime:
		task.Time = e.time
	case models.FieldTask:
		task.Lines = append([]string(nil), e.lines...)
	default:
		return ErrUnknownField
	}
	if err := task.Validate(); err != nil {
		return err
	}

	l.tasks[index-1] = task
	return nil
}

// Delete removes the task at index; later tasks move up one position.
func (l *List) Delete(index int) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	l.tasks = append(l.tasks[:index-1], l.tasks[index:]...)
	return nil
}

func (l *List) checkIndex(index int) error {
	if len(l.tasks) == 0 {
		return ErrEmptyCollection
	}
	if index < 1 || index > len(l.tasks) {
		return ErrIndexOutOfRange
	}
	return nil
}

var digits = regexp.MustCompile(`^\d+$`)

// ParseIndex reads a task number typed by the user and checks it against
// the current length.
func (l *List) ParseIndex(text string) (int, error) {
	if !digits.MatchString(text) {
		return 0, ErrInvalidIndex
	}
	index, err := strconv.Atoi(text)
	if err != nil {
		// Too many digits for an int; no list is that long.
		return 0, ErrIndexOutOfRange
	}
	if err := l.checkIndex(index); err != nil {
		return 0, err
	}
	return index, nil
}
