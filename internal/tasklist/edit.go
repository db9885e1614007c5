package tasklist

import "tasklist/internal/models"

// Edit is a change to exactly one field of a task. Build one with
// SetPriority, SetDate, SetTime or SetLines; the zero Edit names no field
// and is rejected with ErrUnknownField.
type Edit struct {
	field    models.Field
	priority models.Priority
	date     string
	time     string
	lines    []string
}

// Field reports which field the edit replaces.
func (e Edit) Field() models.Field {
	return e.field
}

// SetPriority replaces the priority code.
func SetPriority(p models.Priority) Edit {
	return Edit{field: models.FieldPriority, priority: p}
}

// SetDate replaces the date with a canonical yyyy-mm-dd value.
func SetDate(date string) Edit {
	return Edit{field: models.FieldDate, date: date}
}

// SetTime replaces the time with a canonical hh:mm value.
func SetTime(time string) Edit {
	return Edit{field: models.FieldTime, time: time}
}

// SetLines replaces the body with already wrapped lines.
func SetLines(lines []string) Edit {
	return Edit{field: models.FieldTask, lines: lines}
}
