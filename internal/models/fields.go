package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParsePriority accepts a single priority letter in either case.
func ParsePriority(text string) (Priority, error) {
	p := Priority(strings.ToUpper(text))
	if !p.Valid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// ParseDate parses "<year>-<month>-<day>" and returns the date in canonical
// yyyy-mm-dd form, so "2021-2-3" becomes "2021-02-03". The numbers must name
// a real calendar day between years 0 and 9999.
func ParseDate(text string) (string, error) {
	parts := strings.Split(text, "-")
	if len(parts) != 3 {
		return "", ErrInvalidDate
	}

	nums, ok := atoiAll(parts)
	if !ok {
		return "", ErrInvalidDate
	}
	y, m, d := nums[0], nums[1], nums[2]
	if y < 0 || y > 9999 || m < 1 || m > 12 || d < 1 || d > 31 {
		return "", ErrInvalidDate
	}

	// time.Date normalizes Feb 30 into March; a real date survives unchanged.
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return "", ErrInvalidDate
	}

	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), nil
}

// ParseTime parses "<hour>:<minute>" and returns the zero-padded hh:mm form.
func ParseTime(text string) (string, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return "", ErrInvalidTime
	}

	nums, ok := atoiAll(parts)
	if !ok {
		return "", ErrInvalidTime
	}
	h, m := nums[0], nums[1]
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return "", ErrInvalidTime
	}

	return fmt.Sprintf("%02d:%02d", h, m), nil
}

func atoiAll(parts []string) ([]int, bool) {
	nums := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, false
		}
		nums[i] = n
	}
	return nums, true
}

// Field names one editable field of a task.
type Field int

const (
	FieldPriority Field = iota + 1
	FieldDate
	FieldTime
	FieldTask
)

func (f Field) String() string {
	switch f {
	case FieldPriority:
		return "priority"
	case FieldDate:
		return "date"
	case FieldTime:
		return "time"
	case FieldTask:
		return "task"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// ParseField accepts one of priority, date, time or task in any case.
func ParseField(text string) (Field, error) {
	switch strings.ToLower(text) {
	case "priority":
		return FieldPriority, nil
	case "date":
		return FieldDate, nil
	case "time":
		return FieldTime, nil
	case "task":
		return FieldTask, nil
	}
	return 0, ErrInvalidField
}
