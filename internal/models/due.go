package models

import "time"

// Classify derives the due tag of a task dated date relative to now, taken
// as a UTC calendar day. date must be canonical (see ParseDate); canonical
// dates order lexically the same way they order in time.
func Classify(date string, now time.Time) DueTag {
	today := now.UTC().Format("2006-01-02")
	switch {
	case date == today:
		return DueToday
	case date > today:
		return DueInTime
	default:
		return DueOverdue
	}
}
