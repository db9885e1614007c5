// Package clock abstracts the wall clock so that due-tag classification
// can be tested against a fixed date.
package clock

import "time"

// Clock reports the current time. Production code injects Real(); tests
// inject Fixed().
type Clock interface {
	Now() time.Time
}

// Real returns a Clock backed by time.Now.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock { return fixedClock{t: t} }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
