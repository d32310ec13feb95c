/*
Package clock abstracts the wall clock so that time-dependent code can be
tested against a fixed instant.
*/
package clock

import "time"

type Clock interface {
	Now() time.Time
}

var _ Clock = standardClock{}
var _ Clock = fixedClock{}

type standardClock struct{}

type fixedClock struct {
	now time.Time
}

// Standard returns a Clock backed by time.Now.
func Standard() Clock {
	return standardClock{}
}

func (standardClock) Now() time.Time {
	return time.Now()
}

// Fixed returns a Clock that always reports now.
func Fixed(now time.Time) Clock {
	return fixedClock{now: now}
}

func (c fixedClock) Now() time.Time {
	return c.now
}
