package clock

import (
	"time"

	"github.com/outofforest/dayseed/pkg/daily"
)

// Clock tells the current time.
type Clock interface {
	Now() time.Time
}

// System is the clock of the operating system.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Fixed returns clock always reporting t.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// Today returns the current date in loc.
func Today(c Clock, loc *time.Location) daily.DateKey {
	return daily.DateKeyFromTime(c.Now().In(loc))
}
