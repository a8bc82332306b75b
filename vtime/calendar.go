package vtime

import (
	"time"
)

// Calendar anchors the virtual timeline to wall-clock instants so calendar based schedules can be
// evaluated on virtual time. Virtual time t corresponds to Epoch + t*Unit.
type Calendar struct {
	Epoch time.Time
	Unit  time.Duration
}

func NewCalendar(epoch time.Time, unit time.Duration) Calendar {
	if unit <= 0 {
		panic("calendar unit must be positive")
	}
	return Calendar{Epoch: epoch, Unit: unit}
}

// ToWall returns the instant virtual time t represents.
func (c Calendar) ToWall(t Time) time.Time {
	return c.Epoch.Add(time.Duration(t) * c.Unit)
}

// FromWall returns the earliest virtual time at or after the instant.
func (c Calendar) FromWall(instant time.Time) Time {
	d := instant.Sub(c.Epoch)
	t := Time(d / c.Unit)
	if d > 0 && d%c.Unit != 0 {
		t++
	}
	return t
}
