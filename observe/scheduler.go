package observe

import (
	"github.com/ducka/go-marbles/vtime"
)

// Scheduler is the part of vtime.Scheduler that time based sources and operators depend on.
type Scheduler interface {
	Now() vtime.Time
	ScheduleAt(due vtime.Time, action func()) (*vtime.Item, error)
}

var _ Scheduler = (*vtime.Scheduler)(nil)

// MustSchedule schedules the action and panics if the scheduler rejects it. Time based sources and
// operators only ever schedule at or after Now, so a rejection is a programming error.
func MustSchedule(scheduler Scheduler, due vtime.Time, action func()) Disposable {
	item, err := scheduler.ScheduleAt(due, action)
	if err != nil {
		panic(err)
	}
	return item
}
