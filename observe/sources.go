package observe

import (
	"fmt"
	"time"

	"github.com/ducka/go-marbles/vtime"
	"github.com/robfig/cron/v3"
)

// Never is an observable that emits nothing and never terminates.
func Never[T any]() Observable[T] {
	return Create[T](func(observer Observer[T]) Disposable {
		return Disposed
	})
}

// Empty is an observable that emits nothing. This observable completes immediately on subscription.
func Empty[T any]() Observable[T] {
	return Create[T](func(observer Observer[T]) Disposable {
		observer.On(Complete[T]())
		return Disposed
	})
}

// Throw is an observable that fails with err immediately on subscription.
func Throw[T any](err error) Observable[T] {
	return Create[T](func(observer Observer[T]) Disposable {
		observer.On(Error[T](err))
		return Disposed
	})
}

// Interval is an observable that emits 0, 1, 2, ... every period ticks of virtual time, starting
// one period after subscription.
func Interval(period vtime.Time, scheduler Scheduler) Observable[int] {
	if period <= 0 {
		panic(`"Interval" expected a positive period`)
	}

	return Create[int](func(observer Observer[int]) Disposable {
		timer := NewSerialDisposable()
		count := 0

		var tick func()
		tick = func() {
			v := count
			count++
			timer.Set(MustSchedule(scheduler, scheduler.Now()+period, tick))
			observer.On(Next(v))
		}

		timer.Set(MustSchedule(scheduler, scheduler.Now()+period, tick))

		return timer
	})
}

// Cron is an observable that emits items on a specified cron schedule. The schedule is evaluated
// against the calendar's wall-clock reading of the scheduler's virtual time, and each item is the
// wall-clock instant of the firing.
func Cron(cronPattern string, scheduler Scheduler, calendar vtime.Calendar) Observable[time.Time] {
	parser := cron.NewParser(
		cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)

	schedule, err := parser.Parse(cronPattern)
	if err != nil {
		panic(fmt.Errorf("failed to parse cron pattern: %v", err))
	}

	return Create[time.Time](func(observer Observer[time.Time]) Disposable {
		timer := NewSerialDisposable()

		var arm func()
		arm = func() {
			next := schedule.Next(calendar.ToWall(scheduler.Now()))
			if next.IsZero() {
				// schedule has no future firings
				return
			}

			timer.Set(MustSchedule(scheduler, calendar.FromWall(next), func() {
				arm()
				observer.On(Next(next))
			}))
		}

		arm()

		return timer
	})
}
