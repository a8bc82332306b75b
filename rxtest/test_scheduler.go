package rxtest

import (
	"github.com/ducka/go-marbles/observe"
	"github.com/ducka/go-marbles/vtime"
)

// Default harness timing used by Start.
const (
	Created    vtime.Time = 100
	Subscribed vtime.Time = 200
	Disposed   vtime.Time = 1000
)

// TestScheduler is a virtual-time scheduler with the harness entry points.
type TestScheduler struct {
	*vtime.Scheduler
}

func NewTestScheduler(initialClock vtime.Time, options ...vtime.Option) *TestScheduler {
	return &TestScheduler{Scheduler: vtime.NewScheduler(initialClock, options...)}
}

// Start creates the observable at 100, subscribes to it at 200 and disposes the subscription at
// 1000.
func Start[T any](scheduler *TestScheduler, create func() observe.Observable[T]) *TestableObserver[T] {
	return StartWithTiming(scheduler, create, Created, Subscribed, Disposed)
}

// StartWithTiming creates the observable, subscribes and disposes at the given times, then runs the
// scheduler until no actions remain.
func StartWithTiming[T any](
	scheduler *TestScheduler,
	create func() observe.Observable[T],
	created, subscribed, disposed vtime.Time,
) *TestableObserver[T] {
	if create == nil {
		panic(`"Start" expected create func`)
	}

	var (
		source       observe.Observable[T]
		subscription observe.Disposable
	)
	observer := CreateObserver[T](scheduler)

	scheduler.MustScheduleAt(created, func() {
		source = create()
	})
	scheduler.MustScheduleAt(subscribed, func() {
		subscription = source.Subscribe(observer)
	})
	scheduler.MustScheduleAt(disposed, func() {
		if subscription != nil {
			subscription.Dispose()
		}
	})

	scheduler.RunToEnd()

	return observer
}
