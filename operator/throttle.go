package operator

import (
	"github.com/ducka/go-marbles/observe"
	"github.com/ducka/go-marbles/vtime"
)

// Throttle emits a value only once dueTime has passed without the source producing a newer one.
// Completion flushes a pending value before completing; an error discards it.
func Throttle[T any](dueTime vtime.Time, scheduler observe.Scheduler, opts ...Option) OperatorFunc[T, T] {
	if dueTime < 0 {
		panic(`"Throttle" expected a non negative due time`)
	}
	if scheduler == nil {
		panic(`"Throttle" expected scheduler`)
	}
	options := newOperatorOptions(defaultActivityName("Throttle", opts))

	return func(source observe.Observable[T]) observe.Observable[T] {
		return observe.Create[T](func(observer observe.Observer[T]) observe.Disposable {
			t := &throttle[T]{
				sink:      newSink(observer, options),
				scheduler: scheduler,
				dueTime:   dueTime,
				timer:     observe.NewSerialDisposable(),
			}

			t.upstream.Add(t.timer)
			t.upstream.Add(source.Subscribe(observe.ObserverFunc[T](t.on)))

			return t.upstream
		})
	}
}

type throttle[T any] struct {
	*sink[T]
	scheduler observe.Scheduler
	dueTime   vtime.Time

	value    T
	hasValue bool
	// id identifies the newest value; a timer armed for an older value is stale.
	id    uint64
	timer *observe.SerialDisposable
}

func (t *throttle[T]) on(notification observe.Notification[T]) {
	if t.done {
		return
	}

	observe.Dispatch(notification, t.onNext, t.onError, t.onComplete)
}

func (t *throttle[T]) onNext(v T) {
	if t.hasValue {
		t.dropped()
	}

	t.value = v
	t.hasValue = true
	t.id++

	id := t.id
	t.timer.Set(observe.MustSchedule(t.scheduler, t.scheduler.Now()+t.dueTime, func() {
		t.fire(id)
	}))
}

func (t *throttle[T]) fire(id uint64) {
	if t.done || !t.hasValue || t.id != id {
		return
	}

	t.forward(observe.Next(t.take()))
}

func (t *throttle[T]) onError(err error) {
	if t.hasValue {
		t.take()
		t.dropped()
	}

	t.forward(observe.Error[T](err))
}

func (t *throttle[T]) onComplete() {
	if t.hasValue {
		t.forward(observe.Next(t.take()))
	}

	t.forward(observe.Complete[T]())
}

func (t *throttle[T]) take() T {
	var zero T
	v := t.value
	t.value = zero
	t.hasValue = false
	return v
}
