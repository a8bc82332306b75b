package rxtest

import (
	"github.com/ducka/go-marbles/observe"
)

// TestableObserver records every notification it receives with the scheduler's time.
type TestableObserver[T any] struct {
	scheduler *TestScheduler
	messages  []Recorded[T]
}

var _ observe.Observer[int] = (*TestableObserver[int])(nil)

func CreateObserver[T any](scheduler *TestScheduler) *TestableObserver[T] {
	return &TestableObserver[T]{
		scheduler: scheduler,
		messages:  make([]Recorded[T], 0),
	}
}

func (o *TestableObserver[T]) On(notification observe.Notification[T]) {
	o.messages = append(o.messages, Recorded[T]{Time: o.scheduler.Now(), Notification: notification})
}

func (o *TestableObserver[T]) Messages() []Recorded[T] {
	return append([]Recorded[T](nil), o.messages...)
}
