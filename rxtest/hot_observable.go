package rxtest

import (
	"github.com/ducka/go-marbles/observe"
)

// HotObservable replays a fixed script on the scheduler whether or not anyone is subscribed. Every
// subscription is recorded in the order it happened.
type HotObservable[T any] struct {
	scheduler     *TestScheduler
	messages      []Recorded[T]
	observers     []*hotObserver[T]
	subscriptions []Subscription
}

type hotObserver[T any] struct {
	observer observe.Observer[T]
}

var _ observe.Observable[int] = (*HotObservable[int])(nil)

// CreateHotObservable schedules every message of the script at construction. Messages timed before
// the scheduler's clock are a programming error and panic.
func CreateHotObservable[T any](scheduler *TestScheduler, messages ...Recorded[T]) *HotObservable[T] {
	h := &HotObservable[T]{
		scheduler:     scheduler,
		messages:      append([]Recorded[T](nil), messages...),
		subscriptions: make([]Subscription, 0),
	}

	for _, message := range h.messages {
		notification := message.Notification
		scheduler.MustScheduleAt(message.Time, func() {
			h.forward(notification)
		})
	}

	return h
}

func (h *HotObservable[T]) forward(notification observe.Notification[T]) {
	// observers may subscribe or dispose while being notified
	current := append([]*hotObserver[T](nil), h.observers...)
	for _, o := range current {
		o.observer.On(notification)
	}
}

func (h *HotObservable[T]) Subscribe(observer observe.Observer[T]) observe.Disposable {
	entry := &hotObserver[T]{observer: observer}
	h.observers = append(h.observers, entry)

	index := len(h.subscriptions)
	h.subscriptions = append(h.subscriptions, SubInfinite(h.scheduler.Now()))

	return observe.NewDisposable(func() {
		for i, o := range h.observers {
			if o == entry {
				h.observers = append(h.observers[:i:i], h.observers[i+1:]...)
				break
			}
		}

		h.subscriptions[index].Unsubscribe = h.scheduler.Now()
	})
}

// Subscriptions returns the subscription log.
func (h *HotObservable[T]) Subscriptions() []Subscription {
	return append([]Subscription(nil), h.subscriptions...)
}

// Messages returns the script the source replays.
func (h *HotObservable[T]) Messages() []Recorded[T] {
	return append([]Recorded[T](nil), h.messages...)
}
