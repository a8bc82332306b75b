package observe

type (
	OnErrorFunc         func(error)
	OnCompleteFunc      func(reason CompleteReason, err error)
	OnNextFunc[T any]   func(v T)
	ObserverFunc[T any] func(notification Notification[T])

	CompleteReason string
)

const (
	// Failed indicates that the sequence terminated with an error
	Failed CompleteReason = "failure"
	// Completed indicates that the sequence terminated successfully
	Completed CompleteReason = "completed"
)

// Observer receives the notifications of a sequence. A well behaved sequence sends any number of
// Next notifications followed by at most one terminal notification.
type Observer[T any] interface {
	On(notification Notification[T])
}

func (f ObserverFunc[T]) On(notification Notification[T]) {
	f(notification)
}

// callbackObserver adapts callbacks to an Observer and ignores anything after a terminal
// notification.
type callbackObserver[T any] struct {
	next     OnNextFunc[T]
	err      OnErrorFunc
	complete OnCompleteFunc
	stopped  bool
}

func (o *callbackObserver[T]) On(notification Notification[T]) {
	if o.stopped {
		return
	}

	Dispatch(
		notification,
		func(v T) {
			o.next(v)
		},
		func(err error) {
			o.stopped = true
			o.err(err)
			o.complete(Failed, err)
		},
		func() {
			o.stopped = true
			o.complete(Completed, nil)
		},
	)
}
