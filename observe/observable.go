package observe

type SubscribeFunc[T any] func(observer Observer[T]) Disposable

// Observable is a push based sequence. Subscribe registers the observer and returns the disposable
// that ends the subscription.
type Observable[T any] interface {
	Subscribe(observer Observer[T]) Disposable
}

type anonymousObservable[T any] struct {
	subscribe SubscribeFunc[T]
}

// Create builds an Observable from its subscribe function.
func Create[T any](subscribe SubscribeFunc[T]) Observable[T] {
	if subscribe == nil {
		panic(`"Create" expected subscribe func`)
	}
	return &anonymousObservable[T]{subscribe: subscribe}
}

func (o *anonymousObservable[T]) Subscribe(observer Observer[T]) Disposable {
	if observer == nil {
		panic(`"Subscribe" expected observer`)
	}
	return o.subscribe(observer)
}

// Subscribe observes the source with callbacks. OnError is followed by OnComplete(Failed, err);
// successful completion invokes OnComplete(Completed, nil).
func Subscribe[T any](source Observable[T], onNext OnNextFunc[T], options ...SubscribeOption) Disposable {
	opts := &subscribeOptions{
		onError:    func(err error) {},
		onComplete: func(reason CompleteReason, err error) {},
	}

	for _, opt := range options {
		opt(opts)
	}

	return source.Subscribe(&callbackObserver[T]{
		next:     onNext,
		err:      opts.onError,
		complete: opts.onComplete,
	})
}
