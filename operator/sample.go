package operator

import (
	"github.com/ducka/go-marbles/observe"
)

// Sample emits the source's most recent value whenever the sampler emits, provided the source has
// produced a value since the previous sample. The result completes when the sampler completes, or
// on the first sampler tick after the source completed.
func Sample[T any, U any](sampler observe.Observable[U], opts ...Option) OperatorFunc[T, T] {
	return sample[T, U](sampler, true, defaultActivityName("Sample", opts))
}

// SampleLatest is Sample without the requirement for a new value: every sampler tick re-emits the
// most recent source value once there is one.
func SampleLatest[T any, U any](sampler observe.Observable[U], opts ...Option) OperatorFunc[T, T] {
	return sample[T, U](sampler, false, defaultActivityName("SampleLatest", opts))
}

func sample[T any, U any](sampler observe.Observable[U], onlyChanged bool, opts []Option) OperatorFunc[T, T] {
	if sampler == nil {
		panic(`"Sample" expected sampler observable`)
	}
	options := newOperatorOptions(opts)

	return func(source observe.Observable[T]) observe.Observable[T] {
		return observe.Create[T](func(observer observe.Observer[T]) observe.Disposable {
			s := &sampling[T, U]{
				sink:        newSink(observer, options),
				onlyChanged: onlyChanged,
				source:      observe.NewSerialDisposable(),
			}

			// the source is subscribed first so it wins ties with the sampler
			s.upstream.Add(s.source)
			s.source.Set(source.Subscribe(observe.ObserverFunc[T](s.onSource)))
			s.upstream.Add(sampler.Subscribe(observe.ObserverFunc[U](s.onSampler)))

			return s.upstream
		})
	}
}

type sampling[T any, U any] struct {
	*sink[T]
	onlyChanged bool

	latest          T
	hasLatest       bool
	unseen          bool
	sourceCompleted bool
	source          *observe.SerialDisposable
}

func (s *sampling[T, U]) onSource(notification observe.Notification[T]) {
	if s.done {
		return
	}

	observe.Dispatch(
		notification,
		func(v T) {
			if s.onlyChanged && s.unseen {
				s.dropped()
			}
			s.latest = v
			s.hasLatest = true
			s.unseen = true
		},
		func(err error) {
			s.forward(observe.Error[T](err))
		},
		func() {
			s.sourceCompleted = true
			s.source.Dispose()
		},
	)
}

func (s *sampling[T, U]) onSampler(notification observe.Notification[U]) {
	if s.done {
		return
	}

	observe.Dispatch(
		notification,
		func(U) {
			s.emit()
			if s.sourceCompleted {
				s.forward(observe.Complete[T]())
			}
		},
		func(err error) {
			s.forward(observe.Error[T](err))
		},
		func() {
			s.emit()
			s.forward(observe.Complete[T]())
		},
	)
}

func (s *sampling[T, U]) emit() {
	if s.onlyChanged && !s.unseen || !s.hasLatest {
		return
	}

	s.unseen = false
	s.forward(observe.Next(s.latest))
}
