package operator

import (
	"fmt"

	"github.com/ducka/go-marbles/observe"
)

func defaultActivityName(name string, opts []Option) []Option {
	return append([]Option{WithActivityName(name)}, opts...)
}

// sink forwards an operator's output downstream. Once a terminal notification has been forwarded
// the sink is done, drops anything else it is given and disposes the operator's upstreams.
type sink[T any] struct {
	observer observe.Observer[T]
	opts     operatorOptions
	upstream *observe.CompositeDisposable
	done     bool
}

func newSink[T any](observer observe.Observer[T], opts operatorOptions) *sink[T] {
	return &sink[T]{
		observer: observer,
		opts:     opts,
		upstream: observe.NewCompositeDisposable(),
	}
}

func (s *sink[T]) forward(notification observe.Notification[T]) {
	if s.done {
		return
	}

	s.opts.measurer.Incr(s.opts.activity, "item_emitted", 1)

	switch notification.Kind() {
	case observe.NextKind:
		s.opts.measurer.Incr(s.opts.activity, "value_emitted", 1)
		s.observer.On(notification)
		return
	case observe.ErrorKind:
		s.opts.measurer.Incr(s.opts.activity, "error_emitted", 1)
		s.opts.logger.Debug(s.opts.activity, fmt.Sprintf("failed: %v", notification.Err()))
	case observe.CompleteKind:
		s.opts.logger.Debug(s.opts.activity, "completed")
	default:
		panic(fmt.Sprintf("unknown notification kind %q", notification.Kind()))
	}

	s.done = true
	s.observer.On(notification)
	s.upstream.Dispose()
}

// dropped records a value the operator discarded without emitting.
func (s *sink[T]) dropped() {
	s.opts.measurer.Incr(s.opts.activity, "value_dropped", 1)
}
