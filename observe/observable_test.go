package observe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestObservable(t *testing.T) {
	t.Run("When observing a sequence of {1, 2, 3}", func(t *testing.T) {
		sequence := []any{1, 2, 3}

		sut := Create[int](produceSequence(sequence...))

		t.Run("Then the subscriber functions should be invoked as OnNext(1), OnNext(2), OnNext(3), OnComplete(completed)", func(t *testing.T) {
			subscriberMock := makeSubscriber(sequence...)

			Subscribe(
				sut,
				subscriberMock.OnNext,
				WithOnError(subscriberMock.OnError),
				WithOnComplete(subscriberMock.OnComplete),
			)

			subscriberMock.AssertExpectations(t)
		})
	})

	t.Run("When observing a sequence of {1, error, 3}", func(t *testing.T) {
		err := errors.New("error")
		sequence := []any{1, err, 3}

		sut := Create[int](produceSequence(sequence...))

		t.Run("Then the subscriber functions should be invoked as OnNext(1), OnError, OnComplete(failure)", func(t *testing.T) {
			subscriberMock := makeSubscriber(sequence...)

			Subscribe(
				sut,
				subscriberMock.OnNext,
				WithOnError(subscriberMock.OnError),
				WithOnComplete(subscriberMock.OnComplete),
			)

			subscriberMock.AssertExpectations(t)
		})
	})

	t.Run("When subscribing without error or complete callbacks", func(t *testing.T) {
		values := make([]int, 0)

		sut := Create[int](produceSequence(1, errors.New("error")))

		t.Run("Then the values should still be delivered", func(t *testing.T) {
			assert.NotPanics(t, func() {
				Subscribe(sut, func(v int) { values = append(values, v) })
			})
			assert.Equal(t, []int{1}, values)
		})
	})

	t.Run("When subscribing to a Create observable", func(t *testing.T) {
		disposed := false

		sut := Create[int](func(observer Observer[int]) Disposable {
			return NewDisposable(func() { disposed = true })
		})

		subscription := sut.Subscribe(ObserverFunc[int](func(n Notification[int]) {}))

		t.Run("Then disposing the subscription should release the producer", func(t *testing.T) {
			assert.False(t, disposed)
			subscription.Dispose()
			assert.True(t, disposed)
		})
	})

	t.Run("When creating an observable without a subscribe function", func(t *testing.T) {
		t.Run("Then it should panic", func(t *testing.T) {
			assert.Panics(t, func() {
				Create[int](nil)
			})
		})
	})
}

func TestSources(t *testing.T) {
	t.Run("When subscribing to Empty", func(t *testing.T) {
		notifications := collect(Empty[int]())

		t.Run("Then it should complete immediately", func(t *testing.T) {
			assert.Equal(t, []Notification[int]{Complete[int]()}, notifications)
		})
	})

	t.Run("When subscribing to Never", func(t *testing.T) {
		notifications := collect(Never[int]())

		t.Run("Then nothing should be delivered", func(t *testing.T) {
			assert.Empty(t, notifications)
		})
	})

	t.Run("When subscribing to Throw", func(t *testing.T) {
		err := errors.New("boom")
		notifications := collect(Throw[int](err))

		t.Run("Then it should fail immediately", func(t *testing.T) {
			assert.Equal(t, []Notification[int]{Error[int](err)}, notifications)
		})
	})
}

func collect[T any](source Observable[T]) []Notification[T] {
	notifications := make([]Notification[T], 0)
	source.Subscribe(ObserverFunc[T](func(n Notification[T]) {
		notifications = append(notifications, n)
	}))
	return notifications
}

func makeSubscriber(sequence ...any) *SubscriberMock[int] {
	subscriber := &SubscriberMock[int]{}
	calls := make([]*mock.Call, 0, len(sequence))
	var err error

	for _, v := range sequence {
		if err2, ok := v.(error); ok {
			err = err2
			calls = append(calls, subscriber.On("OnError", err).Return().NotBefore(calls...).Once())
			break
		}

		calls = append(calls, subscriber.On("OnNext", v.(int)).Return().NotBefore(calls...).Once())
	}

	reason := Completed
	if err != nil {
		reason = Failed
	}

	subscriber.On("OnComplete", reason, err).Return().NotBefore(calls...).Once()

	return subscriber
}

// produceSequence emits the sequence synchronously on subscribe. A trailing Complete is sent unless
// the sequence contains an error.
func produceSequence(sequence ...any) SubscribeFunc[int] {
	return func(observer Observer[int]) Disposable {
		for _, v := range sequence {
			if err, ok := v.(error); ok {
				observer.On(Error[int](err))
				// anything after the error must be ignored by the observer
				continue
			}

			observer.On(Next(v.(int)))
		}
		observer.On(Complete[int]())

		return Disposed
	}
}

type SubscriberMock[T any] struct {
	mock.Mock
}

func (s *SubscriberMock[T]) OnNext(next T) {
	s.Called(next)
}

func (s *SubscriberMock[T]) OnError(err error) {
	s.Called(err)
}

func (s *SubscriberMock[T]) OnComplete(reason CompleteReason, err error) {
	s.Called(reason, err)
}
