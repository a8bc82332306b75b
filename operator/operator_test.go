package operator

import (
	"testing"

	"github.com/ducka/go-marbles/observe"
	"github.com/ducka/go-marbles/rxtest"
	"github.com/stretchr/testify/mock"
)

type LoggerMock struct {
	mock.Mock
}

func (l *LoggerMock) Debug(activity string, message string) {
	l.Called(activity, message)
}

func (l *LoggerMock) Error(activity string, message string) {
	l.Called(activity, message)
}

func (l *LoggerMock) Info(activity string, message string) {
	l.Called(activity, message)
}

func (l *LoggerMock) Warn(activity string, message string) {
	l.Called(activity, message)
}

func TestOperatorLogging(t *testing.T) {
	t.Run("When a throttled source completes", func(t *testing.T) {
		logger := &LoggerMock{}
		logger.On("Debug", "Throttle", "completed").Return().Once()

		scheduler := rxtest.NewTestScheduler(0)
		xs := rxtest.CreateHotObservable(scheduler, next(210, 1), completed(250))

		throttled(scheduler, xs, 10, WithLogger(logger))

		t.Run("Then the completion should be logged under the operator's activity", func(t *testing.T) {
			logger.AssertExpectations(t)
		})
	})

	t.Run("When a sampled source fails", func(t *testing.T) {
		logger := &LoggerMock{}
		logger.On("Debug", "quotes", "failed: error").Return().Once()

		f := newSamplingFixture([]R{failed(210)}, []R{next(220, 0)})
		f.start(sampleOp(WithLogger(logger), WithActivityName("quotes")))

		t.Run("Then the failure should be logged under the configured activity", func(t *testing.T) {
			logger.AssertExpectations(t)
		})
	})
}

func TestCompose(t *testing.T) {
	t.Run("When composing two throttles", func(t *testing.T) {
		scheduler := rxtest.NewTestScheduler(0)
		xs := rxtest.CreateHotObservable(scheduler, next(210, 1), next(215, 2), completed(300))

		res := rxtest.Start(scheduler, func() observe.Observable[int] {
			return Compose(Throttle[int](10, scheduler), Throttle[int](10, scheduler))(xs)
		})

		t.Run("Then the due times should add up", func(t *testing.T) {
			rxtest.AssertMessages(t, []R{next(235, 2), completed(300)}, res.Messages())
		})
	})
}
