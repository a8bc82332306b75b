package vtime

import (
	"github.com/ducka/go-marbles/instrumentation"
)

type schedulerOptions struct {
	logger   instrumentation.Logger
	measurer instrumentation.Measurer
	activity string
}

func newSchedulerOptions() schedulerOptions {
	return schedulerOptions{
		logger:   instrumentation.Logging(),
		measurer: instrumentation.Metrics(),
		activity: "scheduler",
	}
}

type Option func(options *schedulerOptions)

func WithLogger(logger instrumentation.Logger) Option {
	return func(options *schedulerOptions) {
		options.logger = logger
	}
}

func WithMeasurer(measurer instrumentation.Measurer) Option {
	return func(options *schedulerOptions) {
		options.measurer = measurer
	}
}

// WithActivityName sets the activity name the scheduler logs and measures under.
func WithActivityName(activity string) Option {
	return func(options *schedulerOptions) {
		options.activity = activity
	}
}
