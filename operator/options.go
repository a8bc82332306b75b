package operator

import (
	"github.com/ducka/go-marbles/instrumentation"
)

type operatorOptions struct {
	activity string
	logger   instrumentation.Logger
	measurer instrumentation.Measurer
}

type Option func(options *operatorOptions)

// WithActivityName sets the activity the operator logs and measures under.
func WithActivityName(activity string) Option {
	return func(options *operatorOptions) {
		options.activity = activity
	}
}

func WithLogger(logger instrumentation.Logger) Option {
	return func(options *operatorOptions) {
		options.logger = logger
	}
}

func WithMeasurer(measurer instrumentation.Measurer) Option {
	return func(options *operatorOptions) {
		options.measurer = measurer
	}
}

func newOperatorOptions(opts []Option) operatorOptions {
	options := operatorOptions{
		logger:   instrumentation.Logging(),
		measurer: instrumentation.Metrics(),
	}

	for _, opt := range opts {
		opt(&options)
	}

	return options
}
