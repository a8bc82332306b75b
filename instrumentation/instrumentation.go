package instrumentation

var (
	measurer Measurer
	logger   Logger
)

func init() {
	SetMeasurer(&NilMeasurer{})
	SetLogger(&NilLogger{})
}

// SetMeasurer replaces the process wide measurer used by schedulers and operators that were not
// given one explicitly.
func SetMeasurer(provider Measurer) {
	if provider == nil {
		panic("Metrics provider must be specified")
	}

	measurer = provider
}

// SetLogger replaces the process wide logger used by schedulers and operators that were not given
// one explicitly.
func SetLogger(provider Logger) {
	if provider == nil {
		panic("Logging provider must be specified")
	}

	logger = provider
}

func Metrics() Measurer {
	return measurer
}

func Logging() Logger {
	return logger
}
