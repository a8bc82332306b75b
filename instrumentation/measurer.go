package instrumentation

type Measurer interface {
	Incr(activity string, name string, value float64, tags ...string)
}

type NilMeasurer struct{}

func (*NilMeasurer) Incr(activity string, name string, value float64, tags ...string) {}

// CountingMeasurer keeps running totals per activity and metric name. It is intended for tests and
// for the CLI summary, both of which run on a single goroutine.
type CountingMeasurer struct {
	counts map[string]float64
}

func NewCountingMeasurer() *CountingMeasurer {
	return &CountingMeasurer{counts: make(map[string]float64)}
}

func (c *CountingMeasurer) Incr(activity string, name string, value float64, tags ...string) {
	c.counts[activity+"."+name] += value
}

// Count returns the total recorded for the metric name under the activity.
func (c *CountingMeasurer) Count(activity string, name string) float64 {
	return c.counts[activity+"."+name]
}
