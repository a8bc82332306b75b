package scenario

import (
	"fmt"

	"github.com/ducka/go-marbles/observe"
	"github.com/ducka/go-marbles/operator"
	"github.com/ducka/go-marbles/rxtest"
	"github.com/ducka/go-marbles/utils"
	"github.com/ducka/go-marbles/vtime"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Result is what a run observed: the subscriber's recording and every source's subscription log.
type Result struct {
	Name          string
	Messages      []rxtest.Recorded[int]
	Subscriptions map[string][]rxtest.Subscription
}

// SourceNames returns the source names in sorted order.
func (r *Result) SourceNames() []string {
	names := maps.Keys(r.Subscriptions)
	slices.Sort(names)
	return names
}

// Fingerprint renders the whole result on one line. Equal results have equal fingerprints.
func (r *Result) Fingerprint() string {
	fingerprint := rxtest.Render(r.Messages)
	for _, name := range r.SourceNames() {
		fingerprint += fmt.Sprintf(" | %s %s", name, rxtest.RenderSubscriptions(r.Subscriptions[name]))
	}
	return fingerprint
}

// Run replays the scenario on a fresh scheduler. Sources are created in sorted name order, so on
// equal times a source with a smaller name is delivered first.
func (s *Scenario) Run(options ...operator.Option) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	scheduler := rxtest.NewTestScheduler(0)

	names := maps.Keys(s.Sources)
	slices.Sort(names)

	sources := make(map[string]*rxtest.HotObservable[int], len(names))
	for _, name := range names {
		script, err := toRecorded(s.Sources[name])
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidScenario, "%q: source %q: %v", s.Name, name, err)
		}
		sources[name] = rxtest.CreateHotObservable(scheduler, script...)
	}

	op := s.operatorFunc(scheduler, sources, options)
	created, subscribed, disposed := s.timing()

	res := rxtest.StartWithTiming(scheduler, func() observe.Observable[int] {
		return op(sources[s.sourceName()])
	}, created, subscribed, disposed)

	result := &Result{
		Name:          s.Name,
		Messages:      res.Messages(),
		Subscriptions: make(map[string][]rxtest.Subscription, len(sources)),
	}
	for name, source := range sources {
		result.Subscriptions[name] = source.Subscriptions()
	}

	return result, nil
}

func (s *Scenario) operatorFunc(
	scheduler *rxtest.TestScheduler,
	sources map[string]*rxtest.HotObservable[int],
	options []operator.Option,
) operator.OperatorFunc[int, int] {
	switch s.Operator.Kind {
	case KindThrottle:
		return operator.Throttle[int](vtime.Time(s.Operator.DueTime), scheduler, options...)
	case KindSample:
		return operator.Sample[int](observe.Observable[int](sources[s.samplerName()]), options...)
	case KindSampleLatest:
		return operator.SampleLatest[int](observe.Observable[int](sources[s.samplerName()]), options...)
	default:
		panic(fmt.Sprintf("unknown operator kind %q", s.Operator.Kind))
	}
}

func (s *Scenario) timing() (created, subscribed, disposed vtime.Time) {
	t := s.Timing
	if t == nil {
		t = &Timing{}
	}

	return vtime.Time(utils.ValueOrFallback(t.Created, int64(rxtest.Created))),
		vtime.Time(utils.ValueOrFallback(t.Subscribed, int64(rxtest.Subscribed))),
		vtime.Time(utils.ValueOrFallback(t.Disposed, int64(rxtest.Disposed)))
}

func toRecorded(events []Event) ([]rxtest.Recorded[int], error) {
	recorded := make([]rxtest.Recorded[int], 0, len(events))
	for _, e := range events {
		t := vtime.Time(e.Time)
		switch {
		case e.Next != nil:
			recorded = append(recorded, rxtest.Next(t, *e.Next))
		case e.Error != "":
			recorded = append(recorded, rxtest.Error[int](t, errors.New(e.Error)))
		case e.Completed:
			recorded = append(recorded, rxtest.Completed[int](t))
		default:
			return nil, fmt.Errorf("event at %d has no notification", e.Time)
		}
	}
	return recorded, nil
}

func toEvents(recorded []rxtest.Recorded[int]) []Event {
	events := make([]Event, 0, len(recorded))
	for _, r := range recorded {
		e := Event{Time: int64(r.Time)}
		observe.Dispatch(
			r.Notification,
			func(v int) { e.Next = utils.ToPtr(v) },
			func(err error) { e.Error = err.Error() },
			func() { e.Completed = true },
		)
		events = append(events, e)
	}
	return events
}

func toSubscriptions(subscriptions []rxtest.Subscription) []Subscription {
	result := make([]Subscription, 0, len(subscriptions))
	for _, s := range subscriptions {
		sub := Subscription{Subscribe: int64(s.Subscribe)}
		if s.Unsubscribe != rxtest.Infinite {
			sub.Unsubscribe = utils.ToPtr(int64(s.Unsubscribe))
		}
		result = append(result, sub)
	}
	return result
}

func fromSubscriptions(subscriptions []Subscription) []rxtest.Subscription {
	result := make([]rxtest.Subscription, 0, len(subscriptions))
	for _, s := range subscriptions {
		if s.Unsubscribe == nil {
			result = append(result, rxtest.SubInfinite(vtime.Time(s.Subscribe)))
			continue
		}
		result = append(result, rxtest.Sub(vtime.Time(s.Subscribe), vtime.Time(*s.Unsubscribe)))
	}
	return result
}
