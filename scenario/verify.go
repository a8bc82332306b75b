package scenario

import (
	"github.com/ducka/go-marbles/rxtest"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Verify compares a run against the scenario's expectations and reports the first difference as
// ErrMismatch. A scenario without expectations always verifies. When subscriptions are listed,
// every source in the run must have an entry.
func (s *Scenario) Verify(result *Result) error {
	if s.Expected == nil {
		return nil
	}

	expected, err := toRecorded(s.Expected.Messages)
	if err != nil {
		return errors.Wrapf(ErrInvalidScenario, "%q: expected messages: %v", s.Name, err)
	}

	if !rxtest.MessagesEqual(expected, result.Messages) {
		return errors.Wrapf(ErrMismatch, "%q messages\n  expected: %s\n  actual:   %s",
			s.Name, rxtest.Render(expected), rxtest.Render(result.Messages))
	}

	if s.Expected.Subscriptions == nil {
		return nil
	}

	names := maps.Keys(s.Expected.Subscriptions)
	for name := range result.Subscriptions {
		if _, ok := s.Expected.Subscriptions[name]; !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	for _, name := range names {
		expectedSubscriptions, ok := s.Expected.Subscriptions[name]
		if !ok {
			return errors.Wrapf(ErrMismatch, "%q subscriptions of %s\n  expected: none listed\n  actual:   %s",
				s.Name, name, rxtest.RenderSubscriptions(result.Subscriptions[name]))
		}

		want := fromSubscriptions(expectedSubscriptions)
		got := result.Subscriptions[name]
		if !slices.Equal(want, got) {
			return errors.Wrapf(ErrMismatch, "%q subscriptions of %s\n  expected: %s\n  actual:   %s",
				s.Name, name, rxtest.RenderSubscriptions(want), rxtest.RenderSubscriptions(got))
		}
	}

	return nil
}

// Record replaces the scenario's expectations with what the run observed.
func (s *Scenario) Record(result *Result) {
	s.Expected = &Expectation{
		Messages:      toEvents(result.Messages),
		Subscriptions: make(map[string][]Subscription, len(result.Subscriptions)),
	}

	for name, subscriptions := range result.Subscriptions {
		s.Expected.Subscriptions[name] = toSubscriptions(subscriptions)
	}
}
