package scenario

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/ducka/go-marbles/utils"
	"github.com/pkg/errors"
)

// Generate builds a random scenario for the operator kind. The same seed always yields the same
// scenario. Scripts start after the default subscription time and end before the default dispose
// time; the scenario carries no expectations.
func Generate(seed uint64, kind string) (*Scenario, error) {
	faker := gofakeit.New(seed)

	s := &Scenario{
		Name:     fmt.Sprintf("%s %s (seed %d)", kind, faker.Adjective(), seed),
		Operator: Operator{Kind: kind},
		Sources:  map[string][]Event{},
	}

	switch kind {
	case KindThrottle:
		s.Operator.DueTime = int64(faker.Number(5, 50))
		s.Sources[SourceName] = randomEvents(faker, 150, 800, faker.Number(3, 15), 1, 40)
	case KindSample, KindSampleLatest:
		s.Sources[SourceName] = randomEvents(faker, 150, 700, faker.Number(3, 15), 1, 40)
		s.Sources[SamplerName] = randomEvents(faker, 150, 900, faker.Number(2, 10), 10, 60)
	default:
		return nil, errors.Wrapf(ErrInvalidScenario, "unknown operator kind %q, expected one of %v", kind, Kinds)
	}

	return s, s.Validate()
}

// randomEvents returns up to count values at strictly increasing times within [from, to), each gap
// drawn from [minGap, maxGap], followed by a completion, an error or nothing.
func randomEvents(faker *gofakeit.Faker, from, to, count, minGap, maxGap int) []Event {
	events := make([]Event, 0, count+1)

	t := from
	for i := 0; i < count; i++ {
		t += faker.Number(minGap, maxGap)
		if t >= to {
			break
		}
		events = append(events, Event{Time: int64(t), Next: utils.ToPtr(faker.Number(0, 99))})
	}

	end := Event{Time: int64(t + faker.Number(minGap, maxGap))}
	switch faker.Number(0, 5) {
	case 0:
		end.Error = faker.Verb() + " failed"
	case 1:
		return events
	default:
		end.Completed = true
	}

	return append(events, end)
}
