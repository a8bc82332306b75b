// Package scenario runs marble scenarios described in YAML files through the virtual-time harness.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidScenario is returned for scenario files that cannot be run.
	ErrInvalidScenario = errors.New("invalid scenario")
	// ErrMismatch is returned when a run does not match the scenario's expectations.
	ErrMismatch = errors.New("scenario mismatch")
)

// Operator kinds a scenario can exercise.
const (
	KindThrottle     = "throttle"
	KindSample       = "sample"
	KindSampleLatest = "sampleLatest"
)

// Kinds lists every supported operator kind.
var Kinds = []string{KindThrottle, KindSample, KindSampleLatest}

// Default source names.
const (
	SourceName  = "xs"
	SamplerName = "ys"
)

// Scenario is a marble test: timed scripts for one or more hot sources, the operator applied to
// them, and optionally the expected recording.
type Scenario struct {
	Name     string             `yaml:"name"`
	Operator Operator           `yaml:"operator"`
	Sources  map[string][]Event `yaml:"sources"`
	Timing   *Timing            `yaml:"timing,omitempty"`
	Expected *Expectation       `yaml:"expected,omitempty"`
}

type Operator struct {
	Kind    string `yaml:"kind"`
	DueTime int64  `yaml:"dueTime,omitempty"`
	// Source and Sampler name the sources the operator reads; they default to xs and ys.
	Source  string `yaml:"source,omitempty"`
	Sampler string `yaml:"sampler,omitempty"`
}

// Event is one entry of a script or recording. Exactly one of Next, Error or Completed is set.
type Event struct {
	Time      int64  `yaml:"time" json:"time"`
	Next      *int   `yaml:"next,omitempty" json:"next,omitempty"`
	Error     string `yaml:"error,omitempty" json:"error,omitempty"`
	Completed bool   `yaml:"completed,omitempty" json:"completed,omitempty"`
}

// Timing overrides the harness defaults of create at 100, subscribe at 200 and dispose at 1000.
type Timing struct {
	Created    *int64 `yaml:"created,omitempty"`
	Subscribed *int64 `yaml:"subscribed,omitempty"`
	Disposed   *int64 `yaml:"disposed,omitempty"`
}

type Expectation struct {
	Messages      []Event                   `yaml:"messages"`
	Subscriptions map[string][]Subscription `yaml:"subscriptions,omitempty"`
}

// Subscription is a subscription log entry. A nil Unsubscribe means the subscription was never
// disposed.
type Subscription struct {
	Subscribe   int64  `yaml:"subscribe" json:"subscribe"`
	Unsubscribe *int64 `yaml:"unsubscribe,omitempty" json:"unsubscribe,omitempty"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read scenario file")
	}

	s, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}

	return s, nil
}

// Parse decodes a scenario, rejecting unknown fields, and validates it.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, errors.Wrapf(ErrInvalidScenario, "failed to parse YAML: %v", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Marshal encodes the scenario as YAML.
func Marshal(s *Scenario) ([]byte, error) {
	buf := &bytes.Buffer{}
	encoder := yaml.NewEncoder(buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(s); err != nil {
		return nil, errors.Wrap(err, "failed to encode scenario")
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to encode scenario")
	}
	return buf.Bytes(), nil
}

// Validate checks the scenario can be run.
func (s *Scenario) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return errors.Wrapf(ErrInvalidScenario, "%q: %s", s.Name, fmt.Sprintf(format, args...))
	}

	if s.Name == "" {
		return invalid("name is required")
	}

	switch s.Operator.Kind {
	case KindThrottle:
		if s.Operator.DueTime < 0 {
			return invalid("dueTime must not be negative")
		}
	case KindSample, KindSampleLatest:
		if _, ok := s.Sources[s.samplerName()]; !ok {
			return invalid("sampler source %q is not defined", s.samplerName())
		}
	default:
		return invalid("unknown operator kind %q, expected one of %v", s.Operator.Kind, Kinds)
	}

	if _, ok := s.Sources[s.sourceName()]; !ok {
		return invalid("source %q is not defined", s.sourceName())
	}

	created, subscribed, disposed := s.timing()
	if created < 0 || subscribed < created || disposed < subscribed {
		return invalid("timing must satisfy 0 <= created <= subscribed <= disposed")
	}

	for name, events := range s.Sources {
		if err := validateEvents(events); err != nil {
			return invalid("source %q: %v", name, err)
		}
	}

	if s.Expected != nil {
		if err := validateEvents(s.Expected.Messages); err != nil {
			return invalid("expected messages: %v", err)
		}
		for name := range s.Expected.Subscriptions {
			if _, ok := s.Sources[name]; !ok {
				return invalid("expected subscriptions for undefined source %q", name)
			}
		}
	}

	return nil
}

func validateEvents(events []Event) error {
	for i, e := range events {
		kinds := 0
		if e.Next != nil {
			kinds++
		}
		if e.Error != "" {
			kinds++
		}
		if e.Completed {
			kinds++
		}
		if kinds != 1 {
			return fmt.Errorf("event %d at %d must set exactly one of next, error or completed", i, e.Time)
		}
		if e.Time < 0 {
			return fmt.Errorf("event %d has a negative time", i)
		}
	}
	return nil
}

func (s *Scenario) sourceName() string {
	if s.Operator.Source != "" {
		return s.Operator.Source
	}
	return SourceName
}

func (s *Scenario) samplerName() string {
	if s.Operator.Sampler != "" {
		return s.Operator.Sampler
	}
	return SamplerName
}
