package scenario

import (
	"context"
	"time"

	"github.com/ducka/go-marbles/store"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const baselineKeyPrefix = "marbles:baseline:"

// BaselineRecord is the stored outcome of the last run of a scenario.
type BaselineRecord struct {
	RunID       string    `json:"runId"`
	Name        string    `json:"name"`
	Fingerprint string    `json:"fingerprint"`
	RecordedAt  time.Time `json:"recordedAt"`
}

// Comparison is the outcome of checking a run against its baseline.
type Comparison struct {
	RunID    string
	Previous *BaselineRecord
	Drifted  bool
	Current  string
}

// Baseline compares runs of a scenario with the previously recorded run, so nondeterminism or
// behaviour changes between builds show up as drift.
type Baseline struct {
	store   store.StateStore[BaselineRecord]
	options []store.StoreOption
	now     func() time.Time
}

func NewBaseline(st store.StateStore[BaselineRecord], options ...store.StoreOption) *Baseline {
	if st == nil {
		panic(`"NewBaseline" expected store`)
	}

	return &Baseline{
		store:   st,
		options: options,
		now:     time.Now,
	}
}

// Check compares the result with the stored baseline for the scenario, then records the result as
// the new baseline under a fresh run id.
func (b *Baseline) Check(ctx context.Context, result *Result) (*Comparison, error) {
	key := baselineKeyPrefix + result.Name

	entries, err := b.store.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read baseline %q", result.Name)
	}

	comparison := &Comparison{
		RunID:   uuid.NewString(),
		Current: result.Fingerprint(),
	}

	entry := store.StateEntry[BaselineRecord]{Key: key}
	if len(entries) > 0 {
		entry.Timestamp = entries[0].Timestamp
		comparison.Previous = entries[0].State
		comparison.Drifted = entries[0].State != nil && entries[0].State.Fingerprint != comparison.Current
	}

	entry.State = &BaselineRecord{
		RunID:       comparison.RunID,
		Name:        result.Name,
		Fingerprint: comparison.Current,
		RecordedAt:  b.now().UTC(),
	}

	if err := b.store.Set(ctx, []store.StateEntry[BaselineRecord]{entry}, b.options...); err != nil {
		return nil, errors.Wrapf(err, "failed to record baseline %q", result.Name)
	}

	return comparison, nil
}
