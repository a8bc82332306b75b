package rxtest

import (
	"fmt"

	"github.com/ducka/go-marbles/vtime"
)

// Infinite marks a subscription that was never disposed.
const Infinite = vtime.MaxTime

// Subscription is one subscribe/unsubscribe pair in a hot source's log.
type Subscription struct {
	Subscribe   vtime.Time
	Unsubscribe vtime.Time
}

func Sub(subscribe, unsubscribe vtime.Time) Subscription {
	return Subscription{Subscribe: subscribe, Unsubscribe: unsubscribe}
}

// SubInfinite is a subscription that is still open.
func SubInfinite(subscribe vtime.Time) Subscription {
	return Subscription{Subscribe: subscribe, Unsubscribe: Infinite}
}

func (s Subscription) String() string {
	if s.Unsubscribe == Infinite {
		return fmt.Sprintf("(%d, Infinite)", s.Subscribe)
	}
	return fmt.Sprintf("(%d, %d)", s.Subscribe, s.Unsubscribe)
}
