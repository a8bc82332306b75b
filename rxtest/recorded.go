// Package rxtest replays timed notification scripts on a virtual-time scheduler and records what a
// subscriber observes, so time dependent operators can be asserted with marble style expectations.
package rxtest

import (
	"fmt"
	"reflect"

	"github.com/ducka/go-marbles/observe"
	"github.com/ducka/go-marbles/vtime"
)

// Recorded is a notification stamped with the virtual time it was produced or observed at.
type Recorded[T any] struct {
	Time         vtime.Time
	Notification observe.Notification[T]
}

func Next[T any](time vtime.Time, value T) Recorded[T] {
	return Recorded[T]{Time: time, Notification: observe.Next(value)}
}

func Error[T any](time vtime.Time, err error) Recorded[T] {
	return Recorded[T]{Time: time, Notification: observe.Error[T](err)}
}

func Completed[T any](time vtime.Time) Recorded[T] {
	return Recorded[T]{Time: time, Notification: observe.Complete[T]()}
}

// Equal reports whether both records happened at the same time with the same notification. Errors
// are equal when they are the same error or carry the same message.
func (r Recorded[T]) Equal(other Recorded[T]) bool {
	if r.Time != other.Time || r.Notification.Kind() != other.Notification.Kind() {
		return false
	}

	switch r.Notification.Kind() {
	case observe.NextKind:
		return reflect.DeepEqual(r.Notification.Value(), other.Notification.Value())
	case observe.ErrorKind:
		a, b := r.Notification.Err(), other.Notification.Err()
		return a == b || a.Error() == b.Error()
	case observe.CompleteKind:
		return true
	default:
		panic(fmt.Sprintf("unknown notification kind %q", r.Notification.Kind()))
	}
}

func (r Recorded[T]) String() string {
	return fmt.Sprintf("%s@%d", r.Notification, r.Time)
}

// MessagesEqual compares two recordings element by element with Recorded.Equal.
func MessagesEqual[T any](expected, actual []Recorded[T]) bool {
	if len(expected) != len(actual) {
		return false
	}

	for i := range expected {
		if !expected[i].Equal(actual[i]) {
			return false
		}
	}

	return true
}
