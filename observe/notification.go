package observe

import (
	"fmt"
)

// NotificationKind
type NotificationKind string

const (
	// NextKind indicates the next value in the sequence
	NextKind NotificationKind = "NextKind"
	// ErrorKind indicates the sequence terminated with an error
	ErrorKind NotificationKind = "ErrorKind"
	// CompleteKind indicates the sequence terminated successfully
	CompleteKind NotificationKind = "CompleteKind"
)

// Notification is one of Next(value), Error(err) or Complete. The set of kinds is closed; every
// consumer switches over Kind and treats any other kind as a programming error.
type Notification[T any] interface {
	Kind() NotificationKind
	Value() T // returns the underlying value if it's a "Next" notification
	Err() error
	IsTerminal() bool
	String() string
}

type notification[T any] struct {
	kind NotificationKind
	v    T
	err  error
}

var _ Notification[any] = (*notification[any])(nil)

func (d notification[T]) Kind() NotificationKind {
	return d.kind
}

func (d notification[T]) Value() T {
	return d.v
}

func (d notification[T]) Err() error {
	return d.err
}

func (d notification[T]) IsTerminal() bool {
	return d.kind != NextKind
}

func (d notification[T]) String() string {
	switch d.kind {
	case NextKind:
		return fmt.Sprintf("next(%v)", d.v)
	case ErrorKind:
		return fmt.Sprintf("error(%v)", d.err)
	case CompleteKind:
		return "completed"
	default:
		panic(unknownKind(d.kind))
	}
}

func Next[T any](v T) Notification[T] {
	return &notification[T]{kind: NextKind, v: v}
}

func Error[T any](err error) Notification[T] {
	if err == nil {
		panic(`"Error" expected a non nil error`)
	}
	return &notification[T]{kind: ErrorKind, err: err}
}

func Complete[T any]() Notification[T] {
	return &notification[T]{kind: CompleteKind}
}

// Dispatch calls the callback matching the notification's kind.
func Dispatch[T any](n Notification[T], onNext func(T), onError func(error), onComplete func()) {
	switch n.Kind() {
	case NextKind:
		onNext(n.Value())
	case ErrorKind:
		onError(n.Err())
	case CompleteKind:
		onComplete()
	default:
		panic(unknownKind(n.Kind()))
	}
}

func unknownKind(kind NotificationKind) string {
	return fmt.Sprintf("unknown notification kind %q", kind)
}
