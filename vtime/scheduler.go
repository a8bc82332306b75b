package vtime

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrScheduledInPast is returned when an action is scheduled before the scheduler's current time.
	ErrScheduledInPast = errors.New("action scheduled in the past")
	// ErrAlreadyRunning is returned when Run or AdvanceTo is invoked from inside a running action.
	ErrAlreadyRunning = errors.New("scheduler is already running")
)

// Scheduler owns a virtual clock and a queue of actions. Actions run one at a time on the caller's
// goroutine; actions with equal due times run in the order they were scheduled.
type Scheduler struct {
	opts    schedulerOptions
	now     Time
	seq     uint64
	queue   actionQueue
	running bool
	stopped bool
}

func NewScheduler(initialClock Time, options ...Option) *Scheduler {
	opts := newSchedulerOptions()
	for _, opt := range options {
		opt(&opts)
	}

	return &Scheduler{
		opts:  opts,
		now:   initialClock,
		queue: make(actionQueue, 0),
	}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() Time {
	return s.now
}

// Pending returns the number of queued actions, including cancelled ones not yet discarded.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// ScheduleAt enqueues the action to run at the due time.
func (s *Scheduler) ScheduleAt(due Time, action func()) (*Item, error) {
	if action == nil {
		panic(`"ScheduleAt" expected action func`)
	}

	if due < s.now {
		err := errors.Wrapf(ErrScheduledInPast, "due %d is before now %d", due, s.now)
		s.opts.logger.Error(s.opts.activity, err.Error())
		return nil, err
	}

	s.seq++
	item := &Item{
		due:    due,
		seq:    s.seq,
		action: action,
	}
	heap.Push(&s.queue, item)

	return item, nil
}

// ScheduleAfter enqueues the action to run delay ticks after the current time.
func (s *Scheduler) ScheduleAfter(delay Time, action func()) (*Item, error) {
	if delay < 0 {
		return nil, errors.Wrapf(ErrScheduledInPast, "negative delay %d", delay)
	}

	return s.ScheduleAt(s.now+delay, action)
}

// MustScheduleAt is ScheduleAt for callers that treat scheduling into the past as a programming
// error.
func (s *Scheduler) MustScheduleAt(due Time, action func()) *Item {
	item, err := s.ScheduleAt(due, action)
	if err != nil {
		panic(err)
	}
	return item
}

// Run executes queued actions until the queue is empty, Stop is called, or the context is done.
func (s *Scheduler) Run(ctx context.Context) error {
	_, err := s.runUntil(ctx, MaxTime)
	return err
}

// RunToEnd executes queued actions until the queue is empty or Stop is called.
func (s *Scheduler) RunToEnd() {
	if err := s.Run(context.Background()); err != nil {
		panic(err)
	}
}

// AdvanceTo executes every action due at or before target and then moves the clock to target.
func (s *Scheduler) AdvanceTo(target Time) error {
	if target < s.now {
		return errors.Wrapf(ErrScheduledInPast, "cannot advance to %d, now %d", target, s.now)
	}

	stopped, err := s.runUntil(context.Background(), target)
	if err != nil {
		return err
	}

	if !stopped {
		s.now = target
	}

	return nil
}

// Stop halts a running scheduler once the current action returns. Called while idle, it makes the
// next Run or AdvanceTo return before executing anything. Each stop is consumed by one run.
func (s *Scheduler) Stop() {
	s.stopped = true
}

func (s *Scheduler) runUntil(ctx context.Context, limit Time) (bool, error) {
	if s.running {
		return false, ErrAlreadyRunning
	}

	s.running = true
	defer func() {
		s.running = false
	}()

	for !s.stopped {
		select {
		case <-ctx.Done():
			return false, errors.WithMessage(ctx.Err(), fmt.Sprintf("scheduler interrupted at %d", s.now))
		default:
		}

		item := s.next(limit)
		if item == nil {
			return false, nil
		}

		if item.due > s.now {
			s.now = item.due
		}

		item.action()
		item.disposed = true
		s.opts.measurer.Incr(s.opts.activity, "action_executed", 1)
	}

	s.opts.logger.Debug(s.opts.activity, fmt.Sprintf("stopped at %d with %d pending actions", s.now, s.queue.Len()))
	s.stopped = false

	return true, nil
}

// next pops the earliest live action due at or before limit, discarding cancelled ones.
func (s *Scheduler) next(limit Time) *Item {
	for {
		top := s.queue.peek()
		if top == nil {
			return nil
		}

		if top.disposed {
			heap.Pop(&s.queue)
			s.opts.measurer.Incr(s.opts.activity, "action_cancelled", 1)
			continue
		}

		if top.due > limit {
			return nil
		}

		return heap.Pop(&s.queue).(*Item)
	}
}
