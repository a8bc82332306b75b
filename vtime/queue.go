package vtime

import (
	"container/heap"
)

// Item is an action scheduled on a Scheduler. Disposing an item before it runs cancels it.
type Item struct {
	due      Time
	seq      uint64
	action   func()
	disposed bool
	index    int
}

// Due returns the virtual time the action is scheduled for.
func (i *Item) Due() Time {
	return i.due
}

// Dispose cancels the action. A cancelled action is skipped when its time comes.
func (i *Item) Dispose() {
	i.disposed = true
}

func (i *Item) IsDisposed() bool {
	return i.disposed
}

// actionQueue is a min-heap keyed on (due, seq).
type actionQueue []*Item

var _ heap.Interface = (*actionQueue)(nil)

func (q actionQueue) Len() int { return len(q) }

func (q actionQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q actionQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *actionQueue) Push(x any) {
	item := x.(*Item)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *actionQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

func (q actionQueue) peek() *Item {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}
