// Package frame provides the "run this before the next repaint" capability
// the wisp loop is driven by.
//
// Queue is pumped by a host that already has a frame loop (the Ebiten game).
// Timer is the fallback for hosts without one and approximates 60 calls per
// second.
package frame

import (
	"sync"
	"time"
)

// ID identifies a pending frame request. The zero ID is never issued.
type ID uint64

// Callback receives the timestamp of the frame it runs in.
type Callback func(now time.Time)

// Scheduler requests and cancels single-shot frame callbacks.
type Scheduler interface {
	RequestFrame(cb Callback) ID
	CancelFrame(id ID)
}

type request struct {
	id ID
	cb Callback
}

// Queue holds callbacks until the host calls Flush.
type Queue struct {
	mu       sync.Mutex
	next     ID
	pending  []request
	flushing []request
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) RequestFrame(cb Callback) ID {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.next++
	q.pending = append(q.pending, request{id: q.next, cb: cb})
	return q.next
}

// CancelFrame drops a pending callback, including one that belongs to a
// flush in progress but has not run yet.
func (q *Queue) CancelFrame(id ID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.pending {
		if q.pending[i].id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for i := range q.flushing {
		if q.flushing[i].id == id {
			q.flushing[i].cb = nil
			return
		}
	}
}

// Flush runs the callbacks that were pending when it was called, in request
// order. Callbacks requested while flushing wait for the next Flush.
// It returns the number of callbacks run.
func (q *Queue) Flush(now time.Time) int {
	q.mu.Lock()
	q.flushing, q.pending = q.pending, nil
	q.mu.Unlock()

	ran := 0
	for i := 0; ; i++ {
		q.mu.Lock()
		if i >= len(q.flushing) {
			q.flushing = nil
			q.mu.Unlock()
			return ran
		}
		cb := q.flushing[i].cb
		q.mu.Unlock()

		if cb == nil {
			continue
		}
		cb(now)
		ran++
	}
}

// Len reports the number of pending callbacks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Timer schedules callbacks on time.AfterFunc, spacing them Interval apart.
// Callbacks never overlap.
type Timer struct {
	Interval time.Duration

	mu     sync.Mutex
	run    sync.Mutex
	now    func() time.Time
	last   time.Time
	next   ID
	timers map[ID]*time.Timer
}

func NewTimer(interval time.Duration) *Timer {
	return &Timer{
		Interval: interval,
		now:      time.Now,
		timers:   make(map[ID]*time.Timer),
	}
}

// delay returns how long to wait so frames stay Interval apart.
func (t *Timer) delay(now time.Time) time.Duration {
	d := t.Interval - now.Sub(t.last)
	if d < 0 {
		return 0
	}
	return d
}

func (t *Timer) RequestFrame(cb Callback) ID {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	d := t.delay(now)
	stamp := now.Add(d)
	t.last = stamp

	t.next++
	id := t.next
	t.timers[id] = time.AfterFunc(d, func() {
		t.mu.Lock()
		_, ok := t.timers[id]
		delete(t.timers, id)
		t.mu.Unlock()
		if !ok {
			return
		}

		t.run.Lock()
		defer t.run.Unlock()
		cb(stamp)
	})
	return id
}

func (t *Timer) CancelFrame(id ID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tm, ok := t.timers[id]; ok {
		tm.Stop()
		delete(t.timers, id)
	}
}

// Pending reports the number of scheduled callbacks that have not fired.
func (t *Timer) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}
