// Package sched is a single-threaded task queue driven by the frame loop.
//
// Callers never block: work is queued either for the next frame or for a
// point in virtual time, and the owner advances the queue with Tick once per
// frame. Every queued item returns a *Task that can be cancelled.
package sched

import (
	"container/heap"
	"time"
)

// minInterval bounds Every so a repeating task cannot spin inside one tick.
const minInterval = time.Millisecond

// Task is a handle to a queued callback.
type Task struct {
	fn       func()
	repeat   func() bool
	interval time.Duration
	due      time.Duration
	seq      uint64
	done     bool
}

// Cancel prevents the task from running again. Safe on nil and finished tasks.
func (t *Task) Cancel() {
	if t != nil {
		t.done = true
	}
}

// Done reports whether the task has run to completion or was cancelled.
func (t *Task) Done() bool {
	return t == nil || t.done
}

// Scheduler owns the frame queue and the timer queue.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	frames []*Task
	timers timerQueue
}

// New returns an empty scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual time accumulated by Tick.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// NextFrame queues fn for the next Tick.
func (s *Scheduler) NextFrame(fn func()) *Task {
	t := &Task{fn: fn}
	s.frames = append(s.frames, t)
	return t
}

// After queues fn to run once d has elapsed.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	if d < 0 {
		d = 0
	}
	t := &Task{fn: fn, due: s.now + d}
	s.push(t)
	return t
}

// Every runs fn each interval until it returns false or the task is cancelled.
// The first call happens one interval from now.
func (s *Scheduler) Every(interval time.Duration, fn func() bool) *Task {
	if interval < minInterval {
		interval = minInterval
	}
	t := &Task{repeat: fn, interval: interval, due: s.now + interval}
	s.push(t)
	return t
}

// Pending counts queued tasks that have not finished or been cancelled.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.frames {
		if !t.done {
			n++
		}
	}
	for _, t := range s.timers {
		if !t.done {
			n++
		}
	}
	return n
}

// Tick runs the frame callbacks queued before this call, then advances time
// by dt and fires every timer that becomes due, earliest first. Timers with the
// same due time fire in the order they were queued. While a timer runs, Now
// reports its due time, so timers it queues are measured from that instant and
// fire within the same tick when they fall due before its end.
func (s *Scheduler) Tick(dt time.Duration) {
	frames := s.frames
	s.frames = nil
	for _, t := range frames {
		if t.done {
			continue
		}
		t.done = true
		t.fn()
	}

	end := s.now + dt
	for len(s.timers) > 0 {
		t := s.timers[0]
		if t.due > end {
			break
		}
		heap.Pop(&s.timers)
		if t.done {
			continue
		}
		s.now = max(s.now, t.due)
		if t.repeat == nil {
			t.done = true
			t.fn()
			continue
		}
		if !t.repeat() {
			t.done = true
			continue
		}
		if !t.done {
			t.due += t.interval
			s.push(t)
		}
	}
	s.now = end
}

func (s *Scheduler) push(t *Task) {
	s.seq++
	t.seq = s.seq
	heap.Push(&s.timers, t)
}

type timerQueue []*Task

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*Task)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
