/*
   RV32 - Cycle based event scheduler.

   Copyright (c) 2025, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   RICHARD CORNWELL BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

// Package event schedules callbacks a number of CPU cycles in the
// future. Events are kept in a delta list: each entry holds the
// cycles remaining after the one before it, so advancing time only
// touches the head.
package event

// Callback runs when an event comes due.
type Callback = func(iarg int)

type eventEntry struct {
	time int // Number of cycles after the previous entry.
	cb   Callback
	iarg int
	prev *eventEntry
	next *eventEntry
}

// Scheduler is one ordered event queue. The zero value is an empty
// queue.
type Scheduler struct {
	head *eventEntry
	tail *eventEntry
}

// Add schedules cb to run after time cycles. A time of zero runs the
// callback immediately.
func (s *Scheduler) Add(cb Callback, time int, iarg int) {
	if time == 0 {
		cb(iarg)
		return
	}

	ev := &eventEntry{cb: cb, time: time, iarg: iarg}

	// If empty put on head.
	if s.head == nil {
		s.head = ev
		s.tail = ev
		return
	}

	// Scan for place to install it.
	for evptr := s.head; evptr != nil; evptr = evptr.next {
		if ev.time <= evptr.time {
			// Splice before evptr, taking our delta out of it.
			evptr.time -= ev.time
			ev.prev = evptr.prev
			ev.next = evptr
			evptr.prev = ev
			if ev.prev != nil {
				ev.prev.next = ev
			} else {
				s.head = ev
			}
			return
		}
		ev.time -= evptr.time
	}

	// Later than everything queued; append.
	ev.prev = s.tail
	s.tail.next = ev
	s.tail = ev
}

// Advance moves time forward by cycles, running every event that
// comes due. Callbacks may schedule new events.
func (s *Scheduler) Advance(cycles int) {
	for cycles > 0 {
		if s.head == nil {
			return
		}
		step := cycles
		if s.head.time < step {
			step = s.head.time
		}
		s.head.time -= step
		cycles -= step

		for s.head != nil && s.head.time == 0 {
			ev := s.head
			s.head = ev.next
			if s.head != nil {
				s.head.prev = nil
			} else {
				s.tail = nil
			}
			ev.cb(ev.iarg)
		}
	}
}

// Pending reports whether any event is queued.
func (s *Scheduler) Pending() bool {
	return s.head != nil
}
