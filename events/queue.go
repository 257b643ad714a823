package events

import (
	"sync/atomic"

	"github.com/lixenwraith/cants/constants"
)

// EventQueue is a lock-free MPSC ring buffer for game events
// Thread-Safety:
//   - Push: Lock-free CAS, any number of actor tasks
//   - Consume/Discard: Single consumer (main loop)
//   - Published flags prevent reading partial writes
//
// Overflow: producers never block, the oldest unread event is overwritten and counted in Dropped
type EventQueue struct {
	events    [constants.EventQueueSize]GameEvent
	published [constants.EventQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                         // Read index
	tail      atomic.Uint64                         // Write index
	dropped   atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push adds event using lock-free CAS with published flags pattern
func (eq *EventQueue) Push(event GameEvent) {
	for {
		currentTail := eq.tail.Load()
		nextTail := currentTail + 1

		if eq.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & constants.EventBufferMask

			eq.events[idx] = event
			eq.published[idx].Store(true) // MUST be after write

			// Advance head past the overwritten slot
			currentHead := eq.head.Load()
			if nextTail-currentHead > constants.EventQueueSize {
				if eq.head.CompareAndSwap(currentHead, nextTail-constants.EventQueueSize) {
					eq.dropped.Add(nextTail - constants.EventQueueSize - currentHead)
				}
			}
			return
		}
	}
}

// Consume returns all pending events in FIFO order and advances head
// A slot whose writer has not finished stops the drain; it is returned by the next call
func (eq *EventQueue) Consume() []GameEvent {
	for {
		currentHead := eq.head.Load()
		currentTail := eq.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		// A producer that lost its head CAS leaves head more than one lap behind;
		// the lapped events are gone and count as dropped once the jump commits
		start := currentHead
		maxAvailable := currentTail - currentHead
		if maxAvailable > constants.EventQueueSize {
			maxAvailable = constants.EventQueueSize
			start = currentTail - constants.EventQueueSize
		}

		// A producer lapping the reader can rewrite a slot between the published
		// check and the copy; the ring relies on the main loop draining every frame
		// so that a full lap never happens inside one Consume
		result := make([]GameEvent, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (start + i) & constants.EventBufferMask

			if !eq.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, eq.events[idx])
			eq.published[idx].Store(false)
		}

		newHead := start + uint64(len(result))
		if eq.head.CompareAndSwap(currentHead, newHead) {
			if skipped := start - currentHead; skipped > 0 {
				eq.dropped.Add(skipped)
			}
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Discard drops every pending event and returns how many were dropped
// Only valid while no producer is running (map reset)
func (eq *EventQueue) Discard() int {
	n := 0
	for {
		evs := eq.Consume()
		if len(evs) == 0 {
			return n
		}
		n += len(evs)
	}
}

// Len returns the number of unread events, including slots still being written
func (eq *EventQueue) Len() int {
	n := eq.tail.Load() - eq.head.Load()
	if n > constants.EventQueueSize {
		n = constants.EventQueueSize
	}
	return int(n)
}

// Dropped returns the total number of events overwritten before being consumed
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}
