package event

import (
	"sync/atomic"

	"github.com/lixenwraith/confetti/constant"
)

// Queue carries trigger events from producers to the simulation tick.
// Any goroutine may Push (input handler, scripted bench triggers); only
// the tick goroutine Consumes. Slots carry a published flag so the
// consumer never observes a half-written event, and when producers
// outrun the consumer the ring wraps over the oldest entries rather
// than blocking the input path
type Queue struct {
	events    [constant.EventQueueSize]Event
	published [constant.EventQueueSize]atomic.Bool
	head      atomic.Uint64 // Next slot to read
	tail      atomic.Uint64 // Next slot to write
}

func NewQueue() *Queue {
	q := &Queue{}
	q.head.Store(0)
	q.tail.Store(0)
	return q
}

// Push claims a slot by CAS on the tail and marks it published once the
// event is fully written. Never blocks; a full ring drops the oldest
// unread events instead
func (q *Queue) Push(ev Event) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & constant.EventBufferMask

			q.events[idx] = ev
			// The flag flips only after the slot write completes
			q.published[idx].Store(true)

			// Pull the head forward when this write lapped unread slots
			currentHead := q.head.Load()
			if nextTail-currentHead > constant.EventQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-constant.EventQueueSize)
			}
			return
		}
	}
}

// Consume drains everything published so far, in push order. Called from
// the tick goroutine only; an in-flight Push with its flag still down
// simply waits for the next drain
func (q *Queue) Consume() []Event {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > constant.EventQueueSize {
			maxAvailable = constant.EventQueueSize
			currentHead = currentTail - constant.EventQueueSize
		}

		result := make([]Event, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & constant.EventBufferMask

			if !q.published[idx].Load() {
				break // Slot claimed but not yet written; stop here
			}

			result = append(result, q.events[idx])
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if q.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len estimates the pending event count; racy by nature, HUD use only
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > constant.EventQueueSize {
		return constant.EventQueueSize
	}
	return diff
}
