// Package event carries sensor and clock updates from producer goroutines to
// the UI thread.
package event

import (
	"sync"
	"time"

	"compass/face/gfx"
	"compass/hal"
)

// Kind identifies an event.
type Kind uint8

const (
	KindHeading Kind = iota + 1
	KindBattery
	KindTick
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindBattery:
		return "battery"
	case KindTick:
		return "tick"
	default:
		return "unknown"
	}
}

// Event is a fixed-size envelope. Only the field matching Kind is meaningful.
type Event struct {
	Kind    Kind
	Heading gfx.Heading
	Charge  hal.ChargeState
	Time    time.Time
}

// Handler consumes one event on the UI thread.
type Handler func(Event)

// DefaultSlots is the queue depth used by New when slots <= 0.
const DefaultSlots = 16

// Queue is a bounded multi-producer, single-consumer event queue. Post may
// be called from any goroutine; Dispatch runs on the UI thread.
type Queue struct {
	_ [0]func() // prevent accidental copying.

	mu      sync.Mutex
	head    uint32
	tail    uint32
	slots   []Event
	dropped uint64

	handlers [kindCount][]Handler
}

// New returns a queue holding at most slots pending events.
func New(slots int) *Queue {
	if slots <= 0 {
		slots = DefaultSlots
	}
	return &Queue{slots: make([]Event, slots)}
}

// Subscribe registers h for events of kind k. Subscribe is not safe to call
// concurrently with Dispatch.
func (q *Queue) Subscribe(k Kind, h Handler) {
	if k == 0 || k >= kindCount || h == nil {
		return
	}
	q.handlers[k] = append(q.handlers[k], h)
}

// Post enqueues ev, returning false and counting a drop when the queue is full.
func (q *Queue) Post(ev Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := uint32(len(q.slots))
	if q.head-q.tail >= n {
		q.dropped++
		return false
	}
	q.slots[q.head%n] = ev
	q.head++
	return true
}

// TryRecv dequeues one event, returning false if empty.
func (q *Queue) TryRecv() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.tail == q.head {
		return Event{}, false
	}
	n := uint32(len(q.slots))
	ev := q.slots[q.tail%n]
	q.slots[q.tail%n] = Event{}
	q.tail++
	return ev, true
}

// Dispatch drains at most limit pending events (all of them when limit <= 0)
// to their subscribers and returns how many were delivered. Events posted by
// handlers are left for the next call.
func (q *Queue) Dispatch(limit int) int {
	if limit <= 0 {
		limit = q.Len()
	}
	n := 0
	for ; n < limit; n++ {
		ev, ok := q.TryRecv()
		if !ok {
			break
		}
		if ev.Kind == 0 || ev.Kind >= kindCount {
			continue
		}
		for _, h := range q.handlers[ev.Kind] {
			h(ev)
		}
	}
	return n
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int(q.head - q.tail)
}

// Dropped returns how many events Post has rejected.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
