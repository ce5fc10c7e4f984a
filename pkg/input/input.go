// Package input turns host-supplied pointer and key events into widget
// interaction state transitions, click notifications and focus movement.
//
// Events arrive through a fixed-capacity queue and are drained once per
// tick on the host thread; the core never processes input concurrently
// with its own mutation of the tree.
package input

import (
	"github.com/go-kestrel/kestrel/pkg/errors"
	"github.com/go-kestrel/kestrel/pkg/geometry"
)

// PointerEvent is a pointer sample: a position and the button state.
type PointerEvent struct {
	Pos     geometry.Point
	Pressed bool
}

// Key identifies the keys the core understands.
type Key int

const (
	// KeyNone is an unrecognized key; it is dispatched nowhere.
	KeyNone Key = iota
	// KeyTab moves focus to the next focusable widget in tree order.
	KeyTab
	// KeyEnter activates the focused widget, firing the same click
	// notification as a pointer click.
	KeyEnter
	// KeyLeft nudges a focused slider down.
	KeyLeft
	// KeyRight nudges a focused slider up.
	KeyRight
)

// KeyEvent is a key press or release.
type KeyEvent struct {
	Code    Key
	Pressed bool
}

type eventKind int

const (
	eventPointer eventKind = iota
	eventKey
)

type event struct {
	kind    eventKind
	pointer PointerEvent
	key     KeyEvent
}

// Queue is a fixed-capacity ring buffer of pending events. Producers (for
// example interrupt handlers) push into it; the tick loop drains it
// synchronously.
type Queue struct {
	buf   []event
	head  int
	count int
}

// NewQueue creates a queue with the given fixed capacity. Capacities below
// one are raised to one.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{buf: make([]event, capacity)}
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return q.count
}

// PushPointer enqueues a pointer event, failing when the queue is full.
func (q *Queue) PushPointer(ev PointerEvent) error {
	return q.push(event{kind: eventPointer, pointer: ev})
}

// PushKey enqueues a key event, failing when the queue is full.
func (q *Queue) PushKey(ev KeyEvent) error {
	return q.push(event{kind: eventKey, key: ev})
}

func (q *Queue) push(ev event) error {
	if q.count == len(q.buf) {
		return errors.Capacity("input.Queue.Push", "event", len(q.buf))
	}
	q.buf[(q.head+q.count)%len(q.buf)] = ev
	q.count++
	return nil
}

func (q *Queue) pop() (event, bool) {
	if q.count == 0 {
		return event{}, false
	}
	ev := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return ev, true
}

// Drain dispatches every queued event in arrival order.
func (q *Queue) Drain(d *Dispatcher) {
	for {
		ev, ok := q.pop()
		if !ok {
			return
		}
		switch ev.kind {
		case eventPointer:
			d.DispatchPointer(ev.pointer)
		case eventKey:
			d.DispatchKey(ev.key)
		}
	}
}
