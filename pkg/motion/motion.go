// Package motion animates widget properties over bounded durations. A
// fixed-capacity pool of tweens advances on each host tick, writes the
// interpolated values back into the widget tree, and thereby marks the
// affected widgets dirty. There is no timer thread: the host controls
// time by passing elapsed durations to Tick, so tests can drive arbitrary
// deterministic time steps.
package motion

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/go-kestrel/kestrel/pkg/errors"
	"github.com/go-kestrel/kestrel/pkg/widget"
)

// Easing selects one of the closed set of easing functions: a pure mapping
// from normalized progress to eased progress.
type Easing int

const (
	// EaseLinear applies no easing.
	EaseLinear Easing = iota
	// EaseIn starts slowly and accelerates.
	EaseIn
	// EaseOut starts quickly and decelerates.
	EaseOut
	// EaseInOut starts and ends slowly.
	EaseInOut
)

// fn maps the easing id to its tween function.
func (e Easing) fn() ease.TweenFunc {
	switch e {
	case EaseIn:
		return ease.InCubic
	case EaseOut:
		return ease.OutCubic
	case EaseInOut:
		return ease.InOutCubic
	default:
		return ease.Linear
	}
}

// Handle references a live animation slot. It becomes inactive when the
// animation completes, is replaced, or its target widget dies.
type Handle struct {
	idx int32
	gen uint32
}

// animation is one pool slot.
type animation struct {
	gen        uint32
	live       bool
	target     widget.ID
	prop       widget.Property
	tween      *gween.Tween
	to         float32
	immediate  bool // zero duration: snap to target on the next tick
	onComplete func()
}

// Scheduler is a fixed-capacity pool of active animations. At most one
// live animation targets a given (widget, property) pair; starting another
// replaces it.
type Scheduler struct {
	tree  *widget.Tree
	anims []animation
	count int
}

// NewScheduler creates a scheduler writing through the given tree, with a
// fixed animation capacity. Capacities below one are raised to one.
func NewScheduler(tree *widget.Tree, capacity int) *Scheduler {
	if capacity < 1 {
		capacity = 1
	}
	return &Scheduler{
		tree:  tree,
		anims: make([]animation, capacity),
	}
}

// Len returns the number of live animations.
func (s *Scheduler) Len() int {
	return s.count
}

// Cap returns the fixed pool capacity.
func (s *Scheduler) Cap() int {
	return len(s.anims)
}

// Active reports whether the handle still references a live animation.
func (s *Scheduler) Active(h Handle) bool {
	if h.gen == 0 || h.idx < 0 || int(h.idx) >= len(s.anims) {
		return false
	}
	a := &s.anims[h.idx]
	return a.live && a.gen == h.gen
}

// Start schedules an animation of the widget's property from one value to
// another over the given duration. If an animation already targets the
// same (widget, property) pair it is replaced: last request wins and the
// replaced animation's completion callback never fires. Starting against
// a dead widget fails with an invalid-handle error; a full pool fails
// with a capacity error and leaves the pool unchanged.
//
// onComplete, if non-nil, fires on the tick that writes the final value.
func (s *Scheduler) Start(id widget.ID, prop widget.Property, from, to float32, d time.Duration, easing Easing, onComplete func()) (Handle, error) {
	const op = "motion.Scheduler.Start"

	if !s.tree.Alive(id) {
		return Handle{}, errors.InvalidHandle(op)
	}

	slot := int32(-1)
	for i := range s.anims {
		a := &s.anims[i]
		if a.live && a.target == id && a.prop == prop {
			// Replace in place, cancelling the prior animation.
			slot = int32(i)
			break
		}
		if slot == -1 && !a.live {
			slot = int32(i)
		}
	}
	if slot == -1 {
		return Handle{}, errors.Capacity(op, "animation", len(s.anims))
	}

	a := &s.anims[slot]
	if !a.live {
		s.count++
	}
	gen := a.gen + 1
	*a = animation{
		gen:        gen,
		live:       true,
		target:     id,
		prop:       prop,
		to:         to,
		onComplete: onComplete,
	}
	if d > 0 {
		a.tween = gween.New(from, to, float32(d.Seconds()), easing.fn())
	} else {
		a.immediate = true
	}
	return Handle{idx: slot, gen: gen}, nil
}

// Tick advances every live animation by the elapsed time. Each animation
// writes its interpolated value through the widget tree, which marks the
// target's rectangle dirty. An animation reaching full progress writes its
// end value exactly, fires its completion callback, and leaves the pool on
// the same tick. Animations whose target widget has been removed are
// dropped silently and never written.
func (s *Scheduler) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	seconds := float32(dt.Seconds())

	for i := range s.anims {
		a := &s.anims[i]
		if !a.live {
			continue
		}
		if !s.tree.Alive(a.target) {
			s.release(a)
			continue
		}

		if a.immediate {
			s.finish(a)
			continue
		}

		value, finished := a.tween.Update(seconds)
		if finished {
			s.finish(a)
			continue
		}
		// The target was checked above and SetProperty cannot fail on a
		// live handle.
		_ = s.tree.SetProperty(a.target, a.prop, value)
	}
}

// finish writes the exact end value, fires the completion callback, and
// frees the slot. Writing the stored target value avoids floating-point
// round-off leaving the property short of its destination.
func (s *Scheduler) finish(a *animation) {
	_ = s.tree.SetProperty(a.target, a.prop, a.to)
	done := a.onComplete
	s.release(a)
	if done != nil {
		done()
	}
}

func (s *Scheduler) release(a *animation) {
	gen := a.gen
	*a = animation{gen: gen}
	s.count--
}
