// Package region accumulates the minimal set of screen rectangles that
// changed since the last draw pass. The tracker never under-reports
// changed area: when its fixed capacity would be exceeded it coalesces
// the whole set into one bounding rectangle, trading redraw efficiency
// for correctness.
package region

import (
	"github.com/go-kestrel/kestrel/pkg/geometry"
)

// Tracker is a fixed-capacity dirty rectangle set, cleared every frame by
// Take. It performs no pixel comparison; callers tell it what changed.
type Tracker struct {
	bounds geometry.Rect
	rects  []geometry.Rect
	full   bool
}

// NewTracker creates a tracker for a screen of the given bounds with a
// fixed rectangle capacity. Capacities below one are raised to one.
func NewTracker(bounds geometry.Rect, capacity int) *Tracker {
	if capacity < 1 {
		capacity = 1
	}
	return &Tracker{
		bounds: bounds,
		rects:  make([]geometry.Rect, 0, capacity),
	}
}

// Bounds returns the screen rectangle the tracker clips to.
func (t *Tracker) Bounds() geometry.Rect {
	return t.bounds
}

// Len returns the number of pending rectangles. A forced full redraw
// counts as one.
func (t *Tracker) Len() int {
	if t.full {
		return 1
	}
	return len(t.rects)
}

// MarkRect adds a changed rectangle. The rect is clipped to the screen
// bounds; empty results are dropped. A rect that intersects or touches an
// existing entry merges into it. When the set is at capacity, the whole
// set coalesces into its bounding rectangle, so no area is ever dropped.
func (t *Tracker) MarkRect(r geometry.Rect) {
	if t.full {
		return
	}
	r = r.Intersect(t.bounds)
	if r.IsEmpty() {
		return
	}

	// Merge into the first touching entry, then fold any entries the
	// grown rect now touches.
	for i := range t.rects {
		if t.rects[i].Touches(r) {
			t.rects[i] = t.rects[i].Union(r)
			t.foldFrom(i)
			return
		}
	}

	if len(t.rects) == cap(t.rects) {
		t.coalesce(r)
		return
	}
	t.rects = append(t.rects, r)
}

// foldFrom repeatedly merges entries that touch the entry at i, which may
// have grown past its neighbors.
func (t *Tracker) foldFrom(i int) {
	for {
		merged := false
		for j := len(t.rects) - 1; j > i; j-- {
			if t.rects[i].Touches(t.rects[j]) {
				t.rects[i] = t.rects[i].Union(t.rects[j])
				t.rects[j] = t.rects[len(t.rects)-1]
				t.rects = t.rects[:len(t.rects)-1]
				merged = true
			}
		}
		if !merged {
			return
		}
	}
}

// coalesce replaces the whole set with the bounding rectangle of every
// pending entry plus r.
func (t *Tracker) coalesce(r geometry.Rect) {
	box := r
	for _, entry := range t.rects {
		box = box.Union(entry)
	}
	t.rects = t.rects[:1]
	t.rects[0] = box
}

// ForceFull marks the entire screen dirty, discarding the finer-grained
// set. Used for the first frame and theme swaps.
func (t *Tracker) ForceFull() {
	t.full = true
	t.rects = t.rects[:0]
}

// Take drains the pending set into dst and resets the tracker for the
// next frame. The returned slice aliases dst's backing array when it has
// capacity, so a caller-owned buffer avoids per-frame allocation. A forced
// full redraw yields exactly the screen rectangle.
func (t *Tracker) Take(dst []geometry.Rect) []geometry.Rect {
	dst = dst[:0]
	if t.full {
		t.full = false
		if !t.bounds.IsEmpty() {
			dst = append(dst, t.bounds)
		}
		return dst
	}
	dst = append(dst, t.rects...)
	t.rects = t.rects[:0]
	return dst
}
