package widget

import (
	"github.com/go-kestrel/kestrel/pkg/errors"
	"github.com/go-kestrel/kestrel/pkg/geometry"
	"github.com/go-kestrel/kestrel/pkg/theme"
)

// DirtySink receives the rectangles the tree knows to have changed.
// Typically backed by the dirty-region tracker.
type DirtySink interface {
	MarkRect(geometry.Rect)
}

const noSlot = int32(-1)

// slot is one arena entry. Links are plain indexes, not references, so the
// tree cannot form ownership cycles.
type slot struct {
	gen      uint32
	live     bool
	nextFree int32

	parent      int32
	firstChild  int32
	nextSibling int32

	kind   Kind
	sizing Sizing
	axis   Axis

	rect           geometry.Rect
	lastConstraint geometry.Rect
	needsLayout    bool
	laidOut        bool

	state    State
	focused  bool
	disabled bool

	text     string
	value    float32
	checked  bool
	onClick  func()
	onChange func(float32)

	offsetX float32
	offsetY float32
	opacity float32
}

// Tree is a fixed-capacity arena of widget records. It is built at startup,
// mutated in place, and never reallocates. All mutation happens on the
// single host tick loop; the tree performs no locking.
type Tree struct {
	slots []slot
	free  int32
	count int
	root  ID
	reg   *theme.Registry
	sink  DirtySink
}

// NewTree creates a tree that can hold capacity widgets. The tree owns an
// implicit root container (a fill-sized column) in a slot of its own, so
// the full capacity is available for Add. Capacities below one are raised
// to one. The registry supplies the font and metrics used to measure
// content-sized widgets; nil selects a default light-theme registry.
func NewTree(capacity int, reg *theme.Registry) *Tree {
	if capacity < 1 {
		capacity = 1
	}
	if reg == nil {
		reg = theme.NewRegistry(nil)
	}
	t := &Tree{
		slots: make([]slot, capacity+1),
		free:  noSlot,
		reg:   reg,
	}
	// Slot 0 is reserved for the root; chain the rest into the freelist.
	for i := capacity; i >= 1; i-- {
		t.slots[i].nextFree = t.free
		t.slots[i].parent = noSlot
		t.slots[i].firstChild = noSlot
		t.slots[i].nextSibling = noSlot
		t.free = int32(i)
	}

	rootSlot := &t.slots[0]
	rootSlot.gen = 1
	rootSlot.live = true
	rootSlot.parent = noSlot
	rootSlot.firstChild = noSlot
	rootSlot.nextSibling = noSlot
	rootSlot.kind = KindContainer
	rootSlot.sizing = Fill()
	rootSlot.opacity = 1
	rootSlot.needsLayout = true
	t.count = 1
	t.root = ID{idx: 0, gen: 1}
	return t
}

// Root returns the handle of the implicit root container.
func (t *Tree) Root() ID {
	return t.root
}

// Len returns the number of live widgets, including the root.
func (t *Tree) Len() int {
	return t.count
}

// Cap returns the fixed widget capacity, not counting the root.
func (t *Tree) Cap() int {
	return len(t.slots) - 1
}

// SetDirtySink installs the sink that receives changed rectangles.
func (t *Tree) SetDirtySink(sink DirtySink) {
	t.sink = sink
}

// Alive reports whether the handle refers to a live slot with a matching
// generation.
func (t *Tree) Alive(id ID) bool {
	return t.lookup(id) != nil
}

// lookup resolves a handle to its slot, or nil for stale and invalid
// handles. Stale handles are never followed.
func (t *Tree) lookup(id ID) *slot {
	if id.gen == 0 || id.idx < 0 || int(id.idx) >= len(t.slots) {
		return nil
	}
	s := &t.slots[id.idx]
	if !s.live || s.gen != id.gen {
		return nil
	}
	return s
}

// Add creates a widget as the last child of parent, placing it above its
// earlier siblings in draw order. The tree is left unchanged when the
// arena is full or the parent handle is stale.
func (t *Tree) Add(parent ID, kind Kind, sizing Sizing) (ID, error) {
	const op = "widget.Tree.Add"

	p := t.lookup(parent)
	if p == nil {
		return ID{}, errors.InvalidHandle(op)
	}
	if t.free == noSlot {
		return ID{}, errors.Capacity(op, "widget", len(t.slots)-1)
	}

	idx := t.free
	s := &t.slots[idx]
	t.free = s.nextFree

	gen := s.gen + 1
	*s = slot{
		gen:         gen,
		live:        true,
		nextFree:    noSlot,
		parent:      parent.idx,
		firstChild:  noSlot,
		nextSibling: noSlot,
		kind:        kind,
		sizing:      sizing,
		opacity:     1,
		needsLayout: true,
	}

	// Append to the end of the sibling chain: later siblings draw on top.
	if p.firstChild == noSlot {
		p.firstChild = idx
	} else {
		last := p.firstChild
		for t.slots[last].nextSibling != noSlot {
			last = t.slots[last].nextSibling
		}
		t.slots[last].nextSibling = idx
	}

	t.count++
	t.requestLayout(parent.idx)
	return ID{idx: idx, gen: gen}, nil
}

// Remove deletes the widget and its whole subtree, invalidating every
// handle into it and freeing the slots for reuse. The root container
// cannot be removed.
func (t *Tree) Remove(id ID) error {
	const op = "widget.Tree.Remove"

	s := t.lookup(id)
	if s == nil || id == t.root {
		return errors.InvalidHandle(op)
	}

	// Unlink from the parent's sibling chain.
	p := &t.slots[s.parent]
	if p.firstChild == id.idx {
		p.firstChild = s.nextSibling
	} else {
		prev := p.firstChild
		for t.slots[prev].nextSibling != id.idx {
			prev = t.slots[prev].nextSibling
		}
		t.slots[prev].nextSibling = s.nextSibling
	}

	parentIdx := s.parent
	t.freeSubtree(id.idx)
	t.requestLayout(parentIdx)
	return nil
}

// freeSubtree releases idx and all its descendants depth-first.
func (t *Tree) freeSubtree(idx int32) {
	s := &t.slots[idx]
	child := s.firstChild
	for child != noSlot {
		next := t.slots[child].nextSibling
		t.freeSubtree(child)
		child = next
	}

	t.markRect(t.screenRectAt(idx))

	gen := s.gen + 1
	*s = slot{
		gen:         gen,
		live:        false,
		parent:      noSlot,
		firstChild:  noSlot,
		nextSibling: noSlot,
		nextFree:    t.free,
	}
	t.free = idx
	t.count--
}

// InvalidateLayout forces the next ResolveLayout to recompute every widget
// from scratch. Needed when something layout reads from outside the tree,
// like theme metrics, has changed.
func (t *Tree) InvalidateLayout() {
	for i := range t.slots {
		if t.slots[i].live {
			t.slots[i].needsLayout = true
			t.slots[i].laidOut = false
		}
	}
}

// Parent returns the handle of the widget's parent, or the zero handle for
// the root and for stale handles.
func (t *Tree) Parent(id ID) ID {
	s := t.lookup(id)
	if s == nil || s.parent == noSlot {
		return ID{}
	}
	return t.handleAt(s.parent)
}

// FirstChild returns the widget's first child handle, or the zero handle.
func (t *Tree) FirstChild(id ID) ID {
	s := t.lookup(id)
	if s == nil || s.firstChild == noSlot {
		return ID{}
	}
	return t.handleAt(s.firstChild)
}

// NextSibling returns the next sibling handle, or the zero handle.
func (t *Tree) NextSibling(id ID) ID {
	s := t.lookup(id)
	if s == nil || s.nextSibling == noSlot {
		return ID{}
	}
	return t.handleAt(s.nextSibling)
}

func (t *Tree) handleAt(idx int32) ID {
	return ID{idx: idx, gen: t.slots[idx].gen}
}

// Walk visits every live widget in first-child/next-sibling (draw) order,
// starting at the root. Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(ID) bool) {
	t.walkFrom(0, fn)
}

func (t *Tree) walkFrom(idx int32, fn func(ID) bool) bool {
	if !fn(t.handleAt(idx)) {
		return false
	}
	for child := t.slots[idx].firstChild; child != noSlot; child = t.slots[child].nextSibling {
		if !t.walkFrom(child, fn) {
			return false
		}
	}
	return true
}

// Kind returns the widget's kind, or KindContainer for stale handles.
func (t *Tree) Kind(id ID) Kind {
	s := t.lookup(id)
	if s == nil {
		return KindContainer
	}
	return s.kind
}

// Rect returns the widget's resolved layout rectangle, before offset
// properties are applied.
func (t *Tree) Rect(id ID) geometry.Rect {
	s := t.lookup(id)
	if s == nil {
		return geometry.Rect{}
	}
	return s.rect
}

// ScreenRect returns the rectangle the widget occupies on screen: the
// resolved layout rect translated by the offset properties.
func (t *Tree) ScreenRect(id ID) geometry.Rect {
	s := t.lookup(id)
	if s == nil {
		return geometry.Rect{}
	}
	return s.rect.Translate(roundToInt(s.offsetX), roundToInt(s.offsetY))
}

func (t *Tree) screenRectAt(idx int32) geometry.Rect {
	s := &t.slots[idx]
	return s.rect.Translate(roundToInt(s.offsetX), roundToInt(s.offsetY))
}

func roundToInt(v float32) int {
	if v >= 0 {
		return int(v + 0.5)
	}
	return int(v - 0.5)
}

// markRect reports a changed rectangle to the dirty sink, if one is set.
func (t *Tree) markRect(r geometry.Rect) {
	if t.sink != nil && !r.IsEmpty() {
		t.sink.MarkRect(r)
	}
}

// requestLayout marks idx and every ancestor as needing layout so the next
// resolve pass descends into the affected subtree.
func (t *Tree) requestLayout(idx int32) {
	for idx != noSlot {
		s := &t.slots[idx]
		if s.needsLayout {
			return
		}
		s.needsLayout = true
		idx = s.parent
	}
}
