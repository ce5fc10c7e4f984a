package input_test

import (
	"testing"

	"github.com/go-kestrel/kestrel/pkg/errors"
	"github.com/go-kestrel/kestrel/pkg/geometry"
	"github.com/go-kestrel/kestrel/pkg/input"
	"github.com/go-kestrel/kestrel/pkg/theme"
	"github.com/go-kestrel/kestrel/pkg/widget"
)

// recordSink collects the dirty rectangles the tree reports.
type recordSink struct {
	rects []geometry.Rect
}

func (s *recordSink) MarkRect(r geometry.Rect) { s.rects = append(s.rects, r) }

func (s *recordSink) contains(r geometry.Rect) bool {
	for _, got := range s.rects {
		if got == r {
			return true
		}
	}
	return false
}

func near(got, want float32) bool {
	d := got - want
	return d < 1e-4 && d > -1e-4
}

// testRegistry uses padding 10 and no spacing so child rectangles land on
// round positions.
func testRegistry() *theme.Registry {
	var colors [theme.NumColorTokens]theme.Color
	m := theme.Metrics{Padding: 10, SliderTrackHeight: 4, SliderThumbWidth: 6, CheckboxBox: 12}
	return theme.NewRegistry(theme.New(colors, nil, m))
}

// newFixture builds a tree with one fixed-size child widget laid out at
// (10,10)-(10+w,10+h), plus a dispatcher and a dirty sink.
func newFixture(t *testing.T, kind widget.Kind, w, h int) (*widget.Tree, widget.ID, *input.Dispatcher, *recordSink) {
	t.Helper()
	tree := widget.NewTree(8, testRegistry())
	sink := &recordSink{}
	tree.SetDirtySink(sink)
	id, err := tree.Add(tree.Root(), kind, widget.Fixed(w, h))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	tree.ResolveLayout(geometry.RectFromLTWH(0, 0, 200, 100))
	sink.rects = sink.rects[:0]
	return tree, id, input.NewDispatcher(tree), sink
}

func TestHoverPressClick(t *testing.T) {
	tree, btn, d, sink := newFixture(t, widget.KindButton, 50, 20)

	want := geometry.Rect{Left: 10, Top: 10, Right: 60, Bottom: 30}
	if got := tree.ScreenRect(btn); got != want {
		t.Fatalf("button rect %+v, want %+v", got, want)
	}

	clicks := 0
	tree.SetOnClick(btn, func() { clicks++ })

	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 15, Y: 15}})
	if got := tree.State(btn); got != widget.StateHover {
		t.Fatalf("after move: state %v, want hover", got)
	}
	if !sink.contains(want) {
		t.Fatalf("hover did not mark %+v dirty, got %v", want, sink.rects)
	}

	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 15, Y: 15}, Pressed: true})
	if got := tree.State(btn); got != widget.StatePressed {
		t.Fatalf("after press: state %v, want pressed", got)
	}

	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 20, Y: 20}})
	if got := tree.State(btn); got != widget.StateHover {
		t.Fatalf("after release: state %v, want hover", got)
	}
	if clicks != 1 {
		t.Fatalf("clicks = %d, want 1", clicks)
	}
}

func TestPressDragOutReleasesWithoutClick(t *testing.T) {
	tree, btn, d, _ := newFixture(t, widget.KindButton, 50, 20)

	clicks := 0
	tree.SetOnClick(btn, func() { clicks++ })

	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 15, Y: 15}, Pressed: true})
	if got := tree.State(btn); got != widget.StatePressed {
		t.Fatalf("state %v, want pressed", got)
	}

	// Dragging outside keeps the capture and the pressed state.
	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 5, Y: 5}, Pressed: true})
	if got := tree.State(btn); got != widget.StatePressed {
		t.Fatalf("drag out: state %v, want pressed", got)
	}

	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 5, Y: 5}})
	if got := tree.State(btn); got != widget.StateNormal {
		t.Fatalf("release out: state %v, want normal", got)
	}
	if clicks != 0 {
		t.Fatalf("clicks = %d, want 0", clicks)
	}
}

func TestDisableDuringPressSwallowsRelease(t *testing.T) {
	tree, btn, d, _ := newFixture(t, widget.KindButton, 50, 20)

	clicks := 0
	tree.SetOnClick(btn, func() { clicks++ })

	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 15, Y: 15}, Pressed: true})
	tree.SetDisabled(btn, true)

	// Releasing inside fires nothing: disabling already reset the state,
	// so there is no pressed-to-hover transition left to click on.
	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 15, Y: 15}})
	if clicks != 0 {
		t.Fatalf("clicks = %d, want 0", clicks)
	}
	if got := tree.State(btn); got != widget.StateNormal {
		t.Fatalf("state %v, want normal", got)
	}

	// The dispatcher holds no stale hover on it either.
	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 150, Y: 90}})
	if got := tree.State(btn); got != widget.StateNormal {
		t.Fatalf("state after move away %v, want normal", got)
	}
}

func TestDisableDuringDragStopsSlider(t *testing.T) {
	tree, s, d, _ := newFixture(t, widget.KindSlider, 100, 20)

	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 60, Y: 20}, Pressed: true})
	before := tree.Value(s)
	tree.SetDisabled(s, true)

	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 85, Y: 20}, Pressed: true})
	if got := tree.Value(s); got != before {
		t.Fatalf("value = %v, want %v", got, before)
	}
}

func TestDisabledWidgetIgnoresPointer(t *testing.T) {
	tree, btn, d, _ := newFixture(t, widget.KindButton, 50, 20)
	tree.SetDisabled(btn, true)

	clicks := 0
	tree.SetOnClick(btn, func() { clicks++ })

	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 15, Y: 15}})
	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 15, Y: 15}, Pressed: true})
	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 15, Y: 15}})

	if got := tree.State(btn); got != widget.StateNormal {
		t.Fatalf("state %v, want normal", got)
	}
	if clicks != 0 {
		t.Fatalf("clicks = %d, want 0", clicks)
	}
}

func TestCheckboxTogglesOnClick(t *testing.T) {
	tree, box, d, _ := newFixture(t, widget.KindCheckbox, 20, 20)

	press := func() {
		d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 15, Y: 15}, Pressed: true})
		d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 15, Y: 15}})
	}

	press()
	if !tree.Checked(box) {
		t.Fatal("first click should check")
	}
	press()
	if tree.Checked(box) {
		t.Fatal("second click should uncheck")
	}
}

func TestToggleFlipsOnClick(t *testing.T) {
	tree, sw, d, _ := newFixture(t, widget.KindToggle, 30, 16)

	clicks := 0
	tree.SetOnClick(sw, func() { clicks++ })

	press := func() {
		d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 15, Y: 15}, Pressed: true})
		d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 15, Y: 15}})
	}

	press()
	if !tree.Checked(sw) {
		t.Fatal("first click should switch on")
	}
	press()
	if tree.Checked(sw) {
		t.Fatal("second click should switch off")
	}
	if clicks != 2 {
		t.Fatalf("clicks = %d, want 2", clicks)
	}
}

func TestSpacerIsInert(t *testing.T) {
	tree, sp, d, sink := newFixture(t, widget.KindSpacer, 50, 20)

	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 15, Y: 15}})
	if got := tree.State(sp); got != widget.StateNormal {
		t.Fatalf("spacer state %v, want normal", got)
	}
	if len(sink.rects) != 0 {
		t.Fatalf("pointer over a spacer marked %v", sink.rects)
	}
	if tree.SetFocused(sp, true) {
		t.Fatal("spacers are not focusable")
	}
}

func TestSliderDrag(t *testing.T) {
	tree, sl, d, _ := newFixture(t, widget.KindSlider, 100, 20)

	var changes []float32
	tree.SetOnChange(sl, func(v float32) { changes = append(changes, v) })

	// Slider rect is (10,10)-(110,30); x maps linearly to 0..1.
	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 60, Y: 20}, Pressed: true})
	if got := tree.Value(sl); got != 0.5 {
		t.Fatalf("value after press %v, want 0.5", got)
	}

	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 85, Y: 20}, Pressed: true})
	if got := tree.Value(sl); got != 0.75 {
		t.Fatalf("value after drag %v, want 0.75", got)
	}

	// Dragging past the right edge clamps to 1, even outside the rect.
	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 300, Y: 20}, Pressed: true})
	if got := tree.Value(sl); got != 1 {
		t.Fatalf("value after overshoot %v, want 1", got)
	}

	d.DispatchPointer(input.PointerEvent{Pos: geometry.Point{X: 300, Y: 20}})

	if len(changes) != 3 {
		t.Fatalf("change notifications %v, want 3 entries", changes)
	}
}

func TestFocusTraversalSkipsDisabledAndWraps(t *testing.T) {
	tree := widget.NewTree(8, testRegistry())
	d := input.NewDispatcher(tree)

	a, _ := tree.Add(tree.Root(), widget.KindButton, widget.Fixed(50, 20))
	b, _ := tree.Add(tree.Root(), widget.KindButton, widget.Fixed(50, 20))
	c, _ := tree.Add(tree.Root(), widget.KindButton, widget.Fixed(50, 20))
	tree.SetDisabled(b, true)

	tab := input.KeyEvent{Code: input.KeyTab, Pressed: true}

	d.DispatchKey(tab)
	if !tree.Focused(a) {
		t.Fatal("first tab should focus the first button")
	}
	d.DispatchKey(tab)
	if tree.Focused(b) {
		t.Fatal("focus landed on a disabled widget")
	}
	if !tree.Focused(c) {
		t.Fatal("second tab should skip to the third button")
	}
	d.DispatchKey(tab)
	if !tree.Focused(a) {
		t.Fatal("third tab should wrap to the first button")
	}

	// Releases do nothing.
	d.DispatchKey(input.KeyEvent{Code: input.KeyTab})
	if !tree.Focused(a) {
		t.Fatal("key release moved focus")
	}
}

func TestEnterActivatesFocused(t *testing.T) {
	tree, btn, d, _ := newFixture(t, widget.KindButton, 50, 20)

	clicks := 0
	tree.SetOnClick(btn, func() { clicks++ })

	d.DispatchKey(input.KeyEvent{Code: input.KeyEnter, Pressed: true})
	if clicks != 0 {
		t.Fatal("enter with no focus should not click")
	}

	d.DispatchKey(input.KeyEvent{Code: input.KeyTab, Pressed: true})
	d.DispatchKey(input.KeyEvent{Code: input.KeyEnter, Pressed: true})
	if clicks != 1 {
		t.Fatalf("clicks = %d, want 1", clicks)
	}
}

func TestArrowKeysNudgeFocusedSlider(t *testing.T) {
	tree, sl, d, _ := newFixture(t, widget.KindSlider, 100, 20)
	tree.SetValue(sl, 0.5)

	d.DispatchKey(input.KeyEvent{Code: input.KeyTab, Pressed: true})
	if !tree.Focused(sl) {
		t.Fatal("slider not focused")
	}

	d.DispatchKey(input.KeyEvent{Code: input.KeyRight, Pressed: true})
	if got := tree.Value(sl); !near(got, 0.55) {
		t.Fatalf("value %v, want 0.55", got)
	}
	d.DispatchKey(input.KeyEvent{Code: input.KeyLeft, Pressed: true})
	d.DispatchKey(input.KeyEvent{Code: input.KeyLeft, Pressed: true})
	if got := tree.Value(sl); !near(got, 0.45) {
		t.Fatalf("value %v, want 0.45", got)
	}

	// Nudges clamp at the ends.
	for i := 0; i < 30; i++ {
		d.DispatchKey(input.KeyEvent{Code: input.KeyRight, Pressed: true})
	}
	if got := tree.Value(sl); got != 1 {
		t.Fatalf("value %v, want 1", got)
	}
}

func TestTopmostSiblingWinsHitTest(t *testing.T) {
	tree := widget.NewTree(8, testRegistry())
	sink := &recordSink{}
	tree.SetDirtySink(sink)
	d := input.NewDispatcher(tree)

	under, _ := tree.Add(tree.Root(), widget.KindButton, widget.Fill())
	over, _ := tree.Add(tree.Root(), widget.KindButton, widget.Fill())
	tree.ResolveLayout(geometry.RectFromLTWH(0, 0, 100, 100))

	// Overlap the two by pulling the second sibling back over the first.
	overRect := tree.ScreenRect(under)
	dx := overRect.Left - tree.ScreenRect(over).Left
	dy := overRect.Top - tree.ScreenRect(over).Top
	tree.SetProperty(over, widget.PropOffsetX, float32(dx))
	tree.SetProperty(over, widget.PropOffsetY, float32(dy))

	p := geometry.Point{
		X: (overRect.Left + overRect.Right) / 2,
		Y: (overRect.Top + overRect.Bottom) / 2,
	}
	d.DispatchPointer(input.PointerEvent{Pos: p})

	if tree.State(under) != widget.StateNormal {
		t.Fatal("occluded sibling should not hover")
	}
	if tree.State(over) != widget.StateHover {
		t.Fatal("later sibling should win the hit test")
	}
}

func TestQueueCapacityAndOrder(t *testing.T) {
	tree, btn, d, _ := newFixture(t, widget.KindButton, 50, 20)

	clicks := 0
	tree.SetOnClick(btn, func() { clicks++ })

	q := input.NewQueue(3)
	if err := q.PushPointer(input.PointerEvent{Pos: geometry.Point{X: 15, Y: 15}, Pressed: true}); err != nil {
		t.Fatalf("push 1: %v", err)
	}
	if err := q.PushPointer(input.PointerEvent{Pos: geometry.Point{X: 15, Y: 15}}); err != nil {
		t.Fatalf("push 2: %v", err)
	}
	if err := q.PushKey(input.KeyEvent{Code: input.KeyEnter, Pressed: true}); err != nil {
		t.Fatalf("push 3: %v", err)
	}
	err := q.PushPointer(input.PointerEvent{})
	if !errors.IsCapacity(err) {
		t.Fatalf("overflow error = %v, want capacity", err)
	}

	q.Drain(d)
	if q.Len() != 0 {
		t.Fatalf("queue not drained, %d left", q.Len())
	}
	// Press then release clicks once; the Enter key finds no focus.
	if clicks != 1 {
		t.Fatalf("clicks = %d, want 1", clicks)
	}
}
