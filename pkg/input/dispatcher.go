package input

import (
	"github.com/go-kestrel/kestrel/pkg/geometry"
	"github.com/go-kestrel/kestrel/pkg/widget"
)

// sliderStep is the value change of one keyboard nudge on a slider.
const sliderStep = 0.05

// Dispatcher drives the per-widget interaction state machine from pointer
// and key events. It owns the hover and press-capture bookkeeping; the
// states themselves live in the widget records, and every transition the
// tree accepts marks the widget's rectangle dirty.
type Dispatcher struct {
	tree    *widget.Tree
	hovered widget.ID
	pressed widget.ID
	down    bool
}

// NewDispatcher creates a dispatcher driving the given tree.
func NewDispatcher(tree *widget.Tree) *Dispatcher {
	return &Dispatcher{tree: tree}
}

// DispatchPointer applies one pointer sample.
//
// While a widget is pressed it captures the pointer: moves keep flowing to
// it (dragging a slider updates its value) and no other widget can become
// hovered until release. Releasing inside the pressed widget fires its
// click notification and returns it to hover; releasing outside returns
// it to normal without a click.
func (d *Dispatcher) DispatchPointer(ev PointerEvent) {
	if !d.pressed.IsNil() && !d.tree.Alive(d.pressed) {
		d.pressed = widget.ID{}
	}
	if !d.hovered.IsNil() && !d.tree.Alive(d.hovered) {
		d.hovered = widget.ID{}
	}

	if !d.pressed.IsNil() {
		d.dispatchCaptured(ev)
		return
	}

	hit := d.hitTest(ev.Pos)

	switch {
	case ev.Pressed && !d.down:
		d.down = true
		d.setHovered(hit)
		if hit.IsNil() {
			return
		}
		if d.tree.SetState(hit, widget.StatePressed) {
			d.pressed = hit
			if d.tree.Kind(hit) == widget.KindSlider {
				d.dragSlider(hit, ev.Pos)
			}
		}
	case !ev.Pressed && d.down:
		d.down = false
		d.setHovered(hit)
	default:
		d.setHovered(hit)
	}
}

// dispatchCaptured handles pointer samples while a widget holds the press.
func (d *Dispatcher) dispatchCaptured(ev PointerEvent) {
	pressed := d.pressed
	inside := d.tree.ScreenRect(pressed).Contains(ev.Pos)

	if ev.Pressed {
		if d.tree.Kind(pressed) == widget.KindSlider && !d.tree.Disabled(pressed) {
			d.dragSlider(pressed, ev.Pos)
		}
		return
	}

	// Release ends the capture. The click fires only when the widget still
	// accepts the pressed-to-hover transition; a widget disabled mid-press
	// has already been reset to normal and swallows the release.
	d.down = false
	d.pressed = widget.ID{}
	if inside && d.tree.State(pressed) == widget.StatePressed &&
		d.tree.SetState(pressed, widget.StateHover) {
		d.hovered = pressed
		d.activate(pressed)
		return
	}
	d.tree.SetState(pressed, widget.StateNormal)
	d.hovered = widget.ID{}
	d.setHovered(d.hitTest(ev.Pos))
}

// setHovered moves the hover state from the previous widget to hit.
// Transitions on disabled widgets are rejected by the tree, so a disabled
// widget under the pointer leaves everything in its normal state.
func (d *Dispatcher) setHovered(hit widget.ID) {
	if hit == d.hovered {
		return
	}
	if !d.hovered.IsNil() {
		d.tree.SetState(d.hovered, widget.StateNormal)
	}
	d.hovered = widget.ID{}
	if !hit.IsNil() && d.tree.SetState(hit, widget.StateHover) {
		d.hovered = hit
	}
}

// activate fires the widget's click behavior: checkboxes and toggles flip
// their checked bit first, then the click notification fires.
func (d *Dispatcher) activate(id widget.ID) {
	switch d.tree.Kind(id) {
	case widget.KindCheckbox, widget.KindToggle:
		_ = d.tree.SetChecked(id, !d.tree.Checked(id))
	}
	d.tree.NotifyClick(id)
}

// dragSlider maps the pointer x position into the slider's 0..1 value and
// fires the change notification when the value moves.
func (d *Dispatcher) dragSlider(id widget.ID, pos geometry.Point) {
	r := d.tree.ScreenRect(id)
	if r.Width() <= 0 {
		return
	}
	v := float32(pos.X-r.Left) / float32(r.Width())
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	if v == d.tree.Value(id) {
		return
	}
	_ = d.tree.SetValue(id, v)
	d.tree.NotifyChange(id)
}

// hitTest returns the topmost interactive widget under the point. The
// preorder walk visits parents before children and earlier siblings
// before later ones, so the last interactive match is the one drawn on
// top. Disabled widgets still occlude the widgets beneath them.
func (d *Dispatcher) hitTest(p geometry.Point) widget.ID {
	var hit widget.ID
	d.tree.Walk(func(id widget.ID) bool {
		if d.tree.Kind(id).Focusable() && d.tree.ScreenRect(id).Contains(p) {
			hit = id
		}
		return true
	})
	return hit
}

// DispatchKey applies one key event. Only presses act; releases are
// consumed without effect.
func (d *Dispatcher) DispatchKey(ev KeyEvent) {
	if !ev.Pressed {
		return
	}
	switch ev.Code {
	case KeyTab:
		d.focusNext()
	case KeyEnter:
		if id := d.findFocused(); !id.IsNil() {
			d.activate(id)
		}
	case KeyLeft:
		d.nudgeSlider(-sliderStep)
	case KeyRight:
		d.nudgeSlider(sliderStep)
	}
}

// focusNext moves the focus bit to the next focusable, enabled widget in
// tree order, wrapping past the end. With no current focus it lands on
// the first focusable widget.
func (d *Dispatcher) focusNext() {
	current := d.findFocused()

	var first, next widget.ID
	seen := current.IsNil()
	d.tree.Walk(func(id widget.ID) bool {
		if !d.tree.Kind(id).Focusable() || d.tree.Disabled(id) {
			return true
		}
		if first.IsNil() {
			first = id
		}
		if seen && next.IsNil() && id != current {
			next = id
			return false
		}
		if id == current {
			seen = true
		}
		return true
	})
	if next.IsNil() {
		next = first // wrap
	}
	if next.IsNil() || next == current {
		return
	}
	if !current.IsNil() {
		d.tree.SetFocused(current, false)
	}
	d.tree.SetFocused(next, true)
}

// findFocused returns the widget currently holding the focus bit.
func (d *Dispatcher) findFocused() widget.ID {
	var focused widget.ID
	d.tree.Walk(func(id widget.ID) bool {
		if d.tree.Focused(id) {
			focused = id
			return false
		}
		return true
	})
	return focused
}

// nudgeSlider adjusts the focused slider by delta and notifies the change.
func (d *Dispatcher) nudgeSlider(delta float32) {
	id := d.findFocused()
	if id.IsNil() || d.tree.Kind(id) != widget.KindSlider {
		return
	}
	old := d.tree.Value(id)
	_ = d.tree.SetValue(id, old+delta)
	if d.tree.Value(id) != old {
		d.tree.NotifyChange(id)
	}
}
