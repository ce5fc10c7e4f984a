package widget

import (
	"github.com/go-kestrel/kestrel/pkg/errors"
)

// Content setters. Every mutation that can change a widget's rendering
// marks its rectangle dirty; mutations that can change its measured size
// also request relayout.

// SetText replaces the text of a label or button.
func (t *Tree) SetText(id ID, text string) error {
	s := t.lookup(id)
	if s == nil {
		return errors.InvalidHandle("widget.Tree.SetText")
	}
	if s.text == text {
		return nil
	}
	s.text = text
	t.markRect(t.screenRectAt(id.idx))
	if s.sizing.Policy == PolicyContent {
		t.requestLayout(id.idx)
	}
	return nil
}

// Text returns the widget's text content.
func (t *Tree) Text(id ID) string {
	s := t.lookup(id)
	if s == nil {
		return ""
	}
	return s.text
}

// SetValue sets a slider's value, clamped to [0, 1]. The change callback
// is not invoked; it is reserved for user-driven changes.
func (t *Tree) SetValue(id ID, v float32) error {
	s := t.lookup(id)
	if s == nil {
		return errors.InvalidHandle("widget.Tree.SetValue")
	}
	v = clamp01(v)
	if s.value == v {
		return nil
	}
	s.value = v
	t.markRect(t.screenRectAt(id.idx))
	return nil
}

// Value returns a slider's current value in [0, 1].
func (t *Tree) Value(id ID) float32 {
	s := t.lookup(id)
	if s == nil {
		return 0
	}
	return s.value
}

// SetChecked sets a checkbox's checked state.
func (t *Tree) SetChecked(id ID, checked bool) error {
	s := t.lookup(id)
	if s == nil {
		return errors.InvalidHandle("widget.Tree.SetChecked")
	}
	if s.checked == checked {
		return nil
	}
	s.checked = checked
	t.markRect(t.screenRectAt(id.idx))
	return nil
}

// Checked returns a checkbox's checked state.
func (t *Tree) Checked(id ID) bool {
	s := t.lookup(id)
	if s == nil {
		return false
	}
	return s.checked
}

// SetAxis sets a container's stacking direction.
func (t *Tree) SetAxis(id ID, axis Axis) error {
	s := t.lookup(id)
	if s == nil {
		return errors.InvalidHandle("widget.Tree.SetAxis")
	}
	if s.axis == axis {
		return nil
	}
	s.axis = axis
	t.requestLayout(id.idx)
	return nil
}

// Axis returns a container's stacking direction.
func (t *Tree) Axis(id ID) Axis {
	s := t.lookup(id)
	if s == nil {
		return AxisColumn
	}
	return s.axis
}

// SetOnClick installs the click notification callback. Clicks fire on
// pointer release inside the widget's bounds and on keyboard activation
// while focused.
func (t *Tree) SetOnClick(id ID, fn func()) error {
	s := t.lookup(id)
	if s == nil {
		return errors.InvalidHandle("widget.Tree.SetOnClick")
	}
	s.onClick = fn
	return nil
}

// SetOnChange installs the value change callback, fired when user input
// moves a slider.
func (t *Tree) SetOnChange(id ID, fn func(float32)) error {
	s := t.lookup(id)
	if s == nil {
		return errors.InvalidHandle("widget.Tree.SetOnChange")
	}
	s.onChange = fn
	return nil
}

// NotifyClick fires the widget's click callback, if any. Stale handles are
// ignored.
func (t *Tree) NotifyClick(id ID) {
	s := t.lookup(id)
	if s != nil && s.onClick != nil {
		s.onClick()
	}
}

// NotifyChange fires the widget's change callback with its current value.
func (t *Tree) NotifyChange(id ID) {
	s := t.lookup(id)
	if s != nil && s.onChange != nil {
		s.onChange(s.value)
	}
}

// SetDisabled sets the disabled bit. Disabling resets the pointer state to
// normal and drops focus, since a disabled widget can hold neither.
func (t *Tree) SetDisabled(id ID, disabled bool) error {
	s := t.lookup(id)
	if s == nil {
		return errors.InvalidHandle("widget.Tree.SetDisabled")
	}
	if s.disabled == disabled {
		return nil
	}
	s.disabled = disabled
	if disabled {
		s.state = StateNormal
		s.focused = false
	}
	t.markRect(t.screenRectAt(id.idx))
	return nil
}

// Disabled returns the widget's disabled bit.
func (t *Tree) Disabled(id ID) bool {
	s := t.lookup(id)
	if s == nil {
		return false
	}
	return s.disabled
}

// State returns the widget's pointer interaction state.
func (t *Tree) State(id ID) State {
	s := t.lookup(id)
	if s == nil {
		return StateNormal
	}
	return s.state
}

// SetState applies a pointer state transition and reports whether it took
// effect. Illegal transitions (anything outside the strict state machine)
// and transitions on disabled or stale widgets are rejected. A transition
// that takes effect marks the widget's rectangle dirty.
func (t *Tree) SetState(id ID, to State) bool {
	s := t.lookup(id)
	if s == nil || s.disabled {
		return false
	}
	if !legalTransition(s.state, to) {
		return false
	}
	s.state = to
	t.markRect(t.screenRectAt(id.idx))
	return true
}

// Focused returns the widget's focus bit.
func (t *Tree) Focused(id ID) bool {
	s := t.lookup(id)
	if s == nil {
		return false
	}
	return s.focused
}

// SetFocused sets the focus bit. Disabled and non-focusable widgets refuse
// focus. A change marks the widget's rectangle dirty.
func (t *Tree) SetFocused(id ID, focused bool) bool {
	s := t.lookup(id)
	if s == nil || s.focused == focused {
		return false
	}
	if focused && (s.disabled || !s.kind.Focusable()) {
		return false
	}
	s.focused = focused
	t.markRect(t.screenRectAt(id.idx))
	return true
}

// SetProperty writes an animatable property slot. Offset and opacity
// writes mark the affected rectangles dirty immediately; size writes
// update the sizing policy and take effect on the next layout pass.
// Size properties only apply to PolicyFixed widgets.
func (t *Tree) SetProperty(id ID, p Property, v float32) error {
	s := t.lookup(id)
	if s == nil {
		return errors.InvalidHandle("widget.Tree.SetProperty")
	}
	switch p {
	case PropOffsetX:
		if s.offsetX == v {
			return nil
		}
		t.markRect(t.screenRectAt(id.idx))
		s.offsetX = v
		t.markRect(t.screenRectAt(id.idx))
	case PropOffsetY:
		if s.offsetY == v {
			return nil
		}
		t.markRect(t.screenRectAt(id.idx))
		s.offsetY = v
		t.markRect(t.screenRectAt(id.idx))
	case PropOpacity:
		v = clamp01(v)
		if s.opacity == v {
			return nil
		}
		s.opacity = v
		t.markRect(t.screenRectAt(id.idx))
	case PropWidth:
		if s.sizing.Policy != PolicyFixed {
			return nil
		}
		w := roundToInt(v)
		if w < 0 {
			w = 0
		}
		if s.sizing.Width == w {
			return nil
		}
		s.sizing.Width = w
		t.requestLayout(id.idx)
	case PropHeight:
		if s.sizing.Policy != PolicyFixed {
			return nil
		}
		h := roundToInt(v)
		if h < 0 {
			h = 0
		}
		if s.sizing.Height == h {
			return nil
		}
		s.sizing.Height = h
		t.requestLayout(id.idx)
	}
	return nil
}

// Prop reads an animatable property slot. Stale handles read as zero.
func (t *Tree) Prop(id ID, p Property) float32 {
	s := t.lookup(id)
	if s == nil {
		return 0
	}
	switch p {
	case PropOffsetX:
		return s.offsetX
	case PropOffsetY:
		return s.offsetY
	case PropOpacity:
		return s.opacity
	case PropWidth:
		return float32(s.sizing.Width)
	case PropHeight:
		return float32(s.sizing.Height)
	default:
		return 0
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
