package widget

import (
	"golang.org/x/image/font"

	"github.com/go-kestrel/kestrel/pkg/geometry"
	"github.com/go-kestrel/kestrel/pkg/theme"
)

// defaultSliderExtent is the content width of a slider track, before padding.
const defaultSliderExtent = 64

// thumbOverhang is how far a slider thumb extends past the track on each side.
const thumbOverhang = 3

// ResolveLayout recomputes widget rectangles top-down from the given root
// constraint. Subtrees whose constraint and contents are unchanged since
// the last resolution are skipped; the result is always identical to a
// from-scratch pass. Rect changes are reported to the dirty sink.
func (t *Tree) ResolveLayout(root geometry.Rect) {
	rs := &t.slots[0]
	if rs.laidOut && !rs.needsLayout && root == rs.lastConstraint {
		return
	}
	t.layoutInto(0, root)
}

// layoutInto resolves the widget at idx within the given constraint
// rectangle and recurses into its children. The constraint carries both
// position (assigned by the parent) and available size.
func (t *Tree) layoutInto(idx int32, constraint geometry.Rect) {
	s := &t.slots[idx]
	if s.laidOut && !s.needsLayout && constraint == s.lastConstraint {
		return
	}

	th := t.reg.Active()
	rect := t.resolveRect(idx, constraint, th)
	if rect != s.rect {
		t.markRect(t.screenRectAt(idx))
		s.rect = rect
		t.markRect(t.screenRectAt(idx))
	}
	s.lastConstraint = constraint
	s.laidOut = true
	s.needsLayout = false

	if s.firstChild != noSlot {
		t.layoutChildren(idx, th)
	}
}

// resolveRect computes a widget's own rectangle inside its constraint.
// Contradictory constraints clamp to zero-area rather than failing.
func (t *Tree) resolveRect(idx int32, constraint geometry.Rect, th *theme.Theme) geometry.Rect {
	s := &t.slots[idx]
	avail := constraint.Size()
	var size geometry.Size
	switch s.sizing.Policy {
	case PolicyFill:
		size = avail
	case PolicyFixed:
		size = geometry.Size{
			Width:  min(s.sizing.Width, avail.Width),
			Height: min(s.sizing.Height, avail.Height),
		}
	case PolicyContent:
		size = t.measure(idx, th)
		size.Width = min(size.Width, avail.Width)
		size.Height = min(size.Height, avail.Height)
	}
	if size.Width < 0 {
		size.Width = 0
	}
	if size.Height < 0 {
		size.Height = 0
	}
	return geometry.RectFromLTWH(constraint.Left, constraint.Top, size.Width, size.Height)
}

// layoutChildren stacks the children of idx along its axis inside the
// padded content area. Fixed and content children take their natural
// extent; fill children share the leftover space equally, with remainder
// pixels assigned front to back.
func (t *Tree) layoutChildren(idx int32, th *theme.Theme) {
	s := &t.slots[idx]
	m := th.Metrics()
	content := s.rect.Inset(m.Padding)

	var contentMain, contentCross int
	if s.axis == AxisColumn {
		contentMain, contentCross = content.Height(), content.Width()
	} else {
		contentMain, contentCross = content.Width(), content.Height()
	}

	// First pass: natural main-axis extents and the number of fill children.
	fixedTotal, fills, children := 0, 0, 0
	for c := s.firstChild; c != noSlot; c = t.slots[c].nextSibling {
		children++
		cs := &t.slots[c]
		switch cs.sizing.Policy {
		case PolicyFill:
			fills++
		default:
			fixedTotal += t.naturalMain(c, s.axis, th)
		}
	}
	spacingTotal := 0
	if children > 1 {
		spacingTotal = m.Spacing * (children - 1)
	}

	leftover := contentMain - fixedTotal - spacingTotal
	if leftover < 0 {
		leftover = 0
	}
	fillShare, fillRem := 0, 0
	if fills > 0 {
		fillShare = leftover / fills
		fillRem = leftover % fills
	}

	// Second pass: assign constraints in order and recurse.
	cursor := 0
	for c := s.firstChild; c != noSlot; c = t.slots[c].nextSibling {
		cs := &t.slots[c]
		var mainExtent int
		if cs.sizing.Policy == PolicyFill {
			mainExtent = fillShare
			if fillRem > 0 {
				mainExtent++
				fillRem--
			}
		} else {
			mainExtent = t.naturalMain(c, s.axis, th)
		}
		remaining := contentMain - cursor
		if remaining < 0 {
			remaining = 0
		}
		mainExtent = min(mainExtent, remaining)

		var childConstraint geometry.Rect
		if s.axis == AxisColumn {
			childConstraint = geometry.RectFromLTWH(content.Left, content.Top+cursor, contentCross, mainExtent)
		} else {
			childConstraint = geometry.RectFromLTWH(content.Left+cursor, content.Top, mainExtent, contentCross)
		}
		t.layoutInto(c, childConstraint)

		cursor += mainExtent
		if t.slots[c].nextSibling != noSlot {
			cursor += m.Spacing
		}
	}
}

// naturalMain returns a non-fill child's desired extent along the parent's
// stacking axis.
func (t *Tree) naturalMain(idx int32, axis Axis, th *theme.Theme) int {
	s := &t.slots[idx]
	if s.sizing.Policy == PolicyFixed {
		if axis == AxisColumn {
			return max(s.sizing.Height, 0)
		}
		return max(s.sizing.Width, 0)
	}
	size := t.measure(idx, th)
	if axis == AxisColumn {
		return size.Height
	}
	return size.Width
}

// measure computes a widget's content size: text extent plus padding for
// labels and buttons, themed control sizes for sliders and checkboxes, and
// stacked child sizes for containers.
func (t *Tree) measure(idx int32, th *theme.Theme) geometry.Size {
	s := &t.slots[idx]
	m := th.Metrics()
	pad := 2 * m.Padding

	var size geometry.Size
	switch s.kind {
	case KindLabel, KindButton:
		face := th.Face()
		w := font.MeasureString(face, s.text).Ceil()
		fm := face.Metrics()
		h := (fm.Ascent + fm.Descent).Ceil()
		size = geometry.Size{Width: w + pad, Height: h + pad}
	case KindSlider:
		size = geometry.Size{
			Width:  defaultSliderExtent + pad,
			Height: m.SliderTrackHeight + 2*thumbOverhang + pad,
		}
	case KindCheckbox:
		size = geometry.Size{Width: m.CheckboxBox + pad, Height: m.CheckboxBox + pad}
	case KindToggle:
		size = geometry.Size{Width: 2*m.CheckboxBox + pad, Height: m.CheckboxBox + pad}
	case KindContainer:
		var mainSum, crossMax, children int
		for c := s.firstChild; c != noSlot; c = t.slots[c].nextSibling {
			children++
			childSize := t.measureForStacking(c, th)
			if s.axis == AxisColumn {
				mainSum += childSize.Height
				crossMax = max(crossMax, childSize.Width)
			} else {
				mainSum += childSize.Width
				crossMax = max(crossMax, childSize.Height)
			}
		}
		if children > 1 {
			mainSum += m.Spacing * (children - 1)
		}
		if s.axis == AxisColumn {
			size = geometry.Size{Width: crossMax + pad, Height: mainSum + pad}
		} else {
			size = geometry.Size{Width: mainSum + pad, Height: crossMax + pad}
		}
	}

	return clampSize(size, s.sizing.Min, s.sizing.Max)
}

// measureForStacking returns the size a child contributes to its parent's
// content measurement. Fill children contribute nothing: their extent
// comes from leftover space, which a content-sized parent does not have.
func (t *Tree) measureForStacking(idx int32, th *theme.Theme) geometry.Size {
	s := &t.slots[idx]
	switch s.sizing.Policy {
	case PolicyFill:
		return geometry.Size{}
	case PolicyFixed:
		return geometry.Size{Width: max(s.sizing.Width, 0), Height: max(s.sizing.Height, 0)}
	default:
		return t.measure(idx, th)
	}
}

func clampSize(size geometry.Size, lo, hi SizeBounds) geometry.Size {
	size.Width = max(size.Width, lo.Width)
	size.Height = max(size.Height, lo.Height)
	if hi.Width > 0 {
		size.Width = min(size.Width, hi.Width)
	}
	if hi.Height > 0 {
		size.Height = min(size.Height, hi.Height)
	}
	return size
}
