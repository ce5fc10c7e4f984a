// Package widget provides the retained widget tree: a fixed-capacity arena
// of widget records linked parent/first-child/next-sibling, the per-widget
// interaction state machine, and the layout engine that resolves each
// widget's rectangle from its parent's constraint.
//
// Widgets are addressed by generational handles. A handle issued before a
// widget's removal never aliases a later occupant of the same slot.
package widget

// ID is a stable handle to a widget slot. The zero value is invalid.
// Slots are reused after removal; reuse bumps the generation so stale
// handles are detected rather than followed.
type ID struct {
	idx int32
	gen uint32
}

// IsNil reports whether the handle is the invalid zero value.
func (id ID) IsNil() bool {
	return id.gen == 0
}

// Kind selects a widget's behavior variant. The set is closed: layout,
// draw and input dispatch switch over it directly.
type Kind int

const (
	// KindContainer stacks children along an axis.
	KindContainer Kind = iota
	// KindLabel displays static text.
	KindLabel
	// KindButton is a clickable control.
	KindButton
	// KindSlider is a draggable 0..1 value control.
	KindSlider
	// KindCheckbox is a toggleable control.
	KindCheckbox
	// KindToggle is an on/off switch sharing the checkbox's checked bit.
	KindToggle
	// KindSpacer occupies layout space and draws nothing.
	KindSpacer
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindLabel:
		return "label"
	case KindButton:
		return "button"
	case KindSlider:
		return "slider"
	case KindCheckbox:
		return "checkbox"
	case KindToggle:
		return "toggle"
	case KindSpacer:
		return "spacer"
	default:
		return "unknown"
	}
}

// Focusable reports whether widgets of this kind participate in keyboard
// focus traversal.
func (k Kind) Focusable() bool {
	switch k {
	case KindButton, KindSlider, KindCheckbox, KindToggle:
		return true
	default:
		return false
	}
}

// Policy names a sizing strategy.
type Policy int

const (
	// PolicyFixed sizes the widget to explicit dimensions, clamped to the
	// parent's constraint.
	PolicyFixed Policy = iota
	// PolicyFill expands into the space the parent leaves over.
	PolicyFill
	// PolicyContent sizes the widget to its content, clamped to Min/Max.
	PolicyContent
)

// Sizing is a widget's sizing policy. Construct with Fixed, Fill or Content.
type Sizing struct {
	Policy Policy
	// Width and Height apply to PolicyFixed.
	Width  int
	Height int
	// Min and Max bound PolicyContent. Zero Max means unbounded.
	Min SizeBounds
	Max SizeBounds
}

// SizeBounds is a width/height pair used to bound content sizing.
type SizeBounds struct {
	Width  int
	Height int
}

// Fixed returns a sizing policy with explicit pixel dimensions.
func Fixed(width, height int) Sizing {
	return Sizing{Policy: PolicyFixed, Width: width, Height: height}
}

// Fill returns a sizing policy that expands into leftover parent space.
func Fill() Sizing {
	return Sizing{Policy: PolicyFill}
}

// Content returns a sizing policy measured from the widget's content,
// clamped between min and max. A zero max axis is unbounded.
func Content(min, max SizeBounds) Sizing {
	return Sizing{Policy: PolicyContent, Min: min, Max: max}
}

// Axis is the stacking direction of a container.
type Axis int

const (
	// AxisColumn stacks children top to bottom.
	AxisColumn Axis = iota
	// AxisRow stacks children left to right.
	AxisRow
)

// Property identifies an animatable widget property slot.
type Property int

const (
	// PropOffsetX shifts the resolved rectangle horizontally.
	PropOffsetX Property = iota
	// PropOffsetY shifts the resolved rectangle vertically.
	PropOffsetY
	// PropOpacity blends the widget toward the background, 0..1.
	PropOpacity
	// PropWidth animates the fixed width of a PolicyFixed widget.
	PropWidth
	// PropHeight animates the fixed height of a PolicyFixed widget.
	PropHeight

	numProperties
)

// NumProperties is the number of animatable property slots per widget.
const NumProperties = int(numProperties)

// State is a widget's pointer interaction state.
type State int

const (
	// StateNormal is the resting state.
	StateNormal State = iota
	// StateHover means the pointer is inside the widget's bounds.
	StateHover
	// StatePressed means the pointer went down while hovering and has not
	// been released yet.
	StatePressed
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateHover:
		return "hover"
	case StatePressed:
		return "pressed"
	default:
		return "invalid"
	}
}

// legalTransition encodes the strict pointer state machine. Pressed is
// reachable only from Hover, and Pressed releases to Hover or Normal.
func legalTransition(from, to State) bool {
	if from == to {
		return false
	}
	switch from {
	case StateNormal:
		return to == StateHover
	case StateHover:
		return to == StatePressed || to == StateNormal
	case StatePressed:
		return to == StateHover || to == StateNormal
	default:
		return false
	}
}
