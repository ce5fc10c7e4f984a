// Package theme maps semantic style tokens to concrete colors, fonts and
// spacing. Widgets store only tokens; draw code resolves them against the
// active theme every frame, so swapping a theme requires no widget edits.
package theme

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// ColorToken is a symbolic reference to a themed color, resolved against
// the active Theme at draw time.
type ColorToken int

const (
	// TokenBackground is the screen background fill.
	TokenBackground ColorToken = iota
	// TokenSurface fills container and control backgrounds.
	TokenSurface
	// TokenPrimary fills interactive controls in their normal state.
	TokenPrimary
	// TokenPrimaryText is the text color on primary surfaces.
	TokenPrimaryText
	// TokenSecondaryText is the text color on plain surfaces.
	TokenSecondaryText
	// TokenDisabledText is the text color of disabled widgets.
	TokenDisabledText
	// TokenBorder outlines containers and controls.
	TokenBorder
	// TokenAccent highlights slider thumbs and checkbox marks.
	TokenAccent
	// TokenHoverOverlay fills hovered controls.
	TokenHoverOverlay
	// TokenPressedOverlay fills pressed controls.
	TokenPressedOverlay
	// TokenFocusRing outlines the focused widget.
	TokenFocusRing

	numColorTokens
)

var tokenNames = map[string]ColorToken{
	"background":      TokenBackground,
	"surface":         TokenSurface,
	"primary":         TokenPrimary,
	"primary-text":    TokenPrimaryText,
	"secondary-text":  TokenSecondaryText,
	"disabled-text":   TokenDisabledText,
	"border":          TokenBorder,
	"accent":          TokenAccent,
	"hover-overlay":   TokenHoverOverlay,
	"pressed-overlay": TokenPressedOverlay,
	"focus-ring":      TokenFocusRing,
}

// Metrics holds themed spacing and sizing values in pixels.
type Metrics struct {
	// Padding is the inner padding of labels, buttons and containers.
	Padding int
	// Spacing separates stacked children inside a container.
	Spacing int
	// BorderWidth is the outline width of containers and controls.
	BorderWidth int
	// SliderTrackHeight is the height of a slider track.
	SliderTrackHeight int
	// SliderThumbWidth is the width of a slider thumb.
	SliderThumbWidth int
	// CheckboxBox is the side length of a checkbox square.
	CheckboxBox int
}

// Theme is an immutable token table. Build one with New, Light, Dark or
// Parse; swap it wholesale through a Registry.
type Theme struct {
	colors  [numColorTokens]Color
	face    font.Face
	metrics Metrics
}

// New builds a theme from a complete color table, a font face and metrics.
// A nil face falls back to the bundled fixed-size face.
func New(colors [NumColorTokens]Color, face font.Face, metrics Metrics) *Theme {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &Theme{colors: colors, face: face, metrics: metrics}
}

// NumColorTokens is the size of a complete color table.
const NumColorTokens = int(numColorTokens)

// Color resolves a token to its concrete color.
func (t *Theme) Color(tok ColorToken) Color {
	if tok < 0 || tok >= numColorTokens {
		return ColorTransparent
	}
	return t.colors[tok]
}

// Face returns the theme's font face.
func (t *Theme) Face() font.Face {
	return t.face
}

// Metrics returns the theme's spacing and sizing values.
func (t *Theme) Metrics() Metrics {
	return t.metrics
}

func defaultMetrics() Metrics {
	return Metrics{
		Padding:           4,
		Spacing:           4,
		BorderWidth:       1,
		SliderTrackHeight: 4,
		SliderThumbWidth:  6,
		CheckboxBox:       12,
	}
}

// Light returns the built-in light theme.
func Light() *Theme {
	var colors [NumColorTokens]Color
	colors[TokenBackground] = RGB(0xF2, 0xF2, 0xF2)
	colors[TokenSurface] = RGB(0xFF, 0xFF, 0xFF)
	colors[TokenPrimary] = RGB(0x2B, 0x6C, 0xB0)
	colors[TokenPrimaryText] = ColorWhite
	colors[TokenSecondaryText] = RGB(0x1A, 0x20, 0x2C)
	colors[TokenDisabledText] = RGB(0x9A, 0xA0, 0xA6)
	colors[TokenBorder] = RGB(0xC4, 0xC9, 0xD0)
	colors[TokenAccent] = RGB(0xDD, 0x6B, 0x20)
	colors[TokenHoverOverlay] = RGB(0x3A, 0x7C, 0xC0)
	colors[TokenPressedOverlay] = RGB(0x1E, 0x54, 0x90)
	colors[TokenFocusRing] = RGB(0x2B, 0x6C, 0xB0)
	return New(colors, basicfont.Face7x13, defaultMetrics())
}

// Dark returns the built-in dark theme.
func Dark() *Theme {
	var colors [NumColorTokens]Color
	colors[TokenBackground] = RGB(0x12, 0x14, 0x17)
	colors[TokenSurface] = RGB(0x1C, 0x1F, 0x24)
	colors[TokenPrimary] = RGB(0x4C, 0x8E, 0xD9)
	colors[TokenPrimaryText] = RGB(0x0E, 0x10, 0x13)
	colors[TokenSecondaryText] = RGB(0xE6, 0xE8, 0xEB)
	colors[TokenDisabledText] = RGB(0x5F, 0x66, 0x6E)
	colors[TokenBorder] = RGB(0x3A, 0x40, 0x48)
	colors[TokenAccent] = RGB(0xF0, 0x8A, 0x3C)
	colors[TokenHoverOverlay] = RGB(0x5E, 0x9E, 0xE4)
	colors[TokenPressedOverlay] = RGB(0x39, 0x74, 0xB8)
	colors[TokenFocusRing] = RGB(0x4C, 0x8E, 0xD9)
	return New(colors, basicfont.Face7x13, defaultMetrics())
}

// Registry holds the active theme. Swapping invokes the swap hook so the
// owner can force a full redraw; token resolution is not tracked per
// widget, so no smaller redraw is safe.
type Registry struct {
	active *Theme
	onSwap func()
}

// NewRegistry creates a registry with the given initial theme.
// A nil initial theme defaults to Light.
func NewRegistry(initial *Theme) *Registry {
	if initial == nil {
		initial = Light()
	}
	return &Registry{active: initial}
}

// Active returns the current theme.
func (r *Registry) Active() *Theme {
	return r.active
}

// OnSwap registers the hook invoked after every Swap.
func (r *Registry) OnSwap(fn func()) {
	r.onSwap = fn
}

// Swap replaces the active theme wholesale. Nil themes are ignored.
func (r *Registry) Swap(t *Theme) {
	if t == nil {
		return
	}
	r.active = t
	if r.onSwap != nil {
		r.onSwap()
	}
}
