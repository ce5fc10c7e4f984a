// Package display defines the drawing capability the toolkit consumes and
// two in-repo implementations: a plain pixel framebuffer and a call
// recorder for tests. The host platform supplies the real backend.
package display

import (
	"golang.org/x/image/font"

	"github.com/go-kestrel/kestrel/pkg/geometry"
	"github.com/go-kestrel/kestrel/pkg/theme"
)

// Display is the primitive drawing surface the toolkit draws onto. The
// draw pass calls SetClip with each dirty rectangle before issuing
// primitives for it; implementations must confine every write to the
// current clip.
type Display interface {
	// Size returns the surface dimensions in pixels.
	Size() geometry.Size

	// SetClip restricts subsequent primitives to the given rectangle,
	// intersected with the surface bounds.
	SetClip(r geometry.Rect)

	// FillRect fills a rectangle with a solid color.
	FillRect(r geometry.Rect, c theme.Color)

	// StrokeRect outlines a rectangle with the given border width.
	StrokeRect(r geometry.Rect, c theme.Color, width int)

	// DrawLine draws a straight line segment between two points.
	DrawLine(a, b geometry.Point, c theme.Color)

	// DrawText draws a string with its top-left corner at origin.
	DrawText(origin geometry.Point, s string, face font.Face, c theme.Color)
}

// strokeRects decomposes a rectangle outline into four fill rectangles.
// Shared by implementations so strokes stay consistent across backends.
func strokeRects(r geometry.Rect, width int) [4]geometry.Rect {
	if width < 1 {
		width = 1
	}
	return [4]geometry.Rect{
		{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: min(r.Top+width, r.Bottom)},                 // top
		{Left: r.Left, Top: max(r.Bottom-width, r.Top), Right: r.Right, Bottom: r.Bottom},              // bottom
		{Left: r.Left, Top: r.Top, Right: min(r.Left+width, r.Right), Bottom: r.Bottom},                // left
		{Left: max(r.Right-width, r.Left), Top: r.Top, Right: r.Right, Bottom: r.Bottom},               // right
	}
}
