package display

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/go-kestrel/kestrel/pkg/geometry"
	"github.com/go-kestrel/kestrel/pkg/theme"
)

// Framebuffer is an in-memory Display backed by one theme.Color per
// pixel. It clips every write, so partial redraws never touch pixels
// outside the dirty rectangles. Useful for headless tests and as a
// staging buffer on platforms without a windowing system.
type Framebuffer struct {
	size geometry.Size
	pix  []theme.Color
	clip geometry.Rect
}

// NewFramebuffer allocates a framebuffer of the given size with the
// clip open to the full surface. All pixels start as zero (transparent
// black).
func NewFramebuffer(size geometry.Size) *Framebuffer {
	if size.Width < 0 {
		size.Width = 0
	}
	if size.Height < 0 {
		size.Height = 0
	}
	return &Framebuffer{
		size: size,
		pix:  make([]theme.Color, size.Width*size.Height),
		clip: geometry.RectFromLTWH(0, 0, size.Width, size.Height),
	}
}

func (f *Framebuffer) Size() geometry.Size { return f.size }

// SetClip replaces the clip rectangle. The clip is always intersected
// with the surface bounds.
func (f *Framebuffer) SetClip(r geometry.Rect) {
	f.clip = r.Intersect(f.bounds())
}

// ResetClip reopens the clip to the full surface.
func (f *Framebuffer) ResetClip() { f.clip = f.bounds() }

func (f *Framebuffer) bounds() geometry.Rect {
	return geometry.RectFromLTWH(0, 0, f.size.Width, f.size.Height)
}

// At returns the pixel at (x, y), or zero outside the surface.
func (f *Framebuffer) At(x, y int) theme.Color {
	if x < 0 || y < 0 || x >= f.size.Width || y >= f.size.Height {
		return 0
	}
	return f.pix[y*f.size.Width+x]
}

// setPixel writes one pixel, discarding anything outside the clip.
func (f *Framebuffer) setPixel(x, y int, c theme.Color) {
	if !f.clip.Contains(geometry.Point{X: x, Y: y}) {
		return
	}
	f.pix[y*f.size.Width+x] = c
}

func (f *Framebuffer) FillRect(r geometry.Rect, c theme.Color) {
	r = r.Intersect(f.clip)
	if r.IsEmpty() {
		return
	}
	for y := r.Top; y < r.Bottom; y++ {
		row := f.pix[y*f.size.Width : y*f.size.Width+f.size.Width]
		for x := r.Left; x < r.Right; x++ {
			row[x] = c
		}
	}
}

func (f *Framebuffer) StrokeRect(r geometry.Rect, c theme.Color, width int) {
	for _, side := range strokeRects(r, width) {
		f.FillRect(side, c)
	}
}

// DrawLine draws a line with integer Bresenham stepping. Endpoints are
// inclusive; pixels outside the clip are dropped.
func (f *Framebuffer) DrawLine(a, b geometry.Point, c theme.Color) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		f.setPixel(x, y, c)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// DrawText renders s with origin as the top-left of the text box. The
// baseline sits one ascent below origin. Glyph coverage is composited
// through the clip like every other primitive.
func (f *Framebuffer) DrawText(origin geometry.Point, s string, face font.Face, c theme.Color) {
	if face == nil || s == "" {
		return
	}
	ascent := face.Metrics().Ascent.Ceil()
	d := font.Drawer{
		Dst:  (*fbImage)(f),
		Src:  image.NewUniform(rgba(c)),
		Face: face,
		Dot:  fixed.P(origin.X, origin.Y+ascent),
	}
	d.DrawString(s)
}

// Snapshot copies the pixel contents into dst, reusing it when large
// enough.
func (f *Framebuffer) Snapshot(dst []theme.Color) []theme.Color {
	dst = append(dst[:0], f.pix...)
	return dst
}

var _ Display = (*Framebuffer)(nil)

// fbImage adapts Framebuffer to draw.Image so font.Drawer can composite
// glyph masks directly into it. Set honors the framebuffer clip.
type fbImage Framebuffer

func (m *fbImage) ColorModel() color.Model { return color.RGBAModel }

func (m *fbImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.size.Width, m.size.Height)
}

func (m *fbImage) At(x, y int) color.Color {
	return rgba((*Framebuffer)(m).At(x, y))
}

func (m *fbImage) Set(x, y int, c color.Color) {
	r, g, b, a := c.RGBA()
	packed := theme.Color(a>>8)<<24 | theme.Color(r>>8)<<16 | theme.Color(g>>8)<<8 | theme.Color(b>>8)
	(*Framebuffer)(m).setPixel(x, y, packed)
}

func rgba(c theme.Color) color.RGBA {
	r, g, b, a := c.Components()
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
