package display_test

import (
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/go-kestrel/kestrel/pkg/display"
	"github.com/go-kestrel/kestrel/pkg/geometry"
	"github.com/go-kestrel/kestrel/pkg/theme"
)

func TestFramebufferFillRespectsClip(t *testing.T) {
	fb := display.NewFramebuffer(geometry.Size{Width: 20, Height: 20})
	clip := geometry.RectFromLTWH(5, 5, 10, 10)
	fb.SetClip(clip)
	fb.FillRect(geometry.RectFromLTWH(0, 0, 20, 20), theme.ColorWhite)

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			inside := clip.Contains(geometry.Point{X: x, Y: y})
			got := fb.At(x, y)
			if inside && got != theme.ColorWhite {
				t.Fatalf("pixel (%d,%d) inside clip not filled", x, y)
			}
			if !inside && got != 0 {
				t.Fatalf("pixel (%d,%d) outside clip was written", x, y)
			}
		}
	}
}

func TestFramebufferLineClipped(t *testing.T) {
	fb := display.NewFramebuffer(geometry.Size{Width: 10, Height: 10})
	fb.SetClip(geometry.RectFromLTWH(0, 0, 5, 10))
	fb.DrawLine(geometry.Point{X: 0, Y: 3}, geometry.Point{X: 9, Y: 3}, theme.ColorBlack)

	for x := 0; x < 10; x++ {
		got := fb.At(x, 3)
		if x < 5 && got != theme.ColorBlack {
			t.Fatalf("line pixel (%d,3) missing", x)
		}
		if x >= 5 && got != 0 {
			t.Fatalf("line leaked past clip at (%d,3)", x)
		}
	}
}

func TestFramebufferStrokeHollow(t *testing.T) {
	fb := display.NewFramebuffer(geometry.Size{Width: 10, Height: 10})
	fb.StrokeRect(geometry.RectFromLTWH(1, 1, 8, 8), theme.ColorWhite, 1)

	if fb.At(1, 1) != theme.ColorWhite || fb.At(8, 8) != theme.ColorWhite {
		t.Fatal("stroke corners not drawn")
	}
	if fb.At(4, 4) != 0 {
		t.Fatal("stroke filled the interior")
	}
}

func TestFramebufferOutOfBoundsIgnored(t *testing.T) {
	fb := display.NewFramebuffer(geometry.Size{Width: 4, Height: 4})
	fb.FillRect(geometry.RectFromLTWH(-2, -2, 10, 10), theme.ColorBlack)
	if fb.At(0, 0) != theme.ColorBlack || fb.At(3, 3) != theme.ColorBlack {
		t.Fatal("fill should cover the whole surface")
	}
	// Reads outside the surface are zero, never a panic.
	if fb.At(-1, 0) != 0 || fb.At(4, 4) != 0 {
		t.Fatal("out of bounds read not zero")
	}
}

func TestFramebufferDrawTextWithinClip(t *testing.T) {
	fb := display.NewFramebuffer(geometry.Size{Width: 60, Height: 20})
	clip := geometry.RectFromLTWH(0, 0, 60, 20)
	fb.SetClip(clip)
	fb.DrawText(geometry.Point{X: 2, Y: 2}, "hi", basicfont.Face7x13, theme.ColorWhite)

	found := false
	for y := 0; y < 20 && !found; y++ {
		for x := 0; x < 60; x++ {
			if fb.At(x, y) != 0 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("text drew no pixels")
	}

	// Clip to an empty region and confirm nothing lands.
	fb2 := display.NewFramebuffer(geometry.Size{Width: 60, Height: 20})
	fb2.SetClip(geometry.RectFromLTWH(0, 0, 0, 0))
	fb2.DrawText(geometry.Point{X: 2, Y: 2}, "hi", basicfont.Face7x13, theme.ColorWhite)
	for y := 0; y < 20; y++ {
		for x := 0; x < 60; x++ {
			if fb2.At(x, y) != 0 {
				t.Fatalf("text leaked past empty clip at (%d,%d)", x, y)
			}
		}
	}
}

func TestRecorderCapturesClip(t *testing.T) {
	rec := display.NewRecorder(geometry.Size{Width: 100, Height: 100})
	clip := geometry.RectFromLTWH(10, 10, 20, 20)
	rec.SetClip(clip)
	rec.FillRect(geometry.RectFromLTWH(0, 0, 50, 50), theme.ColorBlack)

	fills := rec.Filter(display.OpFillRect)
	if len(fills) != 1 {
		t.Fatalf("got %d fill ops, want 1", len(fills))
	}
	if fills[0].Clip != clip {
		t.Fatalf("recorded clip %+v, want %+v", fills[0].Clip, clip)
	}
}
