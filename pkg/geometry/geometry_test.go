package geometry_test

import (
	"testing"

	"github.com/go-kestrel/kestrel/pkg/geometry"
)

func TestRectFromLTWH(t *testing.T) {
	r := geometry.RectFromLTWH(10, 20, 30, 40)
	if r.Left != 10 || r.Top != 20 || r.Right != 40 || r.Bottom != 60 {
		t.Fatalf("unexpected rect %+v", r)
	}
	if r.Width() != 30 || r.Height() != 40 {
		t.Errorf("got %dx%d, want 30x40", r.Width(), r.Height())
	}
}

func TestRectFromLTWH_NegativeClampsEmpty(t *testing.T) {
	r := geometry.RectFromLTWH(5, 5, -3, 10)
	if !r.IsEmpty() {
		t.Errorf("negative width should produce an empty rect, got %+v", r)
	}
}

func TestContains(t *testing.T) {
	r := geometry.RectFromLTWH(10, 10, 50, 20)
	tests := []struct {
		name string
		p    geometry.Point
		want bool
	}{
		{"inside", geometry.Point{X: 15, Y: 15}, true},
		{"top-left corner", geometry.Point{X: 10, Y: 10}, true},
		{"right edge exclusive", geometry.Point{X: 60, Y: 15}, false},
		{"bottom edge exclusive", geometry.Point{X: 15, Y: 30}, false},
		{"outside", geometry.Point{X: 5, Y: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestIntersect(t *testing.T) {
	a := geometry.RectFromLTWH(0, 0, 10, 10)
	b := geometry.RectFromLTWH(5, 5, 10, 10)
	got := a.Intersect(b)
	want := geometry.Rect{Left: 5, Top: 5, Right: 10, Bottom: 10}
	if got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}

	c := geometry.RectFromLTWH(20, 20, 5, 5)
	if !a.Intersect(c).IsEmpty() {
		t.Error("disjoint rects should intersect to empty")
	}
}

func TestUnion(t *testing.T) {
	a := geometry.RectFromLTWH(0, 0, 10, 10)
	b := geometry.RectFromLTWH(20, 5, 10, 10)
	got := a.Union(b)
	want := geometry.Rect{Left: 0, Top: 0, Right: 30, Bottom: 15}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
}

func TestUnion_EmptyIdentity(t *testing.T) {
	a := geometry.RectFromLTWH(3, 3, 4, 4)
	var empty geometry.Rect
	if got := a.Union(empty); got != a {
		t.Errorf("Union with empty = %+v, want %+v", got, a)
	}
	if got := empty.Union(a); got != a {
		t.Errorf("empty.Union = %+v, want %+v", got, a)
	}
}

func TestTouches(t *testing.T) {
	a := geometry.RectFromLTWH(0, 0, 10, 10)
	tests := []struct {
		name  string
		other geometry.Rect
		want  bool
	}{
		{"overlapping", geometry.RectFromLTWH(5, 5, 10, 10), true},
		{"edge-adjacent", geometry.RectFromLTWH(10, 0, 10, 10), true},
		{"corner-adjacent", geometry.RectFromLTWH(10, 10, 5, 5), true},
		{"one pixel gap", geometry.RectFromLTWH(11, 0, 10, 10), false},
		{"empty", geometry.Rect{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Touches(tt.other); got != tt.want {
				t.Errorf("Touches(%+v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestInset(t *testing.T) {
	r := geometry.RectFromLTWH(0, 0, 10, 10)
	got := r.Inset(2)
	want := geometry.Rect{Left: 2, Top: 2, Right: 8, Bottom: 8}
	if got != want {
		t.Errorf("Inset(2) = %+v, want %+v", got, want)
	}
	if !r.Inset(6).IsEmpty() {
		t.Error("over-inset should collapse to empty")
	}
}

func TestContainsRect(t *testing.T) {
	outer := geometry.RectFromLTWH(0, 0, 100, 100)
	if !outer.ContainsRect(geometry.RectFromLTWH(10, 10, 20, 20)) {
		t.Error("inner rect should be contained")
	}
	if outer.ContainsRect(geometry.RectFromLTWH(90, 90, 20, 20)) {
		t.Error("overhanging rect should not be contained")
	}
	if !outer.ContainsRect(geometry.Rect{}) {
		t.Error("empty rect is contained everywhere")
	}
}
