package display

import (
	"golang.org/x/image/font"

	"github.com/go-kestrel/kestrel/pkg/geometry"
	"github.com/go-kestrel/kestrel/pkg/theme"
)

// OpKind identifies a recorded drawing primitive.
type OpKind uint8

const (
	OpFillRect OpKind = iota
	OpStrokeRect
	OpLine
	OpText
)

// Op is one recorded drawing call together with the clip that was
// active when it was issued.
type Op struct {
	Kind  OpKind
	Rect  geometry.Rect
	A, B  geometry.Point
	Color theme.Color
	Text  string
	Width int
	Clip  geometry.Rect
}

// Recorder is a Display that records calls instead of rasterizing.
// Tests inspect Ops to assert what a draw pass produced.
type Recorder struct {
	size geometry.Size
	clip geometry.Rect
	Ops  []Op
}

var _ Display = (*Recorder)(nil)

// NewRecorder creates a recorder of the given surface size.
func NewRecorder(size geometry.Size) *Recorder {
	return &Recorder{
		size: size,
		clip: geometry.RectFromLTWH(0, 0, size.Width, size.Height),
	}
}

func (r *Recorder) Size() geometry.Size { return r.size }

func (r *Recorder) SetClip(c geometry.Rect) {
	r.clip = c.Intersect(geometry.RectFromLTWH(0, 0, r.size.Width, r.size.Height))
}

func (r *Recorder) FillRect(rect geometry.Rect, c theme.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Rect: rect, Color: c, Clip: r.clip})
}

func (r *Recorder) StrokeRect(rect geometry.Rect, c theme.Color, width int) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeRect, Rect: rect, Color: c, Width: width, Clip: r.clip})
}

func (r *Recorder) DrawLine(a, b geometry.Point, c theme.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, A: a, B: b, Color: c, Clip: r.clip})
}

func (r *Recorder) DrawText(origin geometry.Point, s string, face font.Face, c theme.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpText, A: origin, Text: s, Color: c, Clip: r.clip})
}

// Reset clears recorded ops and reopens the clip.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.clip = geometry.RectFromLTWH(0, 0, r.size.Width, r.size.Height)
}

// Filter returns the recorded ops of one kind.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
