package checks

import "math"

// Rect is an element box in CSS pixels
type Rect struct {
	X, Y, Width, Height float64
}

// Viewport size in CSS pixels
type Viewport struct {
	Width, Height int
}

// Tolerances used by the layout checks
const (
	StackOverlap  = 50
	SameRowSpread = 100
)

// InViewport reports whether r lies fully inside the viewport
func InViewport(r Rect, vp Viewport) bool {
	return r.X >= 0 && r.Y >= 0 &&
		r.X+r.Width <= float64(vp.Width) &&
		r.Y+r.Height <= float64(vp.Height)
}

// StackedVertically reports whether second starts below first, allowing
// StackOverlap pixels of overlap.
func StackedVertically(first, second Rect) bool {
	return second.Y > first.Y+first.Height-StackOverlap
}

// SameRow reports whether two boxes sit on roughly the same line
func SameRow(a, b Rect) bool {
	return math.Abs(a.Y-b.Y) < SameRowSpread
}

// FitsWidth reports whether r does not overflow a viewport horizontally
func FitsWidth(r Rect, vp Viewport) bool {
	return r.X >= 0 && r.X+r.Width <= float64(vp.Width)+1
}
