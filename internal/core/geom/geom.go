// Package geom holds the integer screen geometry shared by widgets and
// touch input.
package geom

import "fmt"

// Point is an absolute screen position.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect represents a rectangular region.
type Rect struct {
	X, Y, W, H int
}

// Contains returns true if the point is within the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Empty reports whether the rectangle covers no points.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// SplitH splits the rectangle into a left and right half of equal width.
// When the width is odd the left half receives the extra column.
func (r Rect) SplitH() (left, right Rect) {
	lw := r.W - r.W/2
	left = Rect{X: r.X, Y: r.Y, W: lw, H: r.H}
	right = Rect{X: r.X + lw, Y: r.Y, W: r.W - lw, H: r.H}
	return left, right
}

// Overlaps reports whether the two rectangles share any point.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}
