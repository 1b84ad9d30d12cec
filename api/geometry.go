package api

import "math"

// Size is a width/height pair in points.
type Size struct {
	W float64 `json:"width" yaml:"width"`
	H float64 `json:"height" yaml:"height"`
}

// Point is a page coordinate in points, y increasing upward.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Rect is an axis-aligned rectangle in page coordinates. (X, Y) is the
// lower-left corner because y increases upward.
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"width" yaml:"width"`
	H float64 `json:"height" yaml:"height"`
}

// Top returns the y coordinate of the upper edge
func (r Rect) Top() float64 { return r.Y + r.H }

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// CenterX returns the horizontal center
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Area returns W*H, zero for degenerate rectangles
func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Aspect returns W/H or 0 when H is zero
func (r Rect) Aspect() float64 {
	if r.H == 0 {
		return 0
	}
	return r.W / r.H
}

// Inset shrinks the rectangle by dx on the left and right and dy on the top and bottom
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Intersects reports whether r and o share a region with positive area
func (r Rect) Intersects(o Rect) bool {
	return r.Intersection(o).Area() > 0
}

// Intersection returns the overlapping region of r and o
func (r Rect) Intersection(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.Right(), o.Right())
	y1 := math.Min(r.Top(), o.Top())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains reports whether o lies entirely inside r, allowing a tolerance of slack points
func (r Rect) Contains(o Rect, slack float64) bool {
	return o.X >= r.X-slack && o.Y >= r.Y-slack &&
		o.Right() <= r.Right()+slack && o.Top() <= r.Top()+slack
}
