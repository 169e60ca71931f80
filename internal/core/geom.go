// Package core holds the types shared by games and the platform: screen
// buffer, geometry, input frames and runtime config. It imports no UI code.
package core

import (
	"cmp"
	"math"
)

// Rect is an integer cell rectangle, Y growing downwards.
type Rect struct {
	X, Y int
	W, H int
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// Vec2 is a point or displacement in continuous world space.
type Vec2 struct {
	X, Y float64
}

// V is a convenience constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// RectF is an axis-aligned rectangle in world space with a y-up convention:
// Min is the bottom-left corner and Max the top-right corner.
type RectF struct {
	Min, Max Vec2
}

// RectFromPoints returns the smallest RectF enclosing all points.
func RectFromPoints(pts ...Vec2) RectF {
	if len(pts) == 0 {
		return RectF{}
	}
	r := RectF{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// Top returns the y-coordinate of the upper edge.
func (r RectF) Top() float64 {
	return r.Max.Y
}

// Width returns the horizontal extent.
func (r RectF) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r RectF) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Contains reports whether p lies inside r. Edges count as inside.
func (r RectF) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
