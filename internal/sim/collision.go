package sim

import "github.com/vovakirdan/pebble-arcade/internal/core"

// Origin selects which point of a rectangle sits on its pivot.
type Origin int

const (
	OriginCenter Origin = iota
	OriginBottomCenter
	OriginBottomLeft
)

// Bounds is an axis-aligned rectangle in an entity's local space.
type Bounds struct {
	Pivot  core.Vec2
	HalfW  float64
	HalfH  float64
	Origin Origin
}

// Rect returns the local-space rectangle described by b.
func (b Bounds) Rect() core.RectF {
	lo := b.Pivot
	switch b.Origin {
	case OriginCenter:
		lo = lo.Sub(core.V(b.HalfW, b.HalfH))
	case OriginBottomCenter:
		lo = lo.Sub(core.V(b.HalfW, 0))
	}
	return core.RectF{Min: lo, Max: lo.Add(core.V(2*b.HalfW, 2*b.HalfH))}
}

// Body is anything that can be queried for collisions.
type Body interface {
	WorldTransform() core.Affine
	LocalBounds() Bounds
}

// Shape is a plain Body: a transform plus local bounds.
type Shape struct {
	Transform core.Affine
	Bounds    Bounds
}

// WorldTransform implements Body.
func (s Shape) WorldTransform() core.Affine { return s.Transform }

// LocalBounds implements Body.
func (s Shape) LocalBounds() Bounds { return s.Bounds }

// ContainsPoint reports whether a world-space point lies inside b.
// Points on the boundary count as inside. A body whose transform cannot be
// inverted (zero scale) contains nothing.
func ContainsPoint(p core.Vec2, b Body) bool {
	inv, ok := b.WorldTransform().Invert()
	if !ok {
		return false
	}
	return b.LocalBounds().Rect().Contains(inv.Apply(p))
}

// WorldRect returns the world-space bounding rectangle of b after applying
// the local pivot transform.
func WorldRect(b Body, pivot core.Affine) core.RectF {
	m := b.WorldTransform().Mul(pivot)
	r := b.LocalBounds().Rect()
	return core.RectFromPoints(
		m.Apply(r.Min),
		m.Apply(core.V(r.Max.X, r.Min.Y)),
		m.Apply(r.Max),
		m.Apply(core.V(r.Min.X, r.Max.Y)),
	)
}
