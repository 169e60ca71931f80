package core

import (
	"math"
	"testing"
)

func vecNear(a, b Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestAffineApply(t *testing.T) {
	tests := []struct {
		name     string
		m        Affine
		in       Vec2
		expected Vec2
	}{
		{"identity", Identity, V(3, -2), V(3, -2)},
		{"translate", Translate(5, 1), V(1, 1), V(6, 2)},
		{"scale", Scale(2, -1), V(3, 4), V(6, -4)},
		{"rotate quarter", Rotate(math.Pi / 2), V(1, 0), V(0, 1)},
		{"translate after scale", Translate(10, 0).Mul(Scale(2, 2)), V(1, 1), V(12, 2)},
		{"scale after translate", Scale(2, 2).Mul(Translate(10, 0)), V(1, 1), V(22, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Apply(tt.in); !vecNear(got, tt.expected) {
				t.Errorf("Apply(%v) = %v, expected %v", tt.in, got, tt.expected)
			}
		})
	}
}

func TestAffineInvert(t *testing.T) {
	m := Translate(4, -3).Mul(Rotate(0.7)).Mul(Scale(1.5, 0.5))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("regular matrix reported as singular")
	}

	for _, p := range []Vec2{V(0, 0), V(1, 2), V(-7, 3.5)} {
		if got := inv.Apply(m.Apply(p)); !vecNear(got, p) {
			t.Errorf("round trip of %v = %v", p, got)
		}
	}

	for _, m := range []Affine{Scale(0, 1), Scale(2, 0), {}, Translate(3, 3).Mul(Scale(0, 0))} {
		if _, ok := m.Invert(); ok {
			t.Errorf("%v should have no inverse", m)
		}
	}
}

func TestAffineOrigin(t *testing.T) {
	m := Translate(2, 9).Mul(Scale(3, 3))
	if got := m.Origin(); got != V(2, 9) {
		t.Errorf("Origin() = %v, expected (2, 9)", got)
	}
}
