package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(3, 4, 5, 2)
	if r.Right() != 8 || r.Bottom() != 6 {
		t.Errorf("Right, Bottom = %d, %d; want 8, 6", r.Right(), r.Bottom())
	}

	empty := NewRect(1, 1, 0, 0)
	if empty.Right() != empty.X || empty.Bottom() != empty.Y {
		t.Errorf("empty rect edges = %d, %d", empty.Right(), empty.Bottom())
	}
}

func TestClamp(t *testing.T) {
	ints := []struct{ v, want int }{
		{5, 5},
		{-5, 0},
		{15, 10},
		{0, 0},
		{10, 10},
	}
	for _, tc := range ints {
		if got := Clamp(tc.v, 0, 10); got != tc.want {
			t.Errorf("Clamp(%d, 0, 10) = %d, want %d", tc.v, got, tc.want)
		}
	}

	if got := Clamp(-0.5, 0.0, 1.0); got != 0 {
		t.Errorf("Clamp(-0.5, 0, 1) = %v", got)
	}
	if got := Clamp(0.25, 0.0, 1.0); got != 0.25 {
		t.Errorf("Clamp(0.25, 0, 1) = %v", got)
	}
}

func TestVec2(t *testing.T) {
	a := V(1, 2)
	b := V(3, -1)

	if got := a.Add(b); got != V(4, 1) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != V(-2, 3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(-2); got != V(-2, -4) {
		t.Errorf("Scale = %v", got)
	}
}

func TestRectFromPoints(t *testing.T) {
	if r := RectFromPoints(); r != (RectF{}) {
		t.Errorf("no points = %+v, want zero", r)
	}

	r := RectFromPoints(V(4, 3), V(0, 0), V(4, 0), V(0, 3))
	if r.Min != V(0, 0) || r.Max != V(4, 3) {
		t.Fatalf("RectFromPoints = %+v", r)
	}
	if r.Top() != 3 || r.Width() != 4 || r.Height() != 3 {
		t.Errorf("top=%v w=%v h=%v", r.Top(), r.Width(), r.Height())
	}

	tests := []struct {
		p    Vec2
		want bool
	}{
		{V(2, 1), true},
		{V(0, 0), true},
		{V(4, 3), true},
		{V(4.01, 1), false},
		{V(2, -0.01), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
