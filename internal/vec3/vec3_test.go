package vec3

import (
	"math"
	"testing"
)

func almostEqual(a, b Vector3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestAddSubtractInverse(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector3
	}{
		{"unit vectors", New(1, 0, 0), New(0, 1, 0)},
		{"arbitrary", New(3.5, -2.25, 7), New(-1, 9, 0.5)},
		{"zero", Zero, New(1, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Add(tt.b).Subtract(tt.b)
			if !almostEqual(got, tt.a, 1e-12) {
				t.Fatalf("Add then Subtract = %v, want %v", got, tt.a)
			}
		})
	}
}

func TestDotCommutative(t *testing.T) {
	a := New(1, 2, 3)
	b := New(-4, 5, 0.5)
	if a.Dot(b) != b.Dot(a) {
		t.Fatalf("dot not commutative: %v vs %v", a.Dot(b), b.Dot(a))
	}
}

func TestCrossAnticommutative(t *testing.T) {
	a := New(1, 0, 0)
	b := New(0, 1, 0)
	c := a.Cross(b)
	d := b.Cross(a)
	if !almostEqual(c, d.Negate(), 1e-12) {
		t.Fatalf("cross product not anticommutative: %v vs %v", c, d)
	}
	if !almostEqual(c, New(0, 0, 1), 1e-12) {
		t.Fatalf("cross(X,Y) = %v, want Z", c)
	}
}

func TestUnitizeZeroSafe(t *testing.T) {
	tests := []struct {
		name string
		v    Vector3
	}{
		{"zero vector", Zero},
		{"normal vector", New(3, 4, 0)},
		{"huge magnitude", New(1e300, 1e300, 1e300)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.v.Unitize()
			if tt.v.IsZero() {
				if !u.IsZero() {
					t.Fatalf("unitize of zero = %v, want zero", u)
				}
				return
			}
			length := u.Length()
			if math.IsNaN(length) || math.IsInf(length, 0) {
				t.Fatalf("unitize produced non-finite length %v", length)
			}
		})
	}
}

func TestClamped(t *testing.T) {
	v := New(-1, 0.5, 2)
	got := v.Clamped(Zero, One)
	want := New(0, 0.5, 1)
	if !almostEqual(got, want, 1e-12) {
		t.Fatalf("Clamped = %v, want %v", got, want)
	}
}

func TestMultiplyVecComponentWise(t *testing.T) {
	a := New(2, 3, 4)
	b := New(0.5, 2, 0)
	got := a.MultiplyVec(b)
	want := New(1, 6, 0)
	if !almostEqual(got, want, 1e-12) {
		t.Fatalf("MultiplyVec = %v, want %v", got, want)
	}
}
