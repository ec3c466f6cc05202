package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{"Unit X", NewVec3(5, 0, 0), NewVec3(1, 0, 0)},
		{"Diagonal", NewVec3(1, 1, 1), NewVec3(1/math.Sqrt(3), 1/math.Sqrt(3), 1/math.Sqrt(3))},
		{"Negative", NewVec3(0, -3, 4), NewVec3(0, -0.6, 0.8)},
		{"Zero stays zero", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()
			if result.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
			if math.IsNaN(result.X) || math.IsNaN(result.Y) || math.IsNaN(result.Z) {
				t.Errorf("Normalize produced NaN: %v", result)
			}
		})
	}
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	z := x.Cross(y)
	if z != NewVec3(0, 0, 1) {
		t.Errorf("Expected x cross y = +z, got %v", z)
	}
	if y.Cross(x) != NewVec3(0, 0, -1) {
		t.Errorf("Expected y cross x = -z, got %v", y.Cross(x))
	}
}

func TestVec3_Clamp(t *testing.T) {
	v := NewVec3(-1, 0.5, 2).Clamp(0, 1)
	if v != NewVec3(0, 0.5, 1) {
		t.Errorf("Expected (0, 0.5, 1), got %v", v)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Expected finite vector to be finite")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("Expected NaN vector to be non-finite")
	}
	if NewVec3(0, math.Inf(-1), 0).IsFinite() {
		t.Error("Expected Inf vector to be non-finite")
	}
}

func TestNewRay_NormalizesDirection(t *testing.T) {
	directions := []Vec3{
		NewVec3(3, 0, 0),
		NewVec3(1, 2, 3),
		NewVec3(-1e-3, 4e-3, 0),
		NewVec3(1e6, -1e6, 5),
	}

	for _, d := range directions {
		ray := NewRay(NewVec3(1, 2, 3), d)
		if math.Abs(ray.Direction.Length()-1) > 1e-12 {
			t.Errorf("Direction %v: expected unit length, got %f", d, ray.Direction.Length())
		}
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, -2))
	p := ray.At(3)
	if p.Subtract(NewVec3(0, 0, -3)).Length() > 1e-12 {
		t.Errorf("Expected (0,0,-3), got %v", p)
	}
}

func TestOffsetRayOrigin(t *testing.T) {
	normal := NewVec3(0, 1, 0)

	t.Run("Offsets toward the outgoing side", func(t *testing.T) {
		p := NewVec3(0, 0, 0)
		out := OffsetRayOrigin(p, normal, NewVec3(0, 1, 0))
		if out.Y <= 0 {
			t.Errorf("Expected origin above surface, got %v", out)
		}
		in := OffsetRayOrigin(p, normal, NewVec3(0, -1, 0))
		if in.Y >= 0 {
			t.Errorf("Expected origin below surface, got %v", in)
		}
	})

	t.Run("Absolute floor near the origin", func(t *testing.T) {
		eps := OffsetEpsilon(NewVec3(0, 0, 0))
		if eps != offsetFloor {
			t.Errorf("Expected floor %g, got %g", offsetFloor, eps)
		}
	})

	t.Run("Scales with magnitude", func(t *testing.T) {
		small := OffsetEpsilon(NewVec3(1, 0, 0))
		large := OffsetEpsilon(NewVec3(1e12, 0, 0))
		if large <= small {
			t.Errorf("Expected larger epsilon for larger coordinates: %g <= %g", large, small)
		}
		p := NewVec3(1e12, 0, 0)
		moved := OffsetRayOrigin(p, NewVec3(1, 0, 0), NewVec3(1, 0, 0))
		if moved.X <= p.X {
			t.Errorf("Offset lost to rounding at large magnitude: %v", moved)
		}
	})
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"Straight on", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), true},
		{"Miss above", NewRay(NewVec3(0, 2, -5), NewVec3(0, 0, 1)), false},
		{"Pointing away", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), false},
		{"Parallel inside slab", NewRay(NewVec3(0, 0.5, -5), NewVec3(0, 0, 1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, 0, math.Inf(1)); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAABB_Pad(t *testing.T) {
	flat := NewAABB(NewVec3(-1, 0, -1), NewVec3(1, 0, 1)).Pad(1e-4)
	if flat.Size().Y <= 0 {
		t.Errorf("Expected padded Y extent, got %v", flat.Size())
	}
	if flat.Size().X != 2 {
		t.Errorf("Expected X extent untouched, got %v", flat.Size().X)
	}
}
