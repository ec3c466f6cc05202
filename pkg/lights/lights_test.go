package lights

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestInfinite_Constant(t *testing.T) {
	radiance := core.NewVec3(0.5, 0.6, 0.7)
	light := NewInfinite(radiance)
	for _, d := range []core.Vec3{{X: 1}, {Y: -1}, {X: 1, Y: 1, Z: 1}} {
		if got := light.Le(core.NewRay(core.Vec3{}, d)); got != radiance {
			t.Errorf("Direction %v: expected %v, got %v", d, radiance, got)
		}
	}
}

func TestSky_Blend(t *testing.T) {
	horizon := core.NewVec3(1, 1, 1)
	zenith := core.NewVec3(0.5, 0.7, 1.0)
	sky := NewSky(horizon, zenith)

	tests := []struct {
		name     string
		dir      core.Vec3
		expected core.Vec3
	}{
		{"Level", core.NewVec3(1, 0, 0), zenith},
		{"Straight up", core.NewVec3(0, 1, 0), horizon},
		{"Straight down", core.NewVec3(0, -1, 0), horizon},
		{"Halfway", core.NewVec3(0, 0.5, 0.8660254037844386), zenith.Multiply(0.5).Add(horizon.Multiply(0.5))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sky.Le(core.NewRay(core.Vec3{}, tt.dir))
			if got.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestGradient_Endpoints(t *testing.T) {
	top := core.NewVec3(0.5, 0.7, 1)
	bottom := core.NewVec3(1, 1, 1)
	g := NewGradient(top, bottom)

	if got := g.Le(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))); got.Subtract(top).Length() > 1e-12 {
		t.Errorf("Expected top color, got %v", got)
	}
	if got := g.Le(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0))); got.Subtract(bottom).Length() > 1e-12 {
		t.Errorf("Expected bottom color, got %v", got)
	}
}

func TestTotalLe(t *testing.T) {
	ls := []Light{NewInfinite(core.NewVec3(1, 0, 0)), NewInfinite(core.NewVec3(0, 2, 0))}
	if got := TotalLe(ls, core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))); got != core.NewVec3(1, 2, 0) {
		t.Errorf("Expected (1,2,0), got %v", got)
	}
	if got := TotalLe(nil, core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))); !got.IsZero() {
		t.Errorf("Expected zero with no lights, got %v", got)
	}
}
