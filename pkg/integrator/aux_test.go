package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/camera"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestNormal_CenterPixel(t *testing.T) {
	cam := camera.NewPerspective(camera.PerspectiveConfig{
		Width:    5,
		Height:   5,
		Position: core.NewVec3(0, 0, -5),
		LookAt:   core.Vec3{},
		FOVDeg:   30,
	})
	sphere := geometry.NewPrimitive(geometry.NewSphere(core.Vec3{}, 1), material.NewMatte(core.NewVec3(0.5, 0.5, 0.5)))
	s, err := scene.New(cam, []*geometry.Primitive{sphere}, nil)
	if err != nil {
		t.Fatal(err)
	}

	ray := cam.Ray(camera.Sample{PFilm: core.NewVec2(2.5, 2.5)})
	result := NewNormal().Li(s, ray, rand.New(rand.NewSource(0)))

	want := core.NewVec3(0.5, 0.5, 0)
	if result.Radiance.Subtract(want).Length() > 1e-6 {
		t.Errorf("Expected %v, got %v", want, result.Radiance)
	}
	if result.Rays != 1 {
		t.Errorf("Expected 1 ray, got %d", result.Rays)
	}

	// Corner rays miss the sphere
	miss := NewNormal().Li(s, cam.Ray(camera.Sample{PFilm: core.NewVec2(0, 0)}), nil)
	if miss.Radiance != (core.Vec3{}) || miss.Rays != 1 {
		t.Errorf("Expected black miss with 1 ray, got %v (%d)", miss.Radiance, miss.Rays)
	}
}

func TestAlbedo(t *testing.T) {
	red := core.NewVec3(0.8, 0.1, 0.1)
	env := core.NewVec3(0.2, 0.3, 0.4)
	prims := []*geometry.Primitive{
		geometry.NewPrimitive(geometry.NewSphere(core.Vec3{}, 1), material.NewMatte(red)),
		geometry.NewPrimitive(geometry.NewSphere(core.NewVec3(5, 0, 0), 1), material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0)),
	}
	s, err := scene.New(camera.NewPerspective(camera.DefaultPerspectiveConfig()), prims, []lights.Light{lights.NewInfinite(env)})
	if err != nil {
		t.Fatal(err)
	}
	albedo := NewAlbedo()
	rng := rand.New(rand.NewSource(0))

	tests := []struct {
		name string
		ray  core.Ray
		want core.Vec3
	}{
		{"diffuse", core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)), red},
		{"specular", core.NewRay(core.NewVec3(5, 0, -5), core.NewVec3(0, 0, 1)), core.NewVec3(0.9, 0.9, 0.9)},
		{"miss", core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 1, 0)), env},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := albedo.Li(s, tt.ray, rng)
			if result.Radiance.Subtract(tt.want).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.want, result.Radiance)
			}
			if result.Rays != 1 {
				t.Errorf("Expected 1 ray, got %d", result.Rays)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	bad := Result{Radiance: core.NewVec3(math.NaN(), 1, math.Inf(1)), Rays: 3}
	got := sanitize(bad)
	if got.Radiance != (core.Vec3{}) || got.Rays != 3 {
		t.Errorf("Expected black with rays kept, got %v", got)
	}
}
