package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/camera"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewManySpheres creates three large spheres surrounded by small random spheres
// placed with SampleDisks. The layout is fixed by a seeded generator.
func NewManySpheres(opts Options) (*Scene, error) {
	width, height := opts.resolution(800, 450)
	position := core.NewVec3(13, 3, -3)
	focus := core.NewVec3(2.5, 0.5, 0)

	cam := camera.NewPerspective(camera.PerspectiveConfig{
		Width:         width,
		Height:        height,
		Position:      position,
		LookAt:        core.Vec3{},
		FOVDeg:        40,
		LensRadius:    0.025,
		FocusDistance: focus.Subtract(position).Length(),
	})

	prims := []*geometry.Primitive{
		geometry.NewPrimitive(geometry.NewSphere(core.NewVec3(0, -100, 0), 100), material.NewMatte(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewPrimitive(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1), material.NewMatte(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewPrimitive(geometry.NewSphere(core.NewVec3(0, 1, 0), 1), material.NewDielectric(1.5)),
		geometry.NewPrimitive(geometry.NewSphere(core.NewVec3(4, 1, 0), 1), material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.025)),
	}

	const radius = 0.2
	rng := rand.New(rand.NewSource(0))
	centers := SampleDisks(core.NewVec2(-25, -25), core.NewVec2(25, 25), 4*radius, 32, 8, rng)

	for _, c := range centers {
		// Keep the area around the big spheres clear
		if core.NewVec3(c.X/5, radius, c.Y).Length() < 1 {
			continue
		}

		var mat material.Material
		switch choose := rng.Float64(); {
		case choose < 0.6:
			albedo := core.RandomVec3(rng).MultiplyVec(core.RandomVec3(rng))
			mat = material.NewMatte(albedo)
		case choose < 0.9:
			albedo := core.NewVec3(0.5+0.5*rng.Float64(), 0.5+0.5*rng.Float64(), 0.5+0.5*rng.Float64())
			mat = material.NewMetal(albedo, 0.5*rng.Float64())
		default:
			mat = material.NewDielectric(1.5)
		}

		sphere := geometry.NewSphere(core.NewVec3(c.X, radius, c.Y), radius)
		prims = append(prims, geometry.NewPrimitive(sphere, mat))
	}

	return New(cam, prims, []lights.Light{DefaultSky()})
}
