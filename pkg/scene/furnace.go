package scene

import (
	"github.com/df07/go-pathtracer/pkg/camera"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

// FurnaceAlbedo is the floor reflectance of the furnace scene
const FurnaceAlbedo = 0.5

// NewFurnace creates a white furnace: a grey floor under a constant unit environment.
// Every pixel that sees the floor converges to FurnaceAlbedo; the rest is exactly 1.
func NewFurnace(opts Options) (*Scene, error) {
	width, height := opts.resolution(400, 400)

	cam := camera.NewPerspective(camera.PerspectiveConfig{
		Width:    width,
		Height:   height,
		Position: core.NewVec3(0, 1, -5),
		LookAt:   core.NewVec3(0, 0, 0),
		FOVDeg:   60,
	})

	floor := geometry.NewPrimitive(
		geometry.NewFloor(),
		material.NewMatte(core.NewVec3(FurnaceAlbedo, FurnaceAlbedo, FurnaceAlbedo)),
	)

	return New(cam, []*geometry.Primitive{floor}, []lights.Light{lights.NewInfinite(core.NewVec3(1, 1, 1))})
}
