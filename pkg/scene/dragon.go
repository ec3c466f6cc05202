package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/camera"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewDragon loads a PLY mesh (the Stanford dragon by default), scales it by 10
// and renders it as glass on a grey floor next to a small orange sphere light
func NewDragon(opts Options) (*Scene, error) {
	width, height := opts.resolution(1024, 1024)
	position := core.NewVec3(-3, 2, -5)
	lookAt := core.NewVec3(0, 0.5, 0)

	cam := camera.NewPerspective(camera.PerspectiveConfig{
		Width:         width,
		Height:        height,
		Position:      position,
		LookAt:        lookAt,
		FOVDeg:        25,
		LensRadius:    0.025,
		FocusDistance: lookAt.Subtract(position).Length(),
	})

	if err := requireAsset(opts.PlyPath, "-ply"); err != nil {
		return nil, err
	}
	model, err := loaders.LoadPLY(opts.PlyPath, opts.logger())
	if err != nil {
		return nil, err
	}
	mesh, err := geometry.NewTriangleMesh(model.Vertices, model.Indices)
	if err != nil {
		return nil, fmt.Errorf("invalid mesh %q: %w", model.Name, err)
	}
	opts.logger().Printf("dragon: %d triangles from %s\n", mesh.TriangleCount(), opts.PlyPath)

	// The dragon's base sits at y=0.053 in model space
	toWorld := geometry.Translate(core.NewVec3(0, -0.53, 0)).Mul4(geometry.Scale(core.NewVec3(10, 10, 10)))

	prims := []*geometry.Primitive{
		geometry.NewPrimitive(geometry.NewFloor(), material.NewMatte(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewPrimitive(geometry.NewTransform(toWorld, mesh), material.NewDielectric(1.5)),
		geometry.NewPrimitive(
			geometry.NewSphere(core.NewVec3(-40, 40, 50), 5),
			material.NewDiffuseLight(core.NewVec3(100, 50, 25)),
		),
	}

	if opts.EnvMapPath == "" {
		return New(cam, prims, []lights.Light{DefaultSky()})
	}
	dome, err := lightDome(opts.EnvMapPath)
	if err != nil {
		return nil, err
	}
	return New(cam, append(prims, dome), []lights.Light{})
}
