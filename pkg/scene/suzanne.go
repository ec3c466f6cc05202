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

// lightDomeRadius is large enough to enclose every built-in scene
const lightDomeRadius = 1000.0

// NewSuzanne loads an OBJ mesh and places it on a fuzzy metal checker floor.
// The scene is lit by the default sky, or by an image light dome when EnvMapPath is set.
func NewSuzanne(opts Options) (*Scene, error) {
	width, height := opts.resolution(1024, 1024)
	position := core.NewVec3(-1, 2, 4)
	lookAt := core.NewVec3(0, 0.9, 0)

	cam := camera.NewPerspective(camera.PerspectiveConfig{
		Width:         width,
		Height:        height,
		Position:      position,
		LookAt:        lookAt,
		FOVDeg:        45,
		LensRadius:    0.02,
		FocusDistance: lookAt.Subtract(position).Length(),
	})

	if err := requireAsset(opts.ObjPath, "-obj"); err != nil {
		return nil, err
	}
	models, err := loaders.LoadOBJ(opts.ObjPath, opts.logger())
	if err != nil {
		return nil, err
	}

	mesh, err := geometry.NewTriangleMesh(models[0].Vertices, models[0].Indices)
	if err != nil {
		return nil, fmt.Errorf("invalid mesh %q: %w", models[0].Name, err)
	}
	opts.logger().Printf("suzanne: %d triangles from %s\n", mesh.TriangleCount(), opts.ObjPath)

	floorMat := material.NewTexturedMetal(
		material.NewChecker(0.2, core.NewVec3(0.7, 0.7, 0.7), core.NewVec3(0.9, 0.9, 0.9)),
		0.1,
	)

	prims := []*geometry.Primitive{
		geometry.NewPrimitive(geometry.NewFloor(), floorMat),
		geometry.NewPrimitive(
			geometry.NewTransform(geometry.Translate(core.NewVec3(0, 0.95, 0)), mesh),
			material.NewMatte(core.NewVec3(0.5, 0.5, 0.5)),
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

// lightDome wraps the scene in a large sphere emitting an environment image
func lightDome(path string) (*geometry.Primitive, error) {
	img, err := loaders.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load light dome: %w", err)
	}

	emit := &material.DiffuseLight{
		Emit:     material.NewScale(2, img.Texture()),
		TwoSided: true,
	}
	return geometry.NewPrimitive(geometry.NewSphere(core.Vec3{}, lightDomeRadius), emit), nil
}
