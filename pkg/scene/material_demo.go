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

// NewMaterialDemo creates a row of spheres showing each material and texture
func NewMaterialDemo(opts Options) (*Scene, error) {
	width, height := opts.resolution(800, 450)
	position := core.NewVec3(0, 2, -8)
	lookAt := core.NewVec3(0, 2, 0)

	cam := camera.NewPerspective(camera.PerspectiveConfig{
		Width:         width,
		Height:        height,
		Position:      position,
		LookAt:        lookAt,
		FOVDeg:        70,
		LensRadius:    0.025,
		FocusDistance: lookAt.Subtract(position).Length(),
	})

	prims, err := MaterialDemoPrimitives(opts)
	if err != nil {
		return nil, err
	}
	return New(cam, prims, []lights.Light{DefaultSky()})
}

// NewDefocusBlur renders the material demo from a low angle with a wide aperture
func NewDefocusBlur(opts Options) (*Scene, error) {
	width, height := opts.resolution(800, 450)
	position := core.NewVec3(-8, 4, -4)
	lookAt := core.NewVec3(0, 1, 0)

	cam := camera.NewPerspective(camera.PerspectiveConfig{
		Width:         width,
		Height:        height,
		Position:      position,
		LookAt:        lookAt,
		FOVDeg:        35,
		LensRadius:    0.3,
		FocusDistance: lookAt.Subtract(position).Length(),
	})

	prims, err := MaterialDemoPrimitives(opts)
	if err != nil {
		return nil, err
	}
	// Warm evening gradient instead of the sky
	gradient := lights.NewGradient(core.NewVec3(0.4, 0.5, 0.8), core.NewVec3(1.0, 0.8, 0.6))
	return New(cam, prims, []lights.Light{gradient})
}

// DefaultSky is the blue-to-white sky used by outdoor scenes
func DefaultSky() *lights.Sky {
	return lights.NewSky(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1, 1, 1))
}

// MaterialDemoPrimitives returns the floor and spheres shared by the material scenes
func MaterialDemoPrimitives(opts Options) ([]*geometry.Primitive, error) {
	earth, err := earthTexture(opts)
	if err != nil {
		return nil, err
	}

	floorMat := material.NewTexturedMatte(
		material.NewChecker(0.5, core.NewVec3(0.7, 0.7, 0.7), core.NewVec3(0.5, 0.5, 0.5)),
	)
	checkerMat := material.NewTexturedMatte(
		material.NewChecker(0.1, core.Vec3{}, core.NewVec3(1, 1, 1)),
	)

	return []*geometry.Primitive{
		geometry.NewPrimitive(geometry.NewFloor(), floorMat),
		geometry.NewPrimitive(geometry.NewSphere(core.NewVec3(0, 3, 4), 3), material.NewTexturedMatte(earth)),
		geometry.NewPrimitive(geometry.NewSphere(core.NewVec3(-2.5, 1, 0), 1), material.NewDielectric(1.5)),
		geometry.NewPrimitive(geometry.NewSphere(core.NewVec3(0, 1, 0), 1), material.NewMatte(core.NewVec3(0.2, 0.5, 0.1))),
		geometry.NewPrimitive(geometry.NewSphere(core.NewVec3(2.5, 1, 0), 1), material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.05)),
		geometry.NewPrimitive(geometry.NewSphere(core.NewVec3(-2, 0.5, -2), 0.5), material.NewTexturedMatte(material.UV{})),
		geometry.NewPrimitive(geometry.NewSphere(core.NewVec3(0, 0.5, -2), 0.5), checkerMat),
		geometry.NewPrimitive(geometry.NewSphere(core.NewVec3(2, 0.5, -2), 0.5), material.NewTexturedMatte(material.NewNoiseTexture(0.025, 0))),
	}, nil
}

// earthTexture loads the configured image, or falls back to a procedural map
func earthTexture(opts Options) (material.Texture, error) {
	if opts.TexturePath == "" {
		opts.logger().Printf("material demo: no texture path, using procedural earth\n")
		return material.NewChecker(0.05, core.NewVec3(0.1, 0.2, 0.5), core.NewVec3(0.2, 0.4, 0.1)), nil
	}

	img, err := loaders.LoadImage(opts.TexturePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load earth texture: %w", err)
	}
	opts.logger().Printf("material demo: loaded %s (%dx%d)\n", opts.TexturePath, img.Width, img.Height)
	return img.Texture(), nil
}
