package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/camera"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Scene contains all the elements needed for rendering.
// It is immutable once built and safe for concurrent use by render passes.
type Scene struct {
	Camera camera.Camera
	Lights []lights.Light // Infinite lights seen by escaping rays

	prims []*geometry.Primitive
	accel geometry.Accelerator
}

// Option configures scene construction
type Option func(*options)

type options struct {
	accelerator geometry.AcceleratorBuilder
}

// WithAccelerator replaces the default BVH accelerator
func WithAccelerator(builder geometry.AcceleratorBuilder) Option {
	return func(o *options) {
		o.accelerator = builder
	}
}

// New builds a scene and its acceleration structure
func New(cam camera.Camera, prims []*geometry.Primitive, sceneLights []lights.Light, opts ...Option) (*Scene, error) {
	if cam == nil {
		return nil, fmt.Errorf("scene requires a camera")
	}

	o := options{accelerator: geometry.NewBVHAccelerator}
	for _, opt := range opts {
		opt(&o)
	}

	accel, err := o.accelerator(prims)
	if err != nil {
		return nil, fmt.Errorf("failed to build accelerator: %w", err)
	}

	return &Scene{
		Camera: cam,
		Lights: sceneLights,
		prims:  prims,
		accel:  accel,
	}, nil
}

// Intersect finds the closest primitive hit along the ray
func (s *Scene) Intersect(ray core.Ray) (*material.Interaction, bool) {
	return s.accel.Intersect(ray, core.RayTMin, math.Inf(1))
}

// Primitive returns the primitive referenced by Interaction.PrimitiveID
func (s *Scene) Primitive(id int) *geometry.Primitive {
	if id < 0 || id >= len(s.prims) {
		return nil
	}
	return s.prims[id]
}

// PrimitiveCount returns the total number of primitive objects in the scene,
// counting each triangle of a mesh
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, p := range s.prims {
		count += countPrimitivesInShape(p.Shape)
	}
	return count
}

// countPrimitivesInShape counts primitives in a single shape, handling complex objects
func countPrimitivesInShape(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.TriangleMesh:
		return obj.TriangleCount()
	case *geometry.Transform:
		return countPrimitivesInShape(obj.Inner())
	default:
		return 1
	}
}
