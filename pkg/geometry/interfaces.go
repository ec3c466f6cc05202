package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hit is a shape-level intersection. Normal is the outward geometric normal.
type Hit struct {
	T      float64
	Point  core.Vec3
	Normal core.Vec3
	UV     core.Vec2
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (Hit, bool)
	BoundingBox() core.AABB
}

// Primitive binds a shape to the material shading it
type Primitive struct {
	Shape    Shape
	Material material.Material
}

// NewPrimitive creates a primitive
func NewPrimitive(shape Shape, mat material.Material) *Primitive {
	return &Primitive{Shape: shape, Material: mat}
}

// Accelerator finds the closest primitive along a ray
type Accelerator interface {
	Intersect(ray core.Ray, tMin, tMax float64) (*material.Interaction, bool)
}

// AcceleratorBuilder builds an accelerator over a fixed primitive list.
// The primitive index becomes Interaction.PrimitiveID.
type AcceleratorBuilder func(prims []*Primitive) (Accelerator, error)

// ErrInvalidPrimitive is returned when a primitive lacks a shape or material
var ErrInvalidPrimitive = errors.New("invalid primitive")

func validatePrimitives(prims []*Primitive) error {
	for i, p := range prims {
		if p == nil || p.Shape == nil || p.Material == nil {
			return fmt.Errorf("primitive %d: %w", i, ErrInvalidPrimitive)
		}
	}
	return nil
}

// newInteraction turns a shape hit into a shading interaction
func newInteraction(ray core.Ray, hit Hit, prim *Primitive, id int) *material.Interaction {
	in := &material.Interaction{
		T:           hit.T,
		Point:       hit.Point,
		UV:          hit.UV,
		Time:        ray.Time,
		Material:    prim.Material,
		PrimitiveID: id,
	}
	in.SetFaceNormal(ray, hit.Normal)
	return in
}
