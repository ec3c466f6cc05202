package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices.
// The outward normal is (V1-V0) × (V2-V0).
type Triangle struct {
	V0, V1, V2 core.Vec3
	normal     core.Vec3
	bbox       core.AABB
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	return &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		normal: v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize(),
		bbox:   core.NewAABBFromPoints(v0, v1, v2).Pad(1e-4),
	}
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	const epsilon = 1e-12

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if a > -epsilon && a < epsilon {
		return Hit{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return Hit{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return Hit{}, false
	}

	tHit := f * edge2.Dot(q)
	if tHit <= tMin || tHit >= tMax {
		return Hit{}, false
	}

	return Hit{
		T:      tHit,
		Point:  ray.At(tHit),
		Normal: t.normal,
		UV:     core.NewVec2(u, v),
	}, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Normal returns the triangle's outward normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
