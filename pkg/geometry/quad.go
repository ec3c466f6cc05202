package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Quad represents a parallelogram defined by a corner and two edge vectors.
// The outward normal is U × V.
type Quad struct {
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	normal core.Vec3
	d      float64   // Plane equation constant: n·p = d
	w      core.Vec3 // Cached vector for planar coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		normal: normal,
		d:      normal.Dot(corner),
		w:      cross.Multiply(1.0 / cross.LengthSquared()),
	}
}

// NewQuadFromVertices creates a quad from four vertices in winding order.
// The fourth vertex is implied by the first three.
func NewQuadFromVertices(v [4]core.Vec3) *Quad {
	return NewQuad(v[0], v[1].Subtract(v[0]), v[3].Subtract(v[0]))
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	denominator := ray.Direction.Dot(q.normal)

	// Ray parallel to the quad plane
	if math.Abs(denominator) < 1e-12 {
		return Hit{}, false
	}

	t := (q.d - ray.Origin.Dot(q.normal)) / denominator
	if t <= tMin || t >= tMax {
		return Hit{}, false
	}

	point := ray.At(t)
	planar := point.Subtract(q.Corner)

	alpha := q.w.Dot(planar.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(planar))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return Hit{}, false
	}

	return Hit{
		T:      t,
		Point:  point,
		Normal: q.normal,
		UV:     core.NewVec2(alpha, beta),
	}, true
}

// BoundingBox returns the box around all four corners, padded when flat
func (q *Quad) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	).Pad(1e-4)
}

// Normal returns the outward unit normal
func (q *Quad) Normal() core.Vec3 {
	return q.normal
}
