package geometry

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Transform instances a shape under an affine object-to-world matrix
type Transform struct {
	shape         Shape
	objectToWorld mgl64.Mat4
	worldToObject mgl64.Mat4
	normalMatrix  mgl64.Mat4
	bbox          core.AABB
}

// NewTransform wraps a shape with an affine transform
func NewTransform(objectToWorld mgl64.Mat4, shape Shape) *Transform {
	worldToObject := objectToWorld.Inv()
	t := &Transform{
		shape:         shape,
		objectToWorld: objectToWorld,
		worldToObject: worldToObject,
		normalMatrix:  worldToObject.Transpose(),
	}
	t.bbox = t.worldBounds()
	return t
}

// Inner returns the wrapped object-space shape
func (t *Transform) Inner() Shape {
	return t.shape
}

// Translate builds a translation matrix
func Translate(offset core.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(offset.X, offset.Y, offset.Z)
}

// RotateY builds a rotation about +Y, angle in degrees
func RotateY(degrees float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DY(mgl64.DegToRad(degrees))
}

// Scale builds a scale matrix
func Scale(s core.Vec3) mgl64.Mat4 {
	return mgl64.Scale3D(s.X, s.Y, s.Z)
}

// Hit transforms the ray into object space, intersects, and maps the hit back.
// The object-space direction is left unnormalized so t is shared between spaces.
func (t *Transform) Hit(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	local := core.Ray{
		Origin:    transformPoint(t.worldToObject, ray.Origin),
		Direction: transformVector(t.worldToObject, ray.Direction),
		Time:      ray.Time,
	}

	hit, ok := t.shape.Hit(local, tMin, tMax)
	if !ok {
		return Hit{}, false
	}

	hit.Point = ray.At(hit.T)
	hit.Normal = transformVector(t.normalMatrix, hit.Normal).Normalize()
	return hit, true
}

// BoundingBox returns the world-space box around the transformed shape
func (t *Transform) BoundingBox() core.AABB {
	return t.bbox
}

func (t *Transform) worldBounds() core.AABB {
	b := t.shape.BoundingBox()
	corners := make([]core.Vec3, 0, 8)
	for i := 0; i < 8; i++ {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		corners = append(corners, transformPoint(t.objectToWorld, c))
	}
	return core.NewAABBFromPoints(corners...)
}

func transformPoint(m mgl64.Mat4, p core.Vec3) core.Vec3 {
	r := m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return core.NewVec3(r[0], r[1], r[2])
}

func transformVector(m mgl64.Mat4, v core.Vec3) core.Vec3 {
	r := m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0})
	return core.NewVec3(r[0], r[1], r[2])
}
