package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// floorExtent bounds the otherwise infinite floor for acceleration structures
const floorExtent = 1e6

// Floor is the infinite y=0 plane. Its normal faces the side the ray comes from,
// so it is always hit on the front face. UV is the (x, z) position.
type Floor struct{}

// NewFloor creates a floor
func NewFloor() *Floor {
	return &Floor{}
}

// Hit intersects the y=0 plane
func (f *Floor) Hit(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	if math.Abs(ray.Direction.Y) < 1e-12 {
		return Hit{}, false
	}

	t := -ray.Origin.Y / ray.Direction.Y
	if t <= tMin || t >= tMax {
		return Hit{}, false
	}

	normal := core.NewVec3(0, 1, 0)
	if ray.Origin.Y < 0 {
		normal = core.NewVec3(0, -1, 0)
	}

	point := ray.At(t)
	point.Y = 0
	return Hit{
		T:      t,
		Point:  point,
		Normal: normal,
		UV:     core.NewVec2(point.X, point.Z),
	}, true
}

// BoundingBox returns a large, thin box around the plane
func (f *Floor) BoundingBox() core.AABB {
	return core.NewAABB(
		core.NewVec3(-floorExtent, -0.1, -floorExtent),
		core.NewVec3(floorExtent, 0.1, floorExtent),
	)
}
