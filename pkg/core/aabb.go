package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = Vec3{math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z)}
		hi = Vec3{math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z)}
	}
	return AABB{Min: lo, Max: hi}
}

// Hit tests if a ray intersects with this AABB using the slab method
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		lo := aabb.Min.Axis(axis)
		hi := aabb.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		// Ray parallel to this slab
		if math.Abs(direction) < 1e-12 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		inv := 1.0 / direction
		t1 := (lo - origin) * inv
		t2 := (hi - origin) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return NewAABBFromPoints(aabb.Min, aabb.Max, other.Min, other.Max)
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// Pad returns a copy grown by delta on every axis whose extent is below delta,
// so flat shapes (quads, floors) still produce a box a ray can enter.
func (aabb AABB) Pad(delta float64) AABB {
	out := aabb
	size := aabb.Size()
	if size.X < delta {
		out.Min.X -= delta / 2
		out.Max.X += delta / 2
	}
	if size.Y < delta {
		out.Min.Y -= delta / 2
		out.Max.Y += delta / 2
	}
	if size.Z < delta {
		out.Min.Z -= delta / 2
		out.Max.Z += delta / 2
	}
	return out
}
