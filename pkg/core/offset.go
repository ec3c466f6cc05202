package core

import "math"

// RayTMin is the smallest hit distance accepted by intersection routines
const RayTMin = 1e-9

// offsetFloor is the absolute lower bound on the spawn offset
const offsetFloor = 1e-7

// offsetULPs is the relative offset expressed in float64 ulps
const offsetULPs = 64

// OffsetEpsilon returns the spawn offset for a point: 64 ulps of its largest
// coordinate magnitude, never less than an absolute floor.
func OffsetEpsilon(p Vec3) float64 {
	m := p.MaxAbsComponent()
	ulp := math.Nextafter(m, math.Inf(1)) - m
	return math.Max(offsetULPs*ulp, offsetFloor)
}

// OffsetRayOrigin moves p off the surface along n, towards the side dir points to
func OffsetRayOrigin(p, n, dir Vec3) Vec3 {
	eps := OffsetEpsilon(p)
	if dir.Dot(n) < 0 {
		eps = -eps
	}
	return p.Add(n.Multiply(eps))
}
