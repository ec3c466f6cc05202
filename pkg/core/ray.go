package core

// Ray represents a ray with an origin, a unit direction and a time
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Time      float64
}

// NewRay creates a new ray, normalizing the direction.
// A zero direction stays zero.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// NewRayAt creates a new ray at the given time
func NewRayAt(origin, direction Vec3, time float64) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize(), Time: time}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
