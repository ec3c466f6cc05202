package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Interaction describes a ray-surface intersection
type Interaction struct {
	T           float64   // Parameter t along the ray
	Point       core.Vec3 // Point of intersection
	Normal      core.Vec3 // Unit normal facing against the incoming ray
	FrontFace   bool      // Whether ray hit the outward side
	UV          core.Vec2 // Surface parameterization
	Time        float64
	Material    Material
	PrimitiveID int // Index of the primitive in its scene
}

// SetFaceNormal sets the normal vector and determines front/back face
func (in *Interaction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	in.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if in.FrontFace {
		in.Normal = outwardNormal
	} else {
		in.Normal = outwardNormal.Negate()
	}
}

// SpawnRay starts a new ray at the interaction, offset off the surface
// toward the side the direction points to
func (in *Interaction) SpawnRay(direction core.Vec3) core.Ray {
	origin := core.OffsetRayOrigin(in.Point, in.Normal, direction)
	return core.NewRayAt(origin, direction, in.Time)
}

// SpawnRayWithNormal is SpawnRay with an explicit offset normal
func (in *Interaction) SpawnRayWithNormal(direction, normal core.Vec3) core.Ray {
	origin := core.OffsetRayOrigin(in.Point, normal, direction)
	return core.NewRayAt(origin, direction, in.Time)
}
