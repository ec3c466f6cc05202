package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	NoEmission
	NoPDF
	Tint Texture
	IOR  float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a clear dielectric
func NewDielectric(ior float64) *Dielectric {
	return &Dielectric{Tint: NewConstant(core.NewVec3(1, 1, 1)), IOR: ior}
}

// Scatter either reflects or refracts, choosing by total internal reflection
// and a Schlick-weighted coin flip. Both faces interact.
func (d *Dielectric) Scatter(rayIn core.Ray, in *Interaction, random *rand.Rand) (ScatterRecord, bool) {
	var ratio float64
	if in.FrontFace {
		ratio = 1.0 / d.IOR // Entering the material
	} else {
		ratio = d.IOR // Exiting the material
	}

	unit := rayIn.Direction.Normalize()
	cosTheta := math.Min(-unit.Dot(in.Normal), 1.0)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))

	cannotRefract := ratio*sinTheta > 1.0

	var scattered core.Ray
	if cannotRefract || Reflectance(cosTheta, ratio) > random.Float64() {
		scattered = in.SpawnRay(Reflect(unit, in.Normal))
	} else {
		// Transmitted rays leave from the far side of the surface
		scattered = in.SpawnRayWithNormal(Refract(unit, in.Normal, ratio), in.Normal.Negate())
	}

	return ScatterRecord{
		Attenuation: d.Tint.Evaluate(in.UV, in.Point),
		Scattered:   scattered,
	}, true
}

// Class returns Specular
func (d *Dielectric) Class() BxDFClass {
	return Specular
}

// Refract calculates the refraction of a unit vector using Snell's law
func Refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
